// Package predicate implements composable per-cell tests used by layout
// generators to decide where to act.
//
// A [Predicate] inspects a grid position and may draw from the random stream
// ([Chance] does), so evaluation is not referentially transparent: callers
// evaluate each predicate exactly once per test site and must not cache
// results across sites.
//
//	wallNextToFloor := predicate.And{
//	    predicate.On{Token: "wall"},
//	    predicate.Area{Radius: 1, Predicate: predicate.On{Token: "floor"}, MinCount: 1},
//	}
package predicate
