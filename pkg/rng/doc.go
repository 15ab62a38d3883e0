// Package rng provides the seeded random stream threaded through layout
// generation, together with integer ranges and weighted selection.
//
// A single [*Rand] is passed by pointer through an entire generation call so
// that a run is reproducible from its seed. [Rand] is not safe for concurrent
// use; generation is single threaded.
//
//	r := rng.New(42)
//	n := rng.Range{Min: 1, Max: 4}.Sample(r) // 1, 2 or 3
//	i := r.Choose(rng.FillChances([]*float64{rng.Ptr(0.5), nil, nil}))
package rng
