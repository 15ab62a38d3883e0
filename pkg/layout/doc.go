// Package layout implements the generator algebra that builds levels on a
// token grid.
//
// A level recipe is a tree of [Generator] values. Every generator has one
// operation, Make, which acts on a [grid.Canvas] (a grid plus the rectangle
// the node is responsible for) and reports success. Composite generators
// narrow the canvas and recurse into their children:
//
//	room := layout.Margins{
//	    Width:  1,
//	    Border: layout.Set{Tokens: []grid.Token{"wall"}},
//	    Inside: layout.Chain{Generators: []layout.Generator{
//	        layout.Set{Tokens: []grid.Token{"floor"}},
//	        layout.Place{Entries: []layout.PlaceEntry{{
//	            Generator: layout.Set{Tokens: []grid.Token{"chest"}},
//	            Size:      &geom.Vec2{X: 1, Y: 1},
//	            Count:     rng.Range{Min: 1, Max: 3},
//	        }}},
//	    }},
//	}
//	g := grid.NewSized(12, 10)
//	ok := room.Make(g.Canvas(), rng.New(seed))
//
// # Failure
//
// Make returns false when a node cannot do its job, for example when [Place]
// exhausts its tries or [Connect] cannot link two points. Failure propagates
// to the root and nothing is rolled back: cells written before the failure
// stay written. Callers recover by discarding the grid and running the whole
// tree again with a different random draw.
//
// Malformed trees, such as a [Position] whose minimum size is not below its
// maximum, are configuration errors rather than failures. [Validate] reports
// them before a run; Make panics with a [*ConfigError] if it meets one.
//
// # State
//
// Generators are immutable values and can be invoked any number of times.
// Scratch state such as the occupancy mask of [Place] lives on the stack of a
// single Make call.
package layout
