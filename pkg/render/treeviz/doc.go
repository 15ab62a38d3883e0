// Package treeviz draws generator trees as Graphviz diagrams.
//
// Every generator becomes a box labelled with its kind and parameters.
// Edges carry the child's role ("inside", "generators[2]", ...), so the
// diagram reads like the blueprint it came from:
//
//	dot := treeviz.ToDOT(bp.Root, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(ctx, dot)
//
// Predicates are written inline in the label of the generator that uses
// them, in a compact prefix form such as and(on(floor), chance(0.1)).
package treeviz
