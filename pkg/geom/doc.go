// Package geom provides the integer geometry shared by the layout engine.
//
// [Vec2] is a grid coordinate and [Rect] an axis-aligned half-open region
// [Left, Right) x [Top, Bottom). Both are small immutable values: every
// operation returns a new value and never mutates its receiver.
//
// Rectangles iterate column-major (x outer, y inner), which is the order the
// generators visit cells in and therefore part of their deterministic RNG
// consumption:
//
//	for v := range r.All() {
//	    ...
//	}
package geom
