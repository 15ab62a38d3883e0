// Package grid holds the mutable target of layout generation.
//
// A [Grid] is a bounded 2D table of token [Stack]s. A [Canvas] pairs a grid
// with the sub-rectangle a generator currently acts on; narrowing the canvas
// with [Canvas.With] copies a rectangle, never the grid, so every view of one
// generation run mutates the same cells.
//
// Stacks are ordered and duplicate-free: [Stack.PushBack] and
// [Stack.PushFront] insert only tokens that are not already present.
package grid
