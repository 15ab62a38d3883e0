// Package level is the wire format of generated levels.
//
// A [Level] is a finished grid flattened into JSON: its bounds and, in
// row-major order, every cell's token stack from bottom to top.
//
//	{
//	  "width": 3, "height": 1, "left": 0, "top": 0,
//	  "cells": [["floor"], ["floor", "door"], ["wall"]]
//	}
//
// The same document is written by the CLI's json output, returned by the
// HTTP API and stored in the level cache. [Palette] maps tokens to display
// glyphs for the terminal renderer.
package level
