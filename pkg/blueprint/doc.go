// Package blueprint reads level recipes from TOML, YAML or JSON files.
//
// A blueprint names a generator tree and, optionally, a default size and a
// palette for terminal output:
//
//	name = "crypt"
//	width = 40
//	height = 20
//
//	[palette]
//	wall = { glyph = "#", color = "#777777" }
//	floor = "."
//
//	[generator]
//	type = "chain"
//
//	[[generator.generators]]
//	type = "reset"
//	tokens = ["floor"]
//
//	[[generator.generators]]
//	type = "margins"
//	width = 1
//	border = { type = "set", tokens = ["wall"] }
//	inside = { type = "none" }
//
// Every generator and predicate is a table with a "type" key naming its
// variant in snake_case ("split_h", "noise_map", "x_mod"). Vectors are
// [x, y] pairs and ranges are [min, max) pairs; a range may also be a
// single integer n, meaning exactly n.
//
// Decoding errors name the offending node, for example
// "generator.generators[2].inside: unknown type \"box\"". A successfully
// parsed blueprint has also passed [layout.Validate], so generating from it
// never panics on configuration.
package blueprint
