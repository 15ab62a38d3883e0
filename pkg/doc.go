// Package pkg holds the levelgen libraries.
//
// # Overview
//
// A level is a grid of token stacks. Generators draw on a rectangular
// canvas of that grid using a seeded RNG and report whether they
// succeeded; small generators compose into a tree described by a
// blueprint file. The packages, bottom-up:
//
//  1. [geom], [grid], [rng] - vectors and rectangles, the token grid, the
//     seeded random source
//  2. [noise], [predicate], [pathfind] - value noise, cell predicates,
//     weighted shortest paths
//  3. [layout] - the generators and their validation
//  4. [blueprint], [level] - blueprint parsing, serialised levels and
//     palettes
//  5. [pipeline] - the retry loop, caching and output formats
//  6. [render], [cache], [observability], [errors], [buildinfo] - support
//
// # Data Flow
//
//	blueprint file (toml, yaml, json)
//	         ↓
//	    [blueprint] (decode, validate)
//	         ↓
//	    [pipeline] (attempt with seed, seed+1, ... until a generator tree succeeds)
//	         ↓
//	    [level] / [render] (json, ascii)
//
// # Quick Start
//
//	bp, err := blueprint.Load("crypt.toml")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Generate(ctx, bp, pipeline.Options{Seed: 7, Formats: []string{"ascii"}})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Artifacts["ascii"])
package pkg
