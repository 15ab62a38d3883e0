// Package render groups the level and blueprint renderers.
//
//   - [ascii] draws a grid as rows of glyphs, optionally coloured
//   - [treeviz] draws a blueprint's generator tree as DOT or SVG
//
// The pipeline picks renderers by format name; see pipeline.Formats.
package render
