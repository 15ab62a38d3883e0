package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/levelgen/pkg/level"
	"github.com/matzehuels/levelgen/pkg/render/ascii"
)

// Render produces the artifacts for opts.Formats from a result.
func Render(res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatASCII:
			data = []byte(ascii.Render(res.Grid, ascii.Options{Palette: res.Palette, Color: opts.Color}))
		case FormatJSON:
			var buf bytes.Buffer
			if err := level.Write(res.Level(), &buf); err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
