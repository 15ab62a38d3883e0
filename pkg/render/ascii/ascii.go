// Package ascii draws finished levels as text, one character per cell.
//
// Each cell shows the glyph of its front-most token that has a palette
// entry. Empty cells print as [EmptyGlyph] and cells whose tokens are all
// missing from the palette print as [UnknownGlyph]:
//
//	out := ascii.Render(g, ascii.Options{Palette: bp.Palette})
//
// With Color set, glyphs that carry a colour are wrapped in ANSI escapes
// through lipgloss. The renderer decides how many colours the terminal
// supports; pass one explicitly to target something other than stdout.
package ascii

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/level"
)

const (
	EmptyGlyph   = "."
	UnknownGlyph = "?"
)

// Options configures rendering.
type Options struct {
	Palette level.Palette
	Color   bool
	// Renderer styles coloured output. Nil uses lipgloss's default
	// renderer, which inspects stdout.
	Renderer *lipgloss.Renderer
}

// Render returns the level as newline-terminated rows.
func Render(g *grid.Grid, opts Options) string {
	var sb strings.Builder
	r := newRenderer(opts)
	b := g.Bounds()
	sb.Grow((b.Width() + 1) * b.Height())
	for y := b.Top; y < b.Bottom; y++ {
		for x := b.Left; x < b.Right; x++ {
			sb.WriteString(r.cell(g.At(geom.V(x, y))))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write renders g to w.
func Write(w io.Writer, g *grid.Grid, opts Options) error {
	_, err := io.WriteString(w, Render(g, opts))
	return err
}

type renderer struct {
	opts   Options
	styles map[string]lipgloss.Style
}

func newRenderer(opts Options) *renderer {
	if opts.Color && opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	return &renderer{opts: opts, styles: make(map[string]lipgloss.Style)}
}

func (r *renderer) cell(s *grid.Stack) string {
	if s.Len() == 0 {
		return EmptyGlyph
	}
	gl, ok := r.opts.Palette.Lookup(s)
	if !ok {
		return UnknownGlyph
	}
	if !r.opts.Color || gl.Color == "" {
		return gl.Char
	}
	return r.style(gl.Color).Render(gl.Char)
}

func (r *renderer) style(color string) lipgloss.Style {
	st, ok := r.styles[color]
	if !ok {
		st = r.opts.Renderer.NewStyle().Foreground(lipgloss.Color(color))
		r.styles[color] = st
	}
	return st
}
