package level

import (
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/levelgen/pkg/grid"
)

// Glyph is how a token is drawn in a terminal.
type Glyph struct {
	Char string `json:"glyph" yaml:"glyph" toml:"glyph"`
	// Color is a lipgloss colour: a hex string such as "#5f87af" or an
	// ANSI number. Empty means the terminal default.
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Validate checks that the glyph is a single printable character.
func (g Glyph) Validate() error {
	if utf8.RuneCountInString(g.Char) != 1 {
		return fmt.Errorf("glyph %q must be exactly one character", g.Char)
	}
	return nil
}

// Palette maps tokens to glyphs.
type Palette map[grid.Token]Glyph

// Lookup returns the glyph of the top-most token of s that has one.
func (p Palette) Lookup(s *grid.Stack) (Glyph, bool) {
	toks := s.Tokens()
	for i := len(toks) - 1; i >= 0; i-- {
		if g, ok := p[toks[i]]; ok {
			return g, true
		}
	}
	return Glyph{}, false
}

// Merge returns a copy of p with the entries of o added, o winning on
// conflicts.
func (p Palette) Merge(o Palette) Palette {
	out := make(Palette, len(p)+len(o))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}
