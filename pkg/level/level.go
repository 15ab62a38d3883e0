package level

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
)

// Level is the serialised form of a grid.
type Level struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Left   int `json:"left"`
	Top    int `json:"top"`
	// Cells holds one stack per cell in row-major order.
	Cells [][]grid.Token `json:"cells"`

	Blueprint string  `json:"blueprint,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
	Palette   Palette `json:"palette,omitempty"`
}

// FromGrid flattens g.
func FromGrid(g *grid.Grid) *Level {
	b := g.Bounds()
	l := &Level{
		Width:  b.Width(),
		Height: b.Height(),
		Left:   b.Left,
		Top:    b.Top,
		Cells:  make([][]grid.Token, 0, b.Area()),
	}
	for y := b.Top; y < b.Bottom; y++ {
		for x := b.Left; x < b.Right; x++ {
			toks := g.At(geom.V(x, y)).Tokens()
			if toks == nil {
				toks = []grid.Token{}
			}
			l.Cells = append(l.Cells, toks)
		}
	}
	return l
}

// Bounds returns the rectangle the level covers.
func (l *Level) Bounds() geom.Rect {
	return geom.Sized(geom.V(l.Left, l.Top), geom.V(l.Width, l.Height))
}

// Grid rebuilds the grid.
func (l *Level) Grid() (*grid.Grid, error) {
	if l.Width < 0 || l.Height < 0 {
		return nil, fmt.Errorf("negative size %dx%d", l.Width, l.Height)
	}
	if want := l.Width * l.Height; len(l.Cells) != want {
		return nil, fmt.Errorf("%d cells for a %dx%d level, want %d", len(l.Cells), l.Width, l.Height, want)
	}
	b := l.Bounds()
	g := grid.New(b)
	i := 0
	for y := b.Top; y < b.Bottom; y++ {
		for x := b.Left; x < b.Right; x++ {
			s := g.At(geom.V(x, y))
			for _, t := range l.Cells[i] {
				s.PushBack(t)
			}
			i++
		}
	}
	return g, nil
}

// Write encodes l as indented JSON.
func Write(l *Level, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a level and checks that its cells match its size.
func Read(r io.Reader) (*Level, error) {
	var l Level
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if _, err := l.Grid(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Export writes l to a JSON file at path.
func Export(l *Level, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Import reads a level from a JSON file.
func Import(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Marshal encodes a grid compactly, for caches.
func Marshal(g *grid.Grid) ([]byte, error) {
	return json.Marshal(FromGrid(g))
}

// Unmarshal decodes a grid written by Marshal.
func Unmarshal(data []byte) (*grid.Grid, error) {
	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return l.Grid()
}
