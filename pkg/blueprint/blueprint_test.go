package blueprint

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/level"
	"github.com/matzehuels/levelgen/pkg/predicate"
	"github.com/matzehuels/levelgen/pkg/rng"
)

func parityTree() layout.Generator {
	return layout.Chain{Generators: []layout.Generator{
		layout.Reset{Tokens: []grid.Token{"rock"}},
		layout.Margins{
			Width:  1,
			Border: layout.Set{Tokens: []grid.Token{"wall"}},
			Inside: layout.SplitH{
				Ratio: 0.5,
				Left:  layout.Set{Tokens: []grid.Token{"floor"}},
				Right: layout.Position{
					Extent:    layout.Extent{Size: &geom.Vec2{X: 2, Y: 2}},
					Anchor:    layout.AnchorMiddle,
					Generator: layout.Set{Tokens: []grid.Token{"water"}},
				},
			},
		},
		layout.Filter{
			Predicate: predicate.And{predicate.On{Token: "floor"}, predicate.Chance{Value: 0.1}},
			Generator: layout.SetFront{Token: "door"},
			Alt:       layout.None{},
		},
		layout.Repeat{
			Count: rng.Range{Min: 1, Max: 3},
			Generator: layout.Place{Entries: []layout.PlaceEntry{{
				Extent:    layout.Extent{Size: &geom.Vec2{X: 1, Y: 1}},
				Generator: layout.Set{Tokens: []grid.Token{"crate"}},
				Count:     rng.Single(2),
				Predicate: predicate.On{Token: "floor"},
			}}},
		},
	}}
}

func TestLoadFormatParity(t *testing.T) {
	wantPalette := level.Palette{
		"wall":  {Char: "#", Color: "#6c6c6c"},
		"floor": {Char: "."},
	}
	for _, name := range []string{"parity.toml", "parity.yaml", "parity.json"} {
		t.Run(name, func(t *testing.T) {
			bp, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if bp.Name != "parity" || bp.Width != 12 || bp.Height != 8 {
				t.Errorf("header = %q %dx%d", bp.Name, bp.Width, bp.Height)
			}
			if !reflect.DeepEqual(bp.Palette, wantPalette) {
				t.Errorf("Palette = %v, want %v", bp.Palette, wantPalette)
			}
			if !reflect.DeepEqual(bp.Root, parityTree()) {
				t.Errorf("Root = %#v\nwant %#v", bp.Root, parityTree())
			}
		})
	}
}

func TestLoadExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "blueprints", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example blueprints")
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			bp, err := Load(p)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if bp.Width <= 0 || bp.Height <= 0 {
				t.Errorf("example should set a size, got %dx%d", bp.Width, bp.Height)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code apperrors.Code
		path string
	}{
		{
			name: "missing generator",
			doc:  `{"name": "x"}`,
			code: apperrors.ErrCodeInvalidBlueprint,
			path: "",
		},
		{
			name: "unknown generator type",
			doc:  `{"generator": {"type": "chain", "generators": [{"type": "none"}, {"type": "margins", "border": {"type": "none"}, "inside": {"type": "box"}}]}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator.generators[1].inside",
		},
		{
			name: "unknown field",
			doc:  `{"generator": {"type": "set", "tokens": ["a"], "tokenz": ["b"]}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator",
		},
		{
			name: "bad predicate",
			doc:  `{"generator": {"type": "filter", "generator": {"type": "none"}, "predicate": {"type": "or", "predicates": [{"type": "on", "token": "a"}, {"type": "x_mod", "div": 0}]}}}`,
			code: apperrors.ErrCodeInvalidPredicate,
			path: "generator.predicate.predicates[1].div",
		},
		{
			name: "chance out of range",
			doc:  `{"generator": {"type": "filter", "generator": {"type": "none"}, "predicate": {"type": "chance", "value": 1.5}}}`,
			code: apperrors.ErrCodeInvalidPredicate,
			path: "generator.predicate.value",
		},
		{
			name: "vector arity",
			doc:  `{"generator": {"type": "position", "size": [1, 2, 3], "generator": {"type": "none"}}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator.size",
		},
		{
			name: "unknown anchor",
			doc:  `{"generator": {"type": "position", "size": [1, 1], "anchor": "north", "generator": {"type": "none"}}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator.anchor",
		},
		{
			name: "unknown side",
			doc:  `{"generator": {"type": "margin", "side": "up", "border": {"type": "none"}, "inside": {"type": "none"}}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator.side",
		},
		{
			name: "place entry without generator",
			doc:  `{"generator": {"type": "place", "entries": [{"size": [1, 1]}]}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator.entries[0]",
		},
		{
			name: "bad glyph",
			doc:  `{"palette": {"wall": "##"}, "generator": {"type": "none"}}`,
			code: apperrors.ErrCodeInvalidBlueprint,
			path: "palette.wall",
		},
		{
			name: "string for number",
			doc:  `{"generator": {"type": "split_v", "ratio": "half", "top": {"type": "none"}, "bottom": {"type": "none"}}}`,
			code: apperrors.ErrCodeInvalidGenerator,
			path: "generator.ratio",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error %v does not carry a DecodeError", err)
			}
			if de.Path != tt.path {
				t.Errorf("Path = %q, want %q (%v)", de.Path, tt.path, err)
			}
		})
	}
}

func TestParseRunsValidate(t *testing.T) {
	doc := `{"generator": {"type": "split_h", "ratio": 1.5, "left": {"type": "none"}, "right": {"type": "none"}}}`
	_, err := Parse([]byte(doc), FormatJSON)
	var ce *layout.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want a layout.ConfigError", err)
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidGenerator) {
		t.Errorf("code = %v", apperrors.GetCode(err))
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("generator = {"), FormatTOML)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidBlueprint) {
		t.Errorf("err = %v, want INVALID_BLUEPRINT", err)
	}
}

func TestParseDefaults(t *testing.T) {
	doc := `
generator:
  type: chain
  generators:
    - type: margins
      border: {type: none}
      inside: {type: none}
    - type: place
      entries:
        - size: [1, 1]
          generator: {type: none}
    - type: position
      size: [1, 1]
      generator: {type: none}
    - type: filter
      predicate: true
      generator: {type: none}
`
	bp, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	gens := bp.Root.(layout.Chain).Generators
	if w := gens[0].(layout.Margins).Width; w != 1 {
		t.Errorf("margins width = %d, want 1", w)
	}
	e := gens[1].(layout.Place).Entries[0]
	if e.Count != layout.DefaultCount || e.MinSpacing != 0 || e.Predicate != nil || e.Anchor != nil {
		t.Errorf("place entry defaults = %+v", e)
	}
	if a := gens[2].(layout.Position).Anchor; a != layout.AnchorMiddle {
		t.Errorf("position anchor = %v, want middle", a)
	}
	if _, ok := gens[3].(layout.Filter).Predicate.(predicate.True); !ok {
		t.Error("bare true should decode as predicate.True")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "level.txt")); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension: %v", err)
	}

	path := filepath.Join(dir, "vault.yml")
	if err := os.WriteFile(path, []byte("generator: {type: none}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bp, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if bp.Name != "vault" || bp.Format != FormatYAML {
		t.Errorf("Name = %q, Format = %q", bp.Name, bp.Format)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"generator": {"type": "nope"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidGenerator) || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("bad blueprint: %v", err)
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.toml", FormatTOML, true},
		{"a.YAML", FormatYAML, true},
		{"dir/a.yml", FormatYAML, true},
		{"a.json", FormatJSON, true},
		{"a.txt", "", false},
		{"toml", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
		if IsBlueprintFile(tt.path) != tt.ok {
			t.Errorf("IsBlueprintFile(%q) != %v", tt.path, tt.ok)
		}
	}
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
