package treeviz

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/predicate"
	"github.com/matzehuels/levelgen/pkg/rng"
)

func room() layout.Generator {
	return layout.Chain{Generators: []layout.Generator{
		layout.Reset{Tokens: []grid.Token{"rock"}},
		layout.Margins{
			Width:  1,
			Border: layout.Set{Tokens: []grid.Token{"wall"}},
			Inside: layout.Filter{
				Predicate: predicate.And{predicate.On{Token: "floor"}, predicate.Chance{Value: 0.1}},
				Generator: layout.SetFront{Token: "door"},
			},
		},
	}}
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(room(), Options{})

	if !strings.HasPrefix(dot, "digraph Generator {") {
		t.Errorf("ToDOT() should start with the digraph header, got %q", dot[:20])
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("ToDOT() should end with '}'")
	}
	for _, want := range []string{
		`n0 [label="chain"`,
		`n1 [label="reset"`,
		`n2 [label="margins"`,
		`n3 [label="filter"`,
		`n4 [label="set_front"`,
		`n5 [label="set"`,
		`n0 -> n1 [label="generators[0]"]`,
		`n0 -> n2 [label="generators[1]"]`,
		`n2 -> n3 [label="inside"]`,
		`n3 -> n4 [label="generator"]`,
		`n2 -> n5 [label="border"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "->"); n != 5 {
		t.Errorf("ToDOT() has %d edges, want 5", n)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(room(), Options{Detailed: true})
	for _, want := range []string{
		`"reset\nrock"`,
		`"margins\nwidth 1"`,
		`"filter\nif and(on(floor), chance(0.1))"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT(Detailed) missing %s in\n%s", want, dot)
		}
	}
}

func TestToDOTSingleNode(t *testing.T) {
	dot := ToDOT(layout.None{}, Options{})
	if !strings.Contains(dot, `n0 [label="none"`) {
		t.Errorf("ToDOT(None) = %s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT(None) should have no edges")
	}
}

func TestDescribe(t *testing.T) {
	size := geom.V(2, 3)
	lo, hi := geom.V(4, 4), geom.V(8, 6)
	anchor := layout.AnchorTopCenter
	cost := 2.5
	tests := []struct {
		name string
		g    layout.Generator
		want []string
	}{
		{"set", layout.Set{Tokens: []grid.Token{"wall", "stone"}}, []string{"wall stone"}},
		{"margin", layout.Margin{Side: layout.SideLeft, Width: 2}, []string{"left 2"}},
		{"split", layout.SplitV{Ratio: 0.25}, []string{"ratio 0.25"}},
		{"position", layout.Position{Extent: layout.Extent{Size: &size}, Anchor: layout.AnchorMiddle}, []string{"2x3", "middle"}},
		{"place", layout.Place{Entries: []layout.PlaceEntry{{
			Extent:     layout.Extent{MinSize: &lo, MaxSize: &hi},
			Count:      rng.Range{Min: 1, Max: 3},
			MinSpacing: 1,
			Anchor:     &anchor,
		}}}, []string{"[0] 4x4..8x6 x[1,3) gap 1 @top_center"}},
		{"noise", layout.NoiseMap{Bands: []layout.NoiseBand{{Lower: 0, Upper: 0.5}}}, []string{"[0] 0..0.5"}},
		{"repeat", layout.Repeat{Count: rng.Single(3)}, []string{"count [3,4)"}},
		{"choose", layout.Choose{Options: []layout.Option{{Chance: rng.Ptr(0.5)}, {}}}, []string{"[0] 0.5", "[1] 0.5"}},
		{"connect", layout.Connect{
			ToConnect: predicate.On{Token: "door"},
			Connectors: []layout.Connector{
				{Cost: &cost, Predicate: predicate.On{Token: "floor"}},
				{Predicate: predicate.True{}},
			},
		}, []string{"points on(door)", "[0] on(floor) cost 2.5", "[1] true blocked"}},
		{"none", layout.None{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe(tt.g)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicate(t *testing.T) {
	tests := []struct {
		p    predicate.Predicate
		want string
	}{
		{nil, "true"},
		{predicate.False{}, "false"},
		{predicate.Not{Predicate: predicate.On{Token: "water"}}, "not(on(water))"},
		{predicate.Or{predicate.XMod{Div: 3, Mod: 1}, predicate.YMod{Div: 2}}, "or(x%3=1, y%2=0)"},
		{predicate.Area{Radius: 1, Predicate: predicate.On{Token: "floor"}}, "area(on(floor), r=1, n=1)"},
	}
	for _, tt := range tests {
		if got := Predicate(tt.p); got != tt.want {
			t.Errorf("Predicate(%#v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(room(), Options{Detailed: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
