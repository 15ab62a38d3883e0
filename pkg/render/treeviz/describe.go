package treeviz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/predicate"
)

// describe lists the parameters of g, one short line each. Children are
// drawn as edges and left out.
func describe(g layout.Generator) []string {
	switch g := g.(type) {
	case layout.Set:
		return []string{tokens(g.Tokens)}
	case layout.SetFront:
		return []string{string(g.Token)}
	case layout.Reset:
		return []string{tokens(g.Tokens)}
	case layout.Remove:
		return []string{tokens(g.Tokens)}
	case layout.Filter:
		return []string{"if " + Predicate(g.Predicate)}
	case layout.FloodFill:
		return []string{"region " + Predicate(g.Predicate)}
	case layout.Margins:
		return []string{fmt.Sprintf("width %d", g.Width)}
	case layout.Margin:
		return []string{fmt.Sprintf("%s %d", g.Side, g.Width)}
	case layout.SplitH:
		return []string{"ratio " + num(g.Ratio)}
	case layout.SplitV:
		return []string{"ratio " + num(g.Ratio)}
	case layout.Position:
		return []string{extent(g.Extent), g.Anchor.String()}
	case layout.Place:
		out := make([]string, len(g.Entries))
		for i, e := range g.Entries {
			out[i] = fmt.Sprintf("[%d] %s x%s", i, extent(e.Extent), e.Count)
			if e.MinSpacing > 0 {
				out[i] += fmt.Sprintf(" gap %d", e.MinSpacing)
			}
			if e.Anchor != nil {
				out[i] += " @" + e.Anchor.String()
			}
			if e.Predicate != nil {
				out[i] += " if " + Predicate(e.Predicate)
			}
		}
		return out
	case layout.NoiseMap:
		out := make([]string, len(g.Bands))
		for i, b := range g.Bands {
			out[i] = fmt.Sprintf("[%d] %s..%s", i, num(b.Lower), num(b.Upper))
		}
		return out
	case layout.Repeat:
		return []string{"count " + g.Count.String()}
	case layout.Choose:
		chances := g.Chances()
		out := make([]string, len(chances))
		for i, c := range chances {
			out[i] = fmt.Sprintf("[%d] %s", i, num(c))
		}
		return out
	case layout.Connect:
		out := []string{"points " + Predicate(g.ToConnect)}
		for i, c := range g.Connectors {
			cost := "blocked"
			if c.Cost != nil {
				cost = "cost " + num(*c.Cost)
			}
			out = append(out, fmt.Sprintf("[%d] %s %s", i, Predicate(c.Predicate), cost))
		}
		return out
	}
	return nil
}

// Predicate formats p in prefix notation, e.g. and(on(floor), chance(0.1)).
func Predicate(p predicate.Predicate) string {
	switch p := p.(type) {
	case nil:
		return "true"
	case predicate.True:
		return "true"
	case predicate.False:
		return "false"
	case predicate.On:
		return "on(" + string(p.Token) + ")"
	case predicate.Not:
		return "not(" + Predicate(p.Predicate) + ")"
	case predicate.And:
		return "and(" + predicates(p) + ")"
	case predicate.Or:
		return "or(" + predicates(p) + ")"
	case predicate.Chance:
		return "chance(" + num(p.Value) + ")"
	case predicate.Area:
		return fmt.Sprintf("area(%s, r=%d, n=%d)", Predicate(p.Predicate), p.Radius, max(p.MinCount, 1))
	case predicate.XMod:
		return fmt.Sprintf("x%%%d=%d", p.Div, p.Mod)
	case predicate.YMod:
		return fmt.Sprintf("y%%%d=%d", p.Div, p.Mod)
	}
	return fmt.Sprintf("%T", p)
}

func predicates(ps []predicate.Predicate) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = Predicate(p)
	}
	return strings.Join(parts, ", ")
}

func tokens(ts []grid.Token) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

func extent(e layout.Extent) string {
	if e.Size != nil {
		return fmt.Sprintf("%dx%d", e.Size.X, e.Size.Y)
	}
	if e.MinSize != nil && e.MaxSize != nil {
		return fmt.Sprintf("%dx%d..%dx%d", e.MinSize.X, e.MinSize.Y, e.MaxSize.X, e.MaxSize.Y)
	}
	return "?"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
