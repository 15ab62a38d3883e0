package blueprint

import (
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/predicate"
)

// GeneratorTypes lists the generator type names.
var GeneratorTypes = []string{
	"none", "set", "set_front", "reset", "remove", "filter", "margins",
	"margin", "split_h", "split_v", "position", "place", "noise_map", "chain",
	"repeat", "choose", "connect", "flood_fill",
}

const codeGenerator = apperrors.ErrCodeInvalidGenerator

func (d *decoder) generator(path string, v any) layout.Generator {
	n := d.node(path, codeGenerator, v)
	if n == nil {
		return nil
	}
	typ := n.str("type")
	var g layout.Generator
	switch typ {
	case "none":
		g = layout.None{}
	case "set":
		g = layout.Set{Tokens: n.tokens("tokens")}
	case "set_front":
		g = layout.SetFront{Token: n.token("token")}
	case "reset":
		g = layout.Reset{Tokens: n.tokens("tokens")}
	case "remove":
		g = layout.Remove{Tokens: n.tokens("tokens")}
	case "filter":
		g = layout.Filter{
			Predicate: n.predicate("predicate"),
			Generator: n.generator("generator"),
			Alt:       n.optGenerator("alt"),
		}
	case "margins":
		g = layout.Margins{
			Width:  n.integer("width", 1),
			Border: n.generator("border"),
			Inside: n.generator("inside"),
		}
	case "margin":
		g = d.margin(n)
	case "split_h":
		g = layout.SplitH{
			Ratio: n.number("ratio"),
			Left:  n.generator("left"),
			Right: n.generator("right"),
		}
	case "split_v":
		g = layout.SplitV{
			Ratio:  n.number("ratio"),
			Top:    n.generator("top"),
			Bottom: n.generator("bottom"),
		}
	case "position":
		p := layout.Position{Extent: n.extent(), Generator: n.generator("generator")}
		if a := n.anchor("anchor"); a != nil {
			p.Anchor = *a
		}
		g = p
	case "place":
		g = d.place(n)
	case "noise_map":
		g = d.noiseMap(n)
	case "chain":
		g = d.chain(n)
	case "repeat":
		if _, ok := n.require("count"); ok {
			g = layout.Repeat{
				Count:     n.rangeOf("count", layout.DefaultCount),
				Generator: n.generator("generator"),
			}
		}
	case "choose":
		g = d.choose(n)
	case "connect":
		g = d.connect(n)
	case "flood_fill":
		g = layout.FloodFill{
			Predicate: n.predicate("predicate"),
			Generator: n.generator("generator"),
		}
	default:
		if d.err == nil {
			n.failf("unknown generator type %q", typ)
		}
		return nil
	}
	n.finish()
	return g
}

func (d *decoder) margin(n *node) layout.Generator {
	side, err := layout.ParseSide(n.str("side"))
	if err != nil && d.err == nil {
		d.failf(n.child("side"), n.code, "%v", err)
	}
	return layout.Margin{
		Side:   side,
		Width:  n.integer("width", 1),
		Border: n.generator("border"),
		Inside: n.generator("inside"),
	}
}

func (d *decoder) place(n *node) layout.Generator {
	var p layout.Place
	for _, e := range n.tables("entries", codeGenerator) {
		p.Entries = append(p.Entries, layout.PlaceEntry{
			Extent:     e.extent(),
			Generator:  e.generator("generator"),
			Count:      e.rangeOf("count", layout.DefaultCount),
			MinSpacing: e.integer("min_spacing", 0),
			Predicate:  e.optPredicate("predicate"),
			Anchor:     e.anchor("anchor"),
		})
		e.finish()
	}
	return p
}

func (d *decoder) noiseMap(n *node) layout.Generator {
	var m layout.NoiseMap
	for _, b := range n.tables("bands", codeGenerator) {
		m.Bands = append(m.Bands, layout.NoiseBand{
			Lower:     b.number("lower"),
			Upper:     b.number("upper"),
			Generator: b.generator("generator"),
		})
		b.finish()
	}
	return m
}

func (d *decoder) chain(n *node) layout.Generator {
	v, ok := n.require("generators")
	if !ok {
		return nil
	}
	list, ok := asList(v)
	if !ok {
		d.failf(n.child("generators"), n.code, "expected a list, got %s", describe(v))
		return nil
	}
	c := layout.Chain{Generators: make([]layout.Generator, 0, len(list))}
	for i, e := range list {
		c.Generators = append(c.Generators, d.generator(indexed(n.child("generators"), i), e))
	}
	return c
}

func (d *decoder) choose(n *node) layout.Generator {
	var c layout.Choose
	for _, o := range n.tables("options", codeGenerator) {
		c.Options = append(c.Options, layout.Option{
			Chance:    o.optNumber("chance"),
			Generator: o.generator("generator"),
		})
		o.finish()
	}
	return c
}

func (d *decoder) connect(n *node) layout.Generator {
	c := layout.Connect{ToConnect: n.predicate("to_connect")}
	for _, e := range n.tables("connectors", codeGenerator) {
		c.Connectors = append(c.Connectors, layout.Connector{
			Cost:      e.optNumber("cost"),
			Predicate: e.predicate("predicate"),
			Generator: e.generator("generator"),
		})
		e.finish()
	}
	return c
}

func (n *node) predicate(key string) predicate.Predicate {
	v, ok := n.require(key)
	if !ok {
		return nil
	}
	return n.d.predicate(n.child(key), v)
}

func (n *node) optPredicate(key string) predicate.Predicate {
	v, ok := n.get(key)
	if !ok {
		return nil
	}
	return n.d.predicate(n.child(key), v)
}
