package layout

import "fmt"

// Child is an edge of a generator tree.
type Child struct {
	// Label names the edge, such as "inside" or "generators[2]".
	Label     string
	Generator Generator
}

// Kind returns the short name of g's variant, as used in blueprint files.
func Kind(g Generator) string {
	switch g.(type) {
	case None:
		return "none"
	case Set:
		return "set"
	case SetFront:
		return "set_front"
	case Reset:
		return "reset"
	case Remove:
		return "remove"
	case Filter:
		return "filter"
	case Margins:
		return "margins"
	case Margin:
		return "margin"
	case SplitH:
		return "split_h"
	case SplitV:
		return "split_v"
	case Position:
		return "position"
	case Place:
		return "place"
	case NoiseMap:
		return "noise_map"
	case Chain:
		return "chain"
	case Repeat:
		return "repeat"
	case Choose:
		return "choose"
	case Connect:
		return "connect"
	case FloodFill:
		return "flood_fill"
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", g)
}

// Children returns the direct children of g in evaluation order. Optional
// children that are unset are omitted.
func Children(g Generator) []Child {
	switch g := g.(type) {
	case Filter:
		out := []Child{{"generator", g.Generator}}
		if g.Alt != nil {
			out = append(out, Child{"alt", g.Alt})
		}
		return out
	case Margins:
		return []Child{{"inside", g.Inside}, {"border", g.Border}}
	case Margin:
		return []Child{{"border", g.Border}, {"inside", g.Inside}}
	case SplitH:
		return []Child{{"left", g.Left}, {"right", g.Right}}
	case SplitV:
		return []Child{{"top", g.Top}, {"bottom", g.Bottom}}
	case Position:
		return []Child{{"generator", g.Generator}}
	case Place:
		out := make([]Child, len(g.Entries))
		for i, e := range g.Entries {
			out[i] = Child{fmt.Sprintf("entries[%d]", i), e.Generator}
		}
		return out
	case NoiseMap:
		out := make([]Child, len(g.Bands))
		for i, b := range g.Bands {
			out[i] = Child{fmt.Sprintf("bands[%d]", i), b.Generator}
		}
		return out
	case Chain:
		out := make([]Child, len(g.Generators))
		for i, c := range g.Generators {
			out[i] = Child{fmt.Sprintf("generators[%d]", i), c}
		}
		return out
	case Repeat:
		return []Child{{"generator", g.Generator}}
	case Choose:
		out := make([]Child, len(g.Options))
		for i, o := range g.Options {
			out[i] = Child{fmt.Sprintf("options[%d]", i), o.Generator}
		}
		return out
	case Connect:
		out := make([]Child, len(g.Connectors))
		for i, e := range g.Connectors {
			out[i] = Child{fmt.Sprintf("connectors[%d]", i), e.Generator}
		}
		return out
	case FloodFill:
		return []Child{{"generator", g.Generator}}
	}
	return nil
}

// Walk calls fn for g and every descendant, depth first, with the path of
// labels leading to each node. It stops descending below a node when fn
// returns false.
func Walk(g Generator, fn func(path string, g Generator) bool) {
	walk("", g, fn)
}

func walk(path string, g Generator, fn func(string, Generator) bool) {
	if !fn(path, g) || g == nil {
		return
	}
	for _, c := range Children(g) {
		p := c.Label
		if path != "" {
			p = path + "." + c.Label
		}
		walk(p, c.Generator, fn)
	}
}

// Count returns the number of nodes in the tree rooted at g.
func Count(g Generator) int {
	n := 0
	Walk(g, func(string, Generator) bool {
		n++
		return true
	})
	return n
}
