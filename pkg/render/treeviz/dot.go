package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/levelgen/pkg/layout"
)

// Options configures the diagram.
type Options struct {
	// Detailed adds parameters (tokens, ratios, sizes, predicates) below
	// each kind. When false only the kind is shown.
	Detailed bool
}

// ToDOT converts a generator tree to Graphviz DOT.
func ToDOT(root layout.Generator, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Generator {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10, color=\"#888888\"];\n")
	buf.WriteString("\n")

	ids := map[string]string{}
	var edges []string
	layout.Walk(root, func(path string, g layout.Generator) bool {
		id := fmt.Sprintf("n%d", len(ids))
		ids[path] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs(g, opts), ", "))
		if path != "" {
			parent, label := splitPath(path)
			edges = append(edges, fmt.Sprintf("  %s -> %s [label=%q];\n", ids[parent], id, label))
		}
		return true
	})

	if len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// splitPath separates a walk path into its parent path and last label.
// Labels never contain dots.
func splitPath(path string) (parent, label string) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

func attrs(g layout.Generator, opts Options) []string {
	label := layout.Kind(g)
	if opts.Detailed {
		if d := describe(g); len(d) > 0 {
			label += "\n" + strings.Join(d, "\n")
		}
	}
	out := []string{fmt.Sprintf("label=%q", label)}
	switch g.(type) {
	case layout.None:
		out = append(out, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case layout.Chain, layout.Repeat, layout.Choose:
		out = append(out, "fillcolor=\"#e8f0fe\"")
	case layout.Set, layout.SetFront, layout.Reset, layout.Remove:
		out = append(out, "fillcolor=\"#e6f4ea\"")
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox with
// matching pixel size, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
