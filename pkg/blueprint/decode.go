package blueprint

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/level"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// DecodeError locates a malformed node of a blueprint document.
type DecodeError struct {
	// Path is the dotted location of the node, such as
	// "generator.generators[2].inside".
	Path   string
	Reason string
	Code   apperrors.Code
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

// decoder walks a generic document. It keeps the first error and turns
// every later read into a no-op returning zero values.
type decoder struct {
	err error
}

func (d *decoder) failf(path string, code apperrors.Code, format string, args ...any) {
	if d.err == nil {
		d.err = &DecodeError{Path: path, Reason: fmt.Sprintf(format, args...), Code: code}
	}
}

// node is one table of the document. Reads mark keys as used so that
// finish can reject unknown ones.
type node struct {
	d    *decoder
	path string
	code apperrors.Code
	m    map[string]any
	used map[string]bool
}

func (d *decoder) node(path string, code apperrors.Code, v any) *node {
	m, ok := asTable(v)
	if !ok {
		d.failf(path, code, "expected a table, got %s", describe(v))
		return nil
	}
	return &node{d: d, path: path, code: code, m: m, used: map[string]bool{}}
}

func (n *node) failf(format string, args ...any) {
	n.d.failf(n.path, n.code, format, args...)
}

func (n *node) child(key string) string {
	if n.path == "" {
		return key
	}
	return n.path + "." + key
}

func (n *node) get(key string) (any, bool) {
	n.used[key] = true
	v, ok := n.m[key]
	return v, ok
}

func (n *node) require(key string) (any, bool) {
	v, ok := n.get(key)
	if !ok {
		n.failf("missing field %q", key)
	}
	return v, ok
}

// finish rejects keys nothing read.
func (n *node) finish() {
	var unknown []string
	for k := range n.m {
		if !n.used[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		n.failf("unknown field %q", unknown[0])
	}
}

func (n *node) str(key string) string {
	v, ok := n.require(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		n.d.failf(n.child(key), n.code, "expected a string, got %s", describe(v))
	}
	return s
}

func (n *node) optStr(key, def string) string {
	if _, ok := n.m[key]; !ok {
		n.used[key] = true
		return def
	}
	return n.str(key)
}

func (n *node) integer(key string, def int) int {
	v, ok := n.get(key)
	if !ok {
		return def
	}
	i, ok := asInt(v)
	if !ok {
		n.d.failf(n.child(key), n.code, "expected an integer, got %s", describe(v))
	}
	return i
}

func (n *node) number(key string) float64 {
	v, ok := n.require(key)
	if !ok {
		return 0
	}
	f, ok := asFloat(v)
	if !ok {
		n.d.failf(n.child(key), n.code, "expected a number, got %s", describe(v))
	}
	return f
}

func (n *node) optNumber(key string) *float64 {
	if _, ok := n.m[key]; !ok {
		n.used[key] = true
		return nil
	}
	f := n.number(key)
	return &f
}

// ints reads a list of exactly want integers.
func (n *node) ints(key string, v any, want int) []int {
	list, ok := asList(v)
	if !ok || len(list) != want {
		n.d.failf(n.child(key), n.code, "expected a list of %d integers, got %s", want, describe(v))
		return nil
	}
	out := make([]int, want)
	for i, e := range list {
		if out[i], ok = asInt(e); !ok {
			n.d.failf(fmt.Sprintf("%s[%d]", n.child(key), i), n.code, "expected an integer, got %s", describe(e))
			return nil
		}
	}
	return out
}

func (n *node) vec(key string) *geom.Vec2 {
	v, ok := n.get(key)
	if !ok {
		return nil
	}
	xy := n.ints(key, v, 2)
	if xy == nil {
		return nil
	}
	return &geom.Vec2{X: xy[0], Y: xy[1]}
}

// rangeOf reads [min, max) or a single integer n meaning [n, n+1).
func (n *node) rangeOf(key string, def rng.Range) rng.Range {
	v, ok := n.get(key)
	if !ok {
		return def
	}
	if i, ok := asInt(v); ok {
		return rng.Single(i)
	}
	mm := n.ints(key, v, 2)
	if mm == nil {
		return def
	}
	return rng.Range{Min: mm[0], Max: mm[1]}
}

func (n *node) token(key string) grid.Token {
	s := n.str(key)
	if s == "" && n.d.err == nil {
		n.d.failf(n.child(key), n.code, "empty token")
	}
	return grid.Token(s)
}

// tokens reads a list of tokens; a single string is a list of one.
func (n *node) tokens(key string) []grid.Token {
	v, ok := n.require(key)
	if !ok {
		return nil
	}
	if s, ok := v.(string); ok {
		v = []any{s}
	}
	list, ok := asList(v)
	if !ok {
		n.d.failf(n.child(key), n.code, "expected a list of tokens, got %s", describe(v))
		return nil
	}
	out := make([]grid.Token, 0, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok || s == "" {
			n.d.failf(fmt.Sprintf("%s[%d]", n.child(key), i), n.code, "expected a token, got %s", describe(e))
			return nil
		}
		out = append(out, grid.Token(s))
	}
	return out
}

// tables reads a list of tables.
func (n *node) tables(key string, code apperrors.Code) []*node {
	v, ok := n.require(key)
	if !ok {
		return nil
	}
	list, ok := asList(v)
	if !ok {
		n.d.failf(n.child(key), n.code, "expected a list, got %s", describe(v))
		return nil
	}
	out := make([]*node, 0, len(list))
	for i, e := range list {
		c := n.d.node(fmt.Sprintf("%s[%d]", n.child(key), i), code, e)
		if c == nil {
			return nil
		}
		out = append(out, c)
	}
	return out
}

func (n *node) generator(key string) layout.Generator {
	v, ok := n.require(key)
	if !ok {
		return nil
	}
	return n.d.generator(n.child(key), v)
}

func (n *node) optGenerator(key string) layout.Generator {
	v, ok := n.get(key)
	if !ok {
		return nil
	}
	return n.d.generator(n.child(key), v)
}

func (n *node) anchor(key string) *layout.Anchor {
	if _, ok := n.m[key]; !ok {
		n.used[key] = true
		return nil
	}
	name := n.str(key)
	a, err := layout.ParseAnchor(name)
	if err != nil && n.d.err == nil {
		n.d.failf(n.child(key), n.code, "%v", err)
	}
	return &a
}

func (n *node) extent() layout.Extent {
	return layout.Extent{
		Size:    n.vec("size"),
		MinSize: n.vec("min_size"),
		MaxSize: n.vec("max_size"),
	}
}

func decodeDocument(doc map[string]any) (*Blueprint, error) {
	d := &decoder{}
	root := &node{d: d, code: apperrors.ErrCodeInvalidBlueprint, m: doc, used: map[string]bool{}}
	bp := &Blueprint{
		Name:        root.optStr("name", ""),
		Description: root.optStr("description", ""),
		Width:       root.integer("width", 0),
		Height:      root.integer("height", 0),
	}
	if bp.Width < 0 || bp.Height < 0 {
		root.failf("negative size %dx%d", bp.Width, bp.Height)
	}
	if v, ok := root.get("palette"); ok {
		bp.Palette = d.palette("palette", v)
	}
	bp.Root = root.generator("generator")
	root.finish()
	if d.err != nil {
		return nil, d.err
	}
	return bp, nil
}

// palette reads token = "g" or token = { glyph = "g", color = "#rrggbb" }.
func (d *decoder) palette(path string, v any) level.Palette {
	m, ok := asTable(v)
	if !ok {
		d.failf(path, apperrors.ErrCodeInvalidBlueprint, "expected a table, got %s", describe(v))
		return nil
	}
	p := make(level.Palette, len(m))
	for tok, e := range m {
		entryPath := path + "." + tok
		var g level.Glyph
		if s, ok := e.(string); ok {
			g.Char = s
		} else {
			n := d.node(entryPath, apperrors.ErrCodeInvalidBlueprint, e)
			if n == nil {
				return nil
			}
			g.Char = n.str("glyph")
			g.Color = n.optStr("color", "")
			n.finish()
		}
		if err := g.Validate(); err != nil {
			d.failf(entryPath, apperrors.ErrCodeInvalidBlueprint, "%v", err)
		}
		p[grid.Token(tok)] = g
	}
	return p
}

func asTable(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[fmt.Sprint(k)] = e
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, e := range l {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int(n), true
		}
	}
	return 0, false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("bool %v", v)
	}
	if _, ok := asTable(v); ok {
		return "a table"
	}
	if _, ok := asList(v); ok {
		return "a list"
	}
	if f, ok := asFloat(v); ok {
		return fmt.Sprintf("number %v", f)
	}
	return fmt.Sprintf("%T", v)
}
