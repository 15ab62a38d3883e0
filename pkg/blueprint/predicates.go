package blueprint

import (
	"fmt"

	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/predicate"
)

// PredicateTypes lists the predicate type names.
var PredicateTypes = []string{
	"on", "not", "true", "false", "and", "or", "chance", "area", "x_mod", "y_mod",
}

const codePredicate = apperrors.ErrCodeInvalidPredicate

// predicate decodes a predicate table. The bare booleans true and false
// stand for the constant predicates.
func (d *decoder) predicate(path string, v any) predicate.Predicate {
	if b, ok := v.(bool); ok {
		if b {
			return predicate.True{}
		}
		return predicate.False{}
	}
	n := d.node(path, codePredicate, v)
	if n == nil {
		return nil
	}
	typ := n.str("type")
	var p predicate.Predicate
	switch typ {
	case "on":
		p = predicate.On{Token: n.token("token")}
	case "not":
		p = predicate.Not{Predicate: n.predicate("predicate")}
	case "true":
		p = predicate.True{}
	case "false":
		p = predicate.False{}
	case "and":
		p = predicate.And(d.predicates(n))
	case "or":
		p = predicate.Or(d.predicates(n))
	case "chance":
		c := n.number("value")
		if !(c >= 0 && c <= 1) && d.err == nil {
			d.failf(n.child("value"), codePredicate, "chance %v outside [0, 1]", c)
		}
		p = predicate.Chance{Value: c}
	case "area":
		a := predicate.Area{
			Radius:    n.integer("radius", 1),
			Predicate: n.predicate("predicate"),
			MinCount:  n.integer("min_count", 1),
		}
		if a.Radius < 0 && d.err == nil {
			d.failf(n.child("radius"), codePredicate, "negative radius %d", a.Radius)
		}
		p = a
	case "x_mod", "y_mod":
		div := n.integer("div", 0)
		mod := n.integer("mod", 0)
		if div <= 0 && d.err == nil {
			d.failf(n.child("div"), codePredicate, "div must be positive, got %d", div)
		}
		if typ == "x_mod" {
			p = predicate.XMod{Div: div, Mod: mod}
		} else {
			p = predicate.YMod{Div: div, Mod: mod}
		}
	default:
		if d.err == nil {
			n.failf("unknown predicate type %q", typ)
		}
		return nil
	}
	n.finish()
	return p
}

func (d *decoder) predicates(n *node) []predicate.Predicate {
	v, ok := n.require("predicates")
	if !ok {
		return nil
	}
	list, ok := asList(v)
	if !ok || len(list) == 0 {
		d.failf(n.child("predicates"), codePredicate, "expected a non-empty list, got %s", describe(v))
		return nil
	}
	out := make([]predicate.Predicate, 0, len(list))
	for i, e := range list {
		out = append(out, d.predicate(indexed(n.child("predicates"), i), e))
	}
	return out
}

func indexed(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
