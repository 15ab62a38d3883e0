package layout

import (
	"errors"
	"fmt"
	"math"
)

// ConfigError reports a malformed generator tree. It signals a content bug
// and is never worth retrying.
type ConfigError struct {
	// Path locates the node, such as "generators[1].inside". Empty for the root.
	Path   string
	Kind   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", e.Path, e.Kind, e.Reason)
}

func configErrorf(kind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the whole tree and returns every configuration error
// found, joined. A nil result means Make will not panic on configuration.
func Validate(root Generator) error {
	var errs []error
	Walk(root, func(path string, g Generator) bool {
		if g == nil {
			errs = append(errs, &ConfigError{Path: path, Kind: "nil", Reason: "missing generator"})
			return false
		}
		if ce := check(g); ce != nil {
			ce.Path = path
			errs = append(errs, ce)
		}
		return true
	})
	return errors.Join(errs...)
}

// check validates a single node, ignoring its children.
func check(g Generator) *ConfigError {
	kind := Kind(g)
	switch g := g.(type) {
	case SetFront:
		if g.Token == "" {
			return configErrorf(kind, "empty token")
		}
	case Filter:
		if g.Predicate == nil {
			return configErrorf(kind, "missing predicate")
		}
	case Margins:
		if g.Width < 0 {
			return configErrorf(kind, "negative width %d", g.Width)
		}
	case Margin:
		if g.Width < 0 {
			return configErrorf(kind, "negative width %d", g.Width)
		}
		if _, ok := sideNames[g.Side]; !ok {
			return configErrorf(kind, "unknown side %v", g.Side)
		}
	case SplitH:
		return checkRatio(kind, g.Ratio)
	case SplitV:
		return checkRatio(kind, g.Ratio)
	case Position:
		if ce := g.check(kind); ce != nil {
			return ce
		}
		return checkAnchor(kind, g.Anchor)
	case Place:
		for i, e := range g.Entries {
			if ce := checkPlaceEntry(kind, e); ce != nil {
				ce.Reason = fmt.Sprintf("entries[%d]: %s", i, ce.Reason)
				return ce
			}
		}
	case NoiseMap:
		for i, b := range g.Bands {
			if b.Lower < 0 || b.Lower > 1 || b.Upper < 0 || b.Upper > 1 {
				return configErrorf(kind, "bands[%d]: bounds [%v, %v] outside [0, 1]", i, b.Lower, b.Upper)
			}
			if b.Lower > b.Upper {
				return configErrorf(kind, "bands[%d]: lower %v above upper %v", i, b.Lower, b.Upper)
			}
		}
	case Repeat:
		if g.Count.Max < g.Count.Min {
			return configErrorf(kind, "count %v is inverted", g.Count)
		}
	case Choose:
		return checkChoose(kind, g)
	case Connect:
		if g.ToConnect == nil {
			return configErrorf(kind, "missing to_connect predicate")
		}
		if len(g.Connectors) == 0 {
			return configErrorf(kind, "no connectors")
		}
		for i, e := range g.Connectors {
			if e.Predicate == nil {
				return configErrorf(kind, "connectors[%d]: missing predicate", i)
			}
			if e.Cost != nil && (*e.Cost < 0 || math.IsNaN(*e.Cost)) {
				return configErrorf(kind, "connectors[%d]: invalid cost %v", i, *e.Cost)
			}
		}
	case FloodFill:
		if g.Predicate == nil {
			return configErrorf(kind, "missing predicate")
		}
	}
	return nil
}

func checkRatio(kind string, r float64) *ConfigError {
	if !(r > 0 && r < 1) {
		return configErrorf(kind, "ratio %v outside (0, 1)", r)
	}
	return nil
}

func checkAnchor(kind string, a Anchor) *ConfigError {
	if a < 0 || int(a) >= len(anchorNames) {
		return configErrorf(kind, "unknown anchor %v", a)
	}
	return nil
}

func checkPlaceEntry(kind string, e PlaceEntry) *ConfigError {
	if ce := e.check(kind); ce != nil {
		return ce
	}
	if e.Count.Max < e.Count.Min {
		return configErrorf(kind, "count %v is inverted", e.Count)
	}
	if e.MinSpacing < 0 {
		return configErrorf(kind, "negative min_spacing %d", e.MinSpacing)
	}
	if e.Anchor != nil {
		return checkAnchor(kind, *e.Anchor)
	}
	return nil
}

func checkChoose(kind string, g Choose) *ConfigError {
	if len(g.Options) == 0 {
		return configErrorf(kind, "no options")
	}
	var sum float64
	implicit := 0
	for i, o := range g.Options {
		if o.Chance == nil {
			implicit++
			continue
		}
		if *o.Chance < 0 || math.IsNaN(*o.Chance) {
			return configErrorf(kind, "options[%d]: invalid chance %v", i, *o.Chance)
		}
		sum += *o.Chance
	}
	const eps = 1e-9
	if sum > 1+eps {
		return configErrorf(kind, "explicit chances sum to %v, above 1", sum)
	}
	if implicit == 0 && sum <= 0 {
		return configErrorf(kind, "all chances are zero")
	}
	if implicit > 0 && sum >= 1-eps {
		for _, c := range g.Chances() {
			if c > 0 {
				return nil
			}
		}
		return configErrorf(kind, "all chances are zero")
	}
	return nil
}
