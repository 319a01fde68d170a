package validate

import (
	"math"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// asObject coerces a sub-tree into an object, recording a warning when the
// producer sent the wrong container shape.
func asObject(domain string, tree any, warnings *[]gamestate.ValidationWarning) (map[string]any, bool) {
	m, ok := tree.(map[string]any)
	if !ok {
		*warnings = append(*warnings, gamestate.Warningf(domain, "", "expected an object, got %T", tree))
		return nil, false
	}
	return m, true
}

// intValue reads a numeric field leniently. Whole-valued floats coerce to
// int; fractional floats are rejected with a warning; an explicit null gets
// its own "cannot be empty" warning instead of a generic type error.
func intValue(domain, field string, raw any, warnings *[]gamestate.ValidationWarning) (int, bool) {
	switch v := raw.(type) {
	case nil:
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "field cannot be empty"))
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			*warnings = append(*warnings, gamestate.Warningf(domain, field, "value %v is not a whole number", v))
			return 0, false
		}
		return int(v), true
	default:
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "expected a number, got %T", raw))
		return 0, false
	}
}

// intField validates m[field] in place when present; returns the coerced
// value and whether it was usable.
func intField(domain string, m map[string]any, field string, warnings *[]gamestate.ValidationWarning) (int, bool) {
	raw, ok := m[field]
	if !ok {
		return 0, false
	}
	v, ok := intValue(domain, field, raw, warnings)
	if !ok {
		delete(m, field)
		return 0, false
	}
	m[field] = v
	return v, true
}

// clampField clamps m[field] into [lo, hi], warning when it had to move.
func clampField(domain string, m map[string]any, field string, lo, hi int, warnings *[]gamestate.ValidationWarning) {
	v, ok := intField(domain, m, field, warnings)
	if !ok {
		return
	}
	clamped := v
	if clamped < lo {
		clamped = lo
	}
	if clamped > hi {
		clamped = hi
	}
	if clamped != v {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "value %d out of range [%d, %d], clamped to %d", v, lo, hi, clamped))
		m[field] = clamped
	}
}

// enumField checks m[field] against a closed value set. Invalid values are
// logged as warnings but kept as-is.
func enumField(domain string, m map[string]any, field string, allowed []string, warnings *[]gamestate.ValidationWarning) {
	raw, ok := m[field]
	if !ok {
		return
	}
	s, ok := raw.(string)
	if !ok {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "expected a string, got %T", raw))
		return
	}
	for _, a := range allowed {
		if s == a {
			return
		}
	}
	*warnings = append(*warnings, gamestate.Warningf(domain, field, "unrecognized value %q", s))
}

// usedMax validates a {used, max} resource counter: both non-negative, used
// never above max.
func usedMax(domain, field string, raw any, warnings *[]gamestate.ValidationWarning) {
	m, ok := raw.(map[string]any)
	if !ok {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "expected a {used, max} object, got %T", raw))
		return
	}
	used, hasUsed := intField(domain, m, "used", warnings)
	maxV, hasMax := intField(domain, m, "max", warnings)
	if hasUsed && used < 0 {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "used %d is negative, reset to 0", used))
		used = 0
		m["used"] = 0
	}
	if hasMax && maxV < 0 {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "max %d is negative, reset to 0", maxV))
		maxV = 0
		m["max"] = 0
	}
	if hasUsed && hasMax && used > maxV {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "used %d exceeds max %d, clamped", used, maxV))
		m["used"] = maxV
	}
}
