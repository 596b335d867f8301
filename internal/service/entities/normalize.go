// Package entities turns the loosely typed entity mapping a model produces into core.Entities.
package entities

import (
	"math"
	"strconv"
	"strings"

	"github.com/sandevgo/tripsmith/internal/core"
)

// Normalize is pure and idempotent: Normalize(Normalize(raw).Raw()) == Normalize(raw).
// It never fails; anything unusable becomes absent.
func Normalize(raw map[string]any) core.Entities {
	e := core.Entities{
		Where:       text(raw["where"]),
		Budget:      text(raw["budget"]),
		Party:       text(raw["party"]),
		Origin:      text(raw["origin"]),
		Region:      text(raw["region"]),
		Days:        days(raw["days"]),
		Constraints: constraints(raw["constraints"]),
	}

	when := text(raw["when"])
	if month, ok := NormalizeMonth(when); ok {
		when = month
	}
	e.When = when

	return e
}

// text trims scalar values. Numbers are kept in their shortest decimal form so a
// budget of 1500 survives as "1500". Anything else is absent.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// days follows integer coercion: whole strings parse, numbers truncate toward zero.
// Non-positive and unparseable values are absent.
func days(v any) int {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t > math.MaxInt32 || t < math.MinInt32 {
			return 0
		}
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n <= 0 {
		return 0
	}
	return n
}

// constraints keeps every non-empty scalar element as text, booleans included.
func constraints(v any) []string {
	out := []string{}

	switch items := v.(type) {
	case []any:
		for _, item := range items {
			s := text(item)
			if b, ok := item.(bool); ok {
				s = strconv.FormatBool(b)
			}
			if s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range items {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
