// Package args normalizes heterogeneous call arguments into the numeric
// values the upstream math API expects. Callers may pass numbers, numeric
// strings, comma-separated value strings, or JSON-decoded lists; the shape of
// each operation decides which lookups apply.
package args

import (
	"math"
	"strconv"
	"strings"
)

// Values normalizes a raw argument into a slice of floats.
//
// A string is split on commas, whitespace is trimmed and empty fragments are
// dropped, so a trailing comma or a blank string yields an empty slice. A
// list has every element coerced; the first element that is not numeric fails
// with a ValidationError. A nil or otherwise unexpected value yields an empty
// slice so optional list arguments degrade gracefully.
func Values(raw any) ([]float64, error) {
	switch v := raw.(type) {
	case string:
		out := []float64{}
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, &ValidationError{Field: "values", Value: part}
			}
			out = append(out, f)
		}
		return out, nil
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, elem := range v {
			f, ok := toFloat(elem)
			if !ok {
				return nil, &ValidationError{Field: "values", Value: elem}
			}
			out = append(out, f)
		}
		return out, nil
	case []string:
		out := make([]float64, 0, len(v))
		for _, elem := range v {
			f, err := strconv.ParseFloat(strings.TrimSpace(elem), 64)
			if err != nil {
				return nil, &ValidationError{Field: "values", Value: elem}
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return []float64{}, nil
	}
}

// Float extracts a required floating-point argument.
func Float(call map[string]any, field string) (float64, error) {
	raw, ok := call[field]
	if !ok {
		return 0, &MissingFieldError{Field: field}
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, &ValidationError{Field: field, Value: raw}
	}
	return f, nil
}

// Int extracts a required integer argument. JSON numbers arrive as floats
// and are truncated toward zero; numeric strings must be whole.
func Int(call map[string]any, field string) (int, error) {
	raw, ok := call[field]
	if !ok {
		return 0, &MissingFieldError{Field: field}
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &ValidationError{Field: field, Value: raw}
		}
		return int(math.Trunc(v)), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, &ValidationError{Field: field, Value: raw}
		}
		return int(n), nil
	default:
		return 0, &ValidationError{Field: field, Value: raw}
	}
}

// Bool extracts an optional flag argument, falling back to def when the
// field is absent or not interpretable as a boolean.
func Bool(call map[string]any, field string, def bool) bool {
	raw, ok := call[field]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return def
	}
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
