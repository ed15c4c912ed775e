package intents

import (
	"fmt"
	"strconv"
	"strings"
)

// formatFloat renders a float without trailing zero noise for speech.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatValue renders an upstream result value for speech and cards.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "unknown"
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, formatValue(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// sequence renders each element of a list result; a non-list yields nil.
func sequence(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, formatValue(e))
	}
	return out
}

// formatValues renders normalized input values for card summaries.
func formatValues(vs []float64) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, formatFloat(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// truthy interprets a JSON result value as a boolean.
func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	default:
		return x != nil
	}
}
