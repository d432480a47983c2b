package refctx

import (
	"encoding/json"
	"fmt"
)

// Broker payloads carry extraction output as loosely typed JSON. These
// helpers coerce decoded values into display strings without panicking on
// shape surprises.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatFloat(t)
	case bool:
		return formatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// field reads one key of a decoded JSON object as a display string; missing
// keys come back empty.
func field(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	return asString(m[key])
}
