package entity

import (
	"encoding/json"

	"github.com/mitchellh/copystructure"
)

// Fragment is one untyped slice of a host payload. Views never assume any
// key is present; every accessor falls back to a documented default.
type Fragment = map[string]any

func stringValue(m Fragment, key string, fallback string) string {
	if m == nil {
		return fallback
	}
	if value, ok := m[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// intValue reads a numeric field regardless of how the decoder represented
// it. JSON decoding into any yields float64; host-injected values may
// already be Go integers.
func intValue(m Fragment, key string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	switch value := m[key].(type) {
	case float64:
		return int64(value), true
	case int:
		return int64(value), true
	case int64:
		return value, true
	case json.Number:
		parsed, err := value.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// mapValue walks nested keys and returns the fragment at the end of the
// path, or nil when any step is missing or not an object.
func mapValue(m Fragment, keys ...string) Fragment {
	current := m
	for _, key := range keys {
		if current == nil {
			return nil
		}
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func sliceValue(m Fragment, key string) []any {
	if m == nil {
		return nil
	}
	value, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return value
}

func stringSlice(m Fragment, key string) []string {
	items := sliceValue(m, key)
	if len(items) == 0 {
		return nil
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			values = append(values, text)
		}
	}
	return values
}

// cloneFragment returns an independently mutable deep copy. Mutating the
// result must never reach the view's backing fragment.
func cloneFragment(m Fragment) Fragment {
	if m == nil {
		return Fragment{}
	}
	copied, err := copystructure.Copy(m)
	if err != nil {
		return Fragment{}
	}
	cloned, ok := copied.(map[string]any)
	if !ok {
		return Fragment{}
	}
	return cloned
}
