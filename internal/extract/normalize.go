package extract

import (
	"fmt"
	"sort"
	"strings"
)

// NormalizeStringList coerces any decoded JSON value into a list of strings.
// LLMs return dicts, mixed types and nested structures where a list was
// asked for; this never fails and always produces some valid value, with an
// empty list as the last resort.
func NormalizeStringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				if s := strings.TrimSpace(it); s != "" {
					result = append(result, s)
				}
			case map[string]any:
				// Join the mapping's values into one entry
				values := sortedNonEmptyValues(it)
				if len(values) > 0 {
					result = append(result, strings.Join(values, " - "))
				}
			default:
				if s := stringify(it); s != "" {
					result = append(result, s)
				}
			}
		}
		return result
	case map[string]any:
		// Flatten the mapping's values into a list
		result := make([]string, 0, len(v))
		for _, key := range sortedKeys(v) {
			switch inner := v[key].(type) {
			case string:
				if s := strings.TrimSpace(inner); s != "" {
					result = append(result, s)
				}
			case []any:
				result = append(result, NormalizeStringList(inner)...)
			default:
				if s := stringify(inner); s != "" {
					result = append(result, s)
				}
			}
		}
		return result
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
		return []string{}
	default:
		if s := stringify(v); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// NormalizeString coerces any decoded JSON value into a single string.
// Mappings join their values with " - ", lists join items with spaces.
func NormalizeString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return strings.Join(sortedNonEmptyValues(v), " - ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := NormalizeString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return stringify(v)
	}
}

// stringify renders a scalar as a string, treating nil and empty values as
// absent.
func stringify(value any) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", value))
}

// sortedKeys returns map keys in deterministic order. JSON objects carry no
// ordering, so flattened output is sorted to keep results stable.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedNonEmptyValues(m map[string]any) []string {
	values := make([]string, 0, len(m))
	for _, key := range sortedKeys(m) {
		if s := NormalizeString(m[key]); s != "" {
			values = append(values, s)
		}
	}
	return values
}
