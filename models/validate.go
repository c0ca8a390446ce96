package models

import "encoding/json"

// asObject normalises a decoded or raw JSON candidate into a generic object.
// Candidates that are not JSON objects report false.
func asObject(candidate any) (map[string]any, bool) {
	switch v := candidate.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, v != nil
	case map[string]json.RawMessage:
		if v == nil {
			return nil, false
		}
		out := make(map[string]any, len(v))
		for key, raw := range v {
			var value any
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, false
			}
			out[key] = value
		}
		return out, true
	case json.RawMessage:
		return decodeObject(v)
	case []byte:
		return decodeObject(v)
	default:
		return nil, false
	}
}

func decodeObject(data []byte) (map[string]any, bool) {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}

// hasStringKeys reports whether every key holds a non-empty string. Typed
// values cannot tell an absent field from an empty one, so decoded objects
// follow the same rule.
func hasStringKeys(candidate any, keys []string) bool {
	object, ok := asObject(candidate)
	if !ok {
		return false
	}
	for _, key := range keys {
		if value, ok := object[key].(string); !ok || value == "" {
			return false
		}
	}
	return true
}

func hasObjectKeys(candidate any, keys []string) bool {
	object, ok := asObject(candidate)
	if !ok {
		return false
	}
	for _, key := range keys {
		if _, ok := object[key].(map[string]any); !ok {
			return false
		}
	}
	return true
}

func allNonEmpty(values []string) bool {
	for _, value := range values {
		if value == "" {
			return false
		}
	}
	return true
}
