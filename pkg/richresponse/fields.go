package richresponse

import "fmt"

// object returns msg[key] as a mapping. A missing or null entry yields nil.
func object(msg map[string]any, key, field string) (map[string]any, error) {
	v, ok := msg[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldError{Field: field, Want: "an object", Got: v}
	}
	return m, nil
}

func optString(m map[string]any, key, field string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, &FieldError{Field: field, Want: "a string", Got: v}
	}
	return &s, nil
}

// optStrings accepts both []string and the []any produced by encoding/json.
func optStrings(m map[string]any, key, field string) ([]string, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), true, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false, &FieldError{Field: fmt.Sprintf("%s[%d]", field, i), Want: "a string", Got: item}
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, &FieldError{Field: field, Want: "a list", Got: v}
	}
}

func optObjects(m map[string]any, key, field string) ([]map[string]any, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch list := v.(type) {
	case []map[string]any:
		return list, true, nil
	case []any:
		out := make([]map[string]any, 0, len(list))
		for i, item := range list {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, false, &FieldError{Field: fmt.Sprintf("%s[%d]", field, i), Want: "an object", Got: item}
			}
			out = append(out, obj)
		}
		return out, true, nil
	default:
		return nil, false, &FieldError{Field: field, Want: "a list", Got: v}
	}
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func stringPtr(s string) *string {
	return &s
}

// cloneMap deep copies the JSON shaped values reachable from m: nested
// objects and lists are copied, anything else is shared.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		if v == nil {
			return v
		}
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = cloneMap(item)
		}
		return out
	case []string:
		if v == nil {
			return v
		}
		return append([]string{}, v...)
	default:
		return v
	}
}
