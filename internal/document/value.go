// Package document models the schemaless values exchanged with the document
// store: keyed maps, ordered sequences and scalars. A field is either a concrete
// value, an explicit null (nil) or Absent, which means it was never set.
package document

// Map is a single document or nested object.
type Map = map[string]any

type absent struct{}

// Absent marks a field that was never set. The store rejects it at any depth,
// so it must be removed with Clean before a write.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)

	return ok
}

// Optional returns *p, or Absent when p is nil.
func Optional[T any](p *T) any {
	if p == nil {
		return Absent
	}

	return *p
}

// Copy returns a deep copy of v. Maps and sequences are duplicated, scalars are
// shared.
func Copy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return nil
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Copy(item)
		}

		return out
	case []any:
		if val == nil {
			return nil
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Copy(item)
		}

		return out
	case []string:
		if val == nil {
			return nil
		}

		return append([]string(nil), val...)
	default:
		return v
	}
}

// CopyMap is Copy for a whole document.
func CopyMap(m Map) Map {
	if m == nil {
		return nil
	}
	out, _ := Copy(m).(map[string]any)

	return out
}

// Pick returns the subset of m holding the given top-level keys. Keys missing
// from m are skipped.
func Pick(m Map, keys ...string) Map {
	out := make(Map, len(keys))
	for _, key := range keys {
		if v, ok := m[key]; ok {
			out[key] = v
		}
	}

	return out
}
