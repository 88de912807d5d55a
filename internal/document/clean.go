package document

// Clean removes every Absent marker from v at any depth.
//
// Sequence elements and map entries whose cleaned value is Absent are dropped.
// Explicit nulls, empty strings, zero and false are kept as they are, so a field
// that was cleared on purpose still reaches the store while a field that was
// never set is omitted and cannot overwrite another writer's value.
//
// Clean never returns Absent for anything other than Absent itself and is
// idempotent: Clean(Clean(v)) equals Clean(v).
func Clean(v any) any {
	switch val := v.(type) {
	case absent:
		return Absent
	case map[string]any:
		if val == nil {
			return nil
		}

		return cleanMap(val)
	case []any:
		if val == nil {
			return nil
		}
		out := make([]any, 0, len(val))
		for _, item := range val {
			cleaned := Clean(item)
			if IsAbsent(cleaned) {
				continue
			}
			out = append(out, cleaned)
		}

		return out
	case []map[string]any:
		if val == nil {
			return nil
		}
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, Clean(item))
		}

		return out
	default:
		return v
	}
}

// CleanMap is Clean for a whole document. A nil document stays nil.
func CleanMap(m Map) Map {
	if m == nil {
		return nil
	}

	return cleanMap(m)
}

func cleanMap(m Map) Map {
	out := make(Map, len(m))
	for key, value := range m {
		cleaned := Clean(value)
		if IsAbsent(cleaned) {
			continue
		}
		out[key] = cleaned
	}

	return out
}
