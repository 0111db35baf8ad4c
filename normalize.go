package nskeyed

import "encoding/base64"

// normalize maps an already-primitive encoded value to its decoded form. The
// second return reports whether the value was terminal; mappings and
// sequences are not normalized here, they go through dispatch instead.
func normalize(encoded any) (any, bool) {
	switch v := encoded.(type) {
	case nil:
		return nil, true

	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, true

	case []byte:
		return base64.RawURLEncoding.EncodeToString(v), true

	case string:
		// The null object is archived as the literal string "$null".
		if v == "$null" {
			return nil, true
		}

		return v, true
	}

	return nil, false
}

// isEmptyValue reports whether an encoded member value counts as empty for
// the composite decoder, which omits such members from its result: nil,
// false, numeric zero, and empty strings, byte strings, sequences and
// mappings. A reference is never empty, whichever encoding it uses; in
// particular {"CF$UID": 0} is a one-entry mapping.
func isEmptyValue(encoded any) bool {
	switch v := encoded.(type) {
	case nil:
		return true
	case bool:
		return !v
	case int:
		return v == 0
	case int8:
		return v == 0
	case int16:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case uint:
		return v == 0
	case uint8:
		return v == 0
	case uint16:
		return v == 0
	case uint32:
		return v == 0
	case uint64:
		return v == 0
	case float32:
		return v == 0
	case float64:
		return v == 0
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	return false
}
