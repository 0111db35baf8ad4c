package nskeyed

import (
	"math"

	"golang.org/x/exp/constraints"
)

// UID is a reference into the $objects table of a keyed archive. Binary
// plist parsers produce it as a native marker type; in an XML plist the same
// reference appears as a single-entry {"CF$UID": n} mapping instead.
type UID uint64

// referenceIndex extracts the object table index from an encoded value, in
// either reference encoding. The XML form must be checked before treating a
// mapping as an ordinary dictionary.
func referenceIndex(encoded any) (int, bool) {
	switch v := encoded.(type) {
	case UID:
		return tableIndex(v), true

	case map[string]any:
		if len(v) != 1 {
			return 0, false
		}

		raw, ok := v["CF$UID"]
		if !ok {
			return 0, false
		}

		if n, ok := intValue(raw); ok {
			return tableIndex(n), true
		}
	}

	return 0, false
}

// resolve returns the still-encoded entry at the given object table index.
func (s *decodeState) resolve(index int) (any, error) {
	if index < 0 || index >= len(s.objects) {
		return nil, &OutOfRangeError{Index: index, Count: len(s.objects)}
	}

	return s.objects[index], nil
}

// tableIndex narrows an integer to an int index. Values that cannot be
// represented map to -1, which the resolver rejects as out of range.
func tableIndex[T constraints.Integer](n T) int {
	if n < 0 || uint64(n) > uint64(math.MaxInt) {
		return -1
	}

	return int(n)
}

// intValue converts any of the integer types a plist parser may produce to
// an int64.
func intValue(encoded any) (int64, bool) {
	switch v := encoded.(type) {
	case int:
		return signedValue(v)
	case int8:
		return signedValue(v)
	case int16:
		return signedValue(v)
	case int32:
		return signedValue(v)
	case int64:
		return signedValue(v)
	case uint:
		return unsignedValue(v)
	case uint8:
		return unsignedValue(v)
	case uint16:
		return unsignedValue(v)
	case uint32:
		return unsignedValue(v)
	case uint64:
		return unsignedValue(v)
	case UID:
		return unsignedValue(v)
	}

	return 0, false
}

func signedValue[T constraints.Signed](v T) (int64, bool) {
	return int64(v), true
}

func unsignedValue[T constraints.Unsigned](v T) (int64, bool) {
	if uint64(v) > math.MaxInt64 {
		return 0, false
	}

	return int64(v), true
}
