package nskeyed

// The one archiver/version combination this decoder understands.
const (
	archiverName    = "NSKeyedArchiver"
	archiverVersion = 100000
)

// Decode decodes a parsed NSKeyedArchiver property list into a mapping from
// root name to plain decoded value.
//
// The input is the top-level plist dictionary: $archiver and $version are
// validated first, then every entry of the $top root table is resolved
// against the $objects table and decoded recursively. Any structural
// violation aborts the whole decode; there is no partial result.
func Decode(doc map[string]any) (map[string]any, error) {
	archiver, _ := doc["$archiver"].(string)
	version, _ := intValue(doc["$version"])

	if archiver != archiverName || version != archiverVersion {
		return nil, &UnsupportedArchiveError{Archiver: archiver, Version: version}
	}

	objects, _ := doc["$objects"].([]any)
	s := newDecodeState(objects)

	top, _ := doc["$top"].(map[string]any)
	decoded := make(map[string]any, len(top))

	for name, value := range top {
		if index, ok := referenceIndex(value); ok {
			decodedValue, err := s.decodeIndex(index)
			if err != nil {
				return nil, err
			}

			decoded[name] = decodedValue
			continue
		}

		decodedValue, ok := normalize(value)
		if !ok {
			return nil, &UnsupportedTypeError{Value: value}
		}

		decoded[name] = decodedValue
	}

	return decoded, nil
}
