// Package plistfile parses binary or XML property lists into the encoded
// value form consumed by the nskeyed decoder.
package plistfile

import (
	"fmt"
	"os"

	"howett.net/plist"

	"github.com/go-forensics/nskeyed"
)

// Load reads and parses the property list file at path.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc, nil
}

// Parse parses a binary or XML property list. The root must be a
// dictionary, which every keyed archive's envelope is.
func Parse(data []byte) (map[string]any, error) {
	var parsed any
	if _, err := plist.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	doc, ok := convert(parsed).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("property list root is %T, not a dictionary", parsed)
	}

	return doc, nil
}

// convert rewrites the parser's tree into the decoder's encoded value form:
// plist.UID markers become [nskeyed.UID] and containers are converted
// recursively. Scalars pass through unchanged.
func convert(parsed any) any {
	switch v := parsed.(type) {
	case plist.UID:
		return nskeyed.UID(v)

	case map[string]any:
		converted := make(map[string]any, len(v))
		for key, value := range v {
			converted[key] = convert(value)
		}

		return converted

	case []any:
		converted := make([]any, len(v))
		for i, value := range v {
			converted[i] = convert(value)
		}

		return converted
	}

	return parsed
}
