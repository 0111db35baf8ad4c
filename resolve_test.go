package nskeyed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceIndexForms(t *testing.T) {
	// native marker
	index, ok := referenceIndex(UID(3))
	require.True(t, ok)
	require.Equal(t, 3, index)

	// XML single-entry mapping, with the integer widths parsers produce
	for _, encoded := range []any{
		map[string]any{"CF$UID": 3},
		map[string]any{"CF$UID": int64(3)},
		map[string]any{"CF$UID": uint64(3)},
		map[string]any{"CF$UID": UID(3)},
	} {
		index, ok := referenceIndex(encoded)
		require.True(t, ok, "%#v", encoded)
		require.Equal(t, 3, index)
	}
}

func TestReferenceIndexRejectsNonReferences(t *testing.T) {
	for _, encoded := range []any{
		nil,
		3,
		"CF$UID",
		map[string]any{"CF$UID": 3, "other": 1},
		map[string]any{"other": 3},
		map[string]any{"CF$UID": "3"},
		[]any{UID(3)},
	} {
		_, ok := referenceIndex(encoded)
		require.False(t, ok, "%#v", encoded)
	}
}

func TestReferenceIndexNegative(t *testing.T) {
	index, ok := referenceIndex(map[string]any{"CF$UID": -4})
	require.True(t, ok)
	require.Equal(t, -1, index)
}

func TestResolveBounds(t *testing.T) {
	s := newDecodeState([]any{"a", "b"})

	encoded, err := s.resolve(1)
	require.NoError(t, err)
	require.Equal(t, "b", encoded)

	_, err = s.resolve(2)
	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, 2, rangeErr.Index)
	require.Equal(t, 2, rangeErr.Count)

	_, err = s.resolve(-1)
	require.ErrorAs(t, err, &rangeErr)
}

func TestIntValue(t *testing.T) {
	for _, encoded := range []any{
		42, int8(42), int16(42), int32(42), int64(42),
		uint(42), uint8(42), uint16(42), uint32(42), uint64(42),
		UID(42),
	} {
		n, ok := intValue(encoded)
		require.True(t, ok, "%#v", encoded)
		require.Equal(t, int64(42), n)
	}

	_, ok := intValue(uint64(math.MaxUint64))
	require.False(t, ok)

	_, ok = intValue("42")
	require.False(t, ok)
}
