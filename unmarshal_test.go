package nskeyed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tags collects comma separated tags.
type Tags []string

func (t *Tags) UnmarshalText(text []byte) error {
	*t = strings.Split(string(text), ",")
	return nil
}

func bookmarkArchive() map[string]any {
	objects := []any{
		map[string]any{
			"$class":     UID(6),
			"identifier": UID(1),
			"visitCount": 7,
			"pinned":     true,
			"tags":       UID(2),
			"urls":       UID(3),
		},
		"com.example.bookmark",
		"macos,forensics",
		map[string]any{
			"$class":     UID(7),
			"NS.objects": []any{UID(4), UID(5)},
		},
		"https://example.com/a",
		"https://example.com/b",
		descriptorOf("Bookmark", "NSObject"),
		descriptorOf("NSArray", "NSObject"),
	}

	return archiveDoc(objects, map[string]any{
		"root":    UID(0),
		"comment": "unarchived for tests",
	})
}

func TestUnmarshalStruct(t *testing.T) {
	type Bookmark struct {
		Identifier string   `json:"identifier"`
		VisitCount int64    `json:"visitCount"`
		Pinned     bool     `json:"pinned"`
		Tags       Tags     `json:"tags"`
		URLs       []string `json:"urls"`

		SkipThis string `json:"-"`

		// not exported, must not be set
		note string
	}

	type Document struct {
		Root    *Bookmark `json:"root"`
		Comment string    `json:"comment"`
		Missing string    `json:"missing"`
	}

	doc, err := UnmarshalNew[Document](bookmarkArchive())
	require.NoError(t, err)
	require.Equal(t, Document{
		Root: &Bookmark{
			Identifier: "com.example.bookmark",
			VisitCount: 7,
			Pinned:     true,
			Tags:       Tags{"macos", "forensics"},
			URLs:       []string{"https://example.com/a", "https://example.com/b"},
		},
		Comment: "unarchived for tests",
	}, doc)
}

func TestUnmarshalMapAndAnyFields(t *testing.T) {
	type Document struct {
		Root    map[string]any `json:"root"`
		Comment any            `json:"comment"`
	}

	doc, err := UnmarshalNew[Document](bookmarkArchive())
	require.NoError(t, err)
	require.Equal(t, "unarchived for tests", doc.Comment)
	require.Equal(t, "com.example.bookmark", doc.Root["identifier"])
	require.Equal(t, []any{"https://example.com/a", "https://example.com/b"}, doc.Root["urls"])
}

func TestUnmarshalEmbeddedStruct(t *testing.T) {
	type Header struct {
		Comment string `json:"comment"`
	}

	type Document struct {
		Header
		Root map[string]any `json:"root"`
	}

	doc, err := UnmarshalNew[Document](bookmarkArchive())
	require.NoError(t, err)
	require.Equal(t, "unarchived for tests", doc.Comment)
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	type Document struct {
		Comment int64 `json:"comment"`
	}

	_, err := UnmarshalNew[Document](bookmarkArchive())
	require.Error(t, err)
	require.ErrorContains(t, err, `field "comment"`)
}

func TestUnmarshalRequiresPointer(t *testing.T) {
	var doc struct{}

	err := Unmarshal(bookmarkArchive(), doc)
	require.Error(t, err)
	require.ErrorContains(t, err, "non-nil pointer")
}

func TestUnmarshalPropagatesDecodeErrors(t *testing.T) {
	doc := map[string]any{
		"$archiver": "BogusArchiver",
		"$version":  100000,
	}

	var target struct{}
	err := Unmarshal(doc, &target)

	var archiveErr *UnsupportedArchiveError
	require.ErrorAs(t, err, &archiveErr)
}

func TestUnmarshalUnsupportedTargetKind(t *testing.T) {
	type Document struct {
		Comment chan string `json:"comment"`
	}

	_, err := UnmarshalNew[Document](bookmarkArchive())

	var notSupported NotSupportedError
	require.ErrorAs(t, err, &notSupported)
}
