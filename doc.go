// Package nskeyed decodes NSKeyedArchiver encoded property lists into plain
// nested values.
//
// A keyed archive stores every object exactly once in a flat $objects table
// and encodes all relationships between objects as integer references (UIDs)
// into that table, plus a $class reference per object that tells the decoder
// how to interpret it. [Decode] validates the archive envelope, resolves
// every reference and returns a tree of plain Go values: nil, bool, numbers,
// strings, []any and map[string]any. Binary data is rendered as unpadded
// URL-safe base64 text so the result can be serialized directly.
//
// The input is the already-parsed property list, for example the output of
// the plistfile package. References are recognized in both of their
// encodings: the native [UID] marker produced by a binary plist parser, and
// the single-entry {"CF$UID": n} mapping that represents the same reference
// in an XML plist.
//
// [Unmarshal] additionally populates a Go struct from the archive's named
// roots, similar to [encoding/json.Unmarshal].
package nskeyed
