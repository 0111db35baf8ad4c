package nskeyed

import "fmt"

// UnsupportedArchiveError reports a property list whose envelope does not
// declare the one supported archiver/version combination. It carries the
// observed values.
type UnsupportedArchiveError struct {
	Archiver string
	Version  int64
}

func (e *UnsupportedArchiveError) Error() string {
	return fmt.Sprintf("unsupported archive: archiver %q version %d", e.Archiver, e.Version)
}

// OutOfRangeError reports a reference whose index falls outside the object
// table.
type OutOfRangeError struct {
	Index int
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("reference %d outside object table of %d entries", e.Index, e.Count)
}

// MissingFieldError reports an encoded object that lacks a member its
// decoding strategy requires.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s", e.Field)
}

// LengthMismatchError reports NS.keys and NS.objects sequences of unequal
// length.
type LengthMismatchError struct {
	Keys    int
	Objects int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("mismatch between %d NS.keys and %d NS.objects", e.Keys, e.Objects)
}

// InvalidLengthError reports a fixed-size member of the wrong size.
type InvalidLengthError struct {
	Field string
	Size  int
	Want  int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("%s has %d bytes, want %d", e.Field, e.Size, e.Want)
}

// UnsupportedClassError reports an archived class name with no registered
// decoding strategy.
type UnsupportedClassError struct {
	Name string
}

func (e *UnsupportedClassError) Error() string {
	return fmt.Sprintf("unsupported class %q", e.Name)
}

// CyclicReferenceError reports a reference chain that revisits an object
// that is still being resolved.
type CyclicReferenceError struct {
	Index int
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic reference to object %d", e.Index)
}

// UnsupportedTypeError reports an encoded value of a type that is not valid
// at the point it was encountered.
type UnsupportedTypeError struct {
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported encoded value of type %T", e.Value)
}
