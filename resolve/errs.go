package resolve

import "errors"

var (
	// ErrFilteredPath reports a value filter where none is allowed.
	ErrFilteredPath = errors.New("path carries a value filter")
	// ErrNotComplex reports a dotted step through a non-object value.
	ErrNotComplex = errors.New("attribute is not complex")
	// ErrNotMultiValued reports a value filter applied to a non-array
	// value.
	ErrNotMultiValued = errors.New("attribute is not multi-valued")
)
