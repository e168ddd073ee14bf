package resource

import "errors"

var (
	// ErrNotFound reports a path that resolves to no value.
	ErrNotFound = errors.New("attribute not found")
	// ErrWrongType reports a typed accessor applied to a value of
	// another type.
	ErrWrongType = errors.New("attribute has the wrong type")
)
