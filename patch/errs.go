package patch

import "errors"

var (
	// ErrBadValue reports a missing, null, or malformed operation
	// value, including compatibility-remove payload problems.
	ErrBadValue = errors.New("invalid patch value")
	// ErrBadPath reports a path the engine cannot mutate through,
	// such as a non-equality value filter on an add.
	ErrBadPath = errors.New("invalid patch path")
	// ErrState reports a remove-only accessor called on an add or
	// replace operation.
	ErrState = errors.New("operation is not a remove")
)
