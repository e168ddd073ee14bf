package path

import "errors"

// ErrInvalidPath is the single externally visible kind for every
// tokenization or grammar failure while parsing a path.
var ErrInvalidPath = errors.New("invalid path")
