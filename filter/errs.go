package filter

import "errors"

// ErrInvalidFilter is the single externally visible kind for every
// tokenization or grammar failure while parsing a filter. Callers
// match it with errors.Is and may map it directly to a 400-class
// response.
var ErrInvalidFilter = errors.New("invalid filter")
