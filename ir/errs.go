package ir

import "errors"

var (
	ErrDecode = errors.New("invalid document")
)
