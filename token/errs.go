package token

import "fmt"

// LexError anchors a tokenization failure to a position in the input.
type LexError struct {
	Err error
	Pos Pos
}

func NewLexError(e error, p *Pos) *LexError {
	return &LexError{Err: e, Pos: *p}
}

func (e *LexError) Unwrap() error {
	return e.Err
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewLexError(fmt.Errorf("expected %s", what), p)
}

func UnexpectedErr(what string, p *Pos) error {
	return NewLexError(fmt.Errorf("unexpected %s", what), p)
}
