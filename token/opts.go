package token

import "strings"

type tokenOpts struct {
	extended string
}

// Option configures a single Tokenize call. Options are immutable once
// applied; there is no process-wide tokenizer state.
type Option func(*tokenOpts)

// ExtendedNaming adds chars to the set of characters permitted inside
// attribute names, beyond letters, digits and `- _ . $ :`.
func ExtendedNaming(chars string) Option {
	return func(o *tokenOpts) {
		o.extended += chars
	}
}

func (o *tokenOpts) isNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '$', ':':
		return true
	}
	return strings.IndexByte(o.extended, c) >= 0
}

func (o *tokenOpts) isNameStart(c byte) bool {
	if c >= '0' && c <= '9' {
		return false
	}
	if c == '-' || c == '.' {
		return false
	}
	return o.isNameChar(c)
}
