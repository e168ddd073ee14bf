package token

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Tokenize turns filter or path text into a positioned token stream.
// Any failure is a *LexError anchored at the offending offset; no
// partial stream is returned.
func Tokenize(d []byte, opts ...Option) ([]Token, error) {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	posDoc := &PosDoc{d: d}
	var toks []Token
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '\n':
			posDoc.nl(i)
			i++
		case c == '(':
			toks = append(toks, Token{Type: TLParen, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == ')':
			toks = append(toks, Token{Type: TRParen, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '[':
			toks = append(toks, Token{Type: TLBracket, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == ']':
			toks = append(toks, Token{Type: TRBracket, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == ',':
			toks = append(toks, Token{Type: TComma, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '.':
			// sub-attribute separator after a bracketed selector;
			// dots inside attribute names are consumed by the
			// identifier scan below
			toks = append(toks, Token{Type: TDot, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '"':
			pos := posDoc.Pos(i)
			val, n, err := scanString(d, i, posDoc)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TString, Pos: pos, Bytes: val})
			i += n
		case c == '-' || (c >= '0' && c <= '9'):
			pos := posDoc.Pos(i)
			n, err := scanNumber(d, i, posDoc)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TNumber, Pos: pos, Bytes: d[i : i+n]})
			i += n
		case opt.isNameStart(c):
			pos := posDoc.Pos(i)
			j := i + 1
			for j < len(d) && opt.isNameChar(d[j]) {
				j++
			}
			word := d[i:j]
			typ := classify(word)
			if typ != TAttrName && !keywordDelimited(d, i, j) {
				return nil, NewLexError(fmt.Errorf("keyword %q requires surrounding space", word), pos)
			}
			toks = append(toks, Token{Type: typ, Pos: pos, Bytes: word})
			i = j
		default:
			return nil, NewLexError(fmt.Errorf("invalid character %q", rune(c)), posDoc.Pos(i))
		}
	}
	return toks, nil
}

// keywordDelimited reports whether the word at d[start:end] is
// separated from adjacent quotes, parens, and values. A keyword may
// open or close a bracketed group but must not abut another token:
// `a pr and(b pr)` and `userName eq"x"` are both invalid. Two adjacent
// words cannot split because the identifier scan munches maximally.
func keywordDelimited(d []byte, start, end int) bool {
	if start > 0 {
		switch d[start-1] {
		case ' ', '\t', '\r', '\n', '(', '[', ',':
		default:
			return false
		}
	}
	if end < len(d) {
		switch d[end] {
		case ' ', '\t', '\r', '\n', ')', ']', '[', ',':
		default:
			return false
		}
	}
	return true
}

// scanString decodes a double-quoted string starting at d[i] == '"'.
// It returns the unescaped value and the number of source bytes
// consumed, including both quotes.
func scanString(d []byte, i int, posDoc *PosDoc) ([]byte, int, error) {
	start := i
	i++ // opening quote
	var val []byte
	for i < len(d) {
		c := d[i]
		switch c {
		case '"':
			return val, i - start + 1, nil
		case '\\':
			if i+1 >= len(d) {
				return nil, 0, ExpectedErr("escape character", posDoc.Pos(i))
			}
			i++
			switch d[i] {
			case '"':
				val = append(val, '"')
			case '\\':
				val = append(val, '\\')
			case '/':
				val = append(val, '/')
			case 'b':
				val = append(val, '\b')
			case 'f':
				val = append(val, '\f')
			case 'n':
				val = append(val, '\n')
			case 'r':
				val = append(val, '\r')
			case 't':
				val = append(val, '\t')
			case 'u':
				r, n, err := scanUnicodeEscape(d, i-1, posDoc)
				if err != nil {
					return nil, 0, err
				}
				val = utf8.AppendRune(val, r)
				i += n - 2 // the loop increment accounts for the rest
			default:
				return nil, 0, NewLexError(fmt.Errorf("invalid escape character %q", rune(d[i])), posDoc.Pos(i))
			}
			i++
		case '\n':
			return nil, 0, ExpectedErr("closing '\"'", posDoc.Pos(i))
		default:
			val = append(val, c)
			i++
		}
	}
	return nil, 0, ExpectedErr("closing '\"'", posDoc.Pos(i))
}

// scanUnicodeEscape decodes a \uXXXX sequence starting at d[i] == '\\',
// combining surrogate pairs when a second escape follows. It returns
// the rune and the total bytes consumed.
func scanUnicodeEscape(d []byte, i int, posDoc *PosDoc) (rune, int, error) {
	u1, err := hex4(d, i+2, posDoc)
	if err != nil {
		return 0, 0, err
	}
	n := 6
	if utf16.IsSurrogate(rune(u1)) && i+n+6 <= len(d) && d[i+n] == '\\' && d[i+n+1] == 'u' {
		u2, err := hex4(d, i+n+2, posDoc)
		if err != nil {
			return 0, 0, err
		}
		if r := utf16.DecodeRune(rune(u1), rune(u2)); r != utf8.RuneError {
			return r, n + 6, nil
		}
	}
	if utf16.IsSurrogate(rune(u1)) {
		return utf8.RuneError, n, nil
	}
	return rune(u1), n, nil
}

func hex4(d []byte, i int, posDoc *PosDoc) (uint32, error) {
	if i+4 > len(d) {
		return 0, ExpectedErr("4 hex digits", posDoc.Pos(i))
	}
	var v uint32
	for j := range 4 {
		c := d[i+j]
		switch {
		case c >= '0' && c <= '9':
			v = v<<4 | uint32(c-'0')
		case c >= 'a' && c <= 'f':
			v = v<<4 | uint32(c-'a'+10)
		case c >= 'A' && c <= 'F':
			v = v<<4 | uint32(c-'A'+10)
		default:
			return 0, NewLexError(fmt.Errorf("invalid hex digit %q", rune(c)), posDoc.Pos(i+j))
		}
	}
	return v, nil
}

// scanNumber consumes a JSON number starting at d[i] and returns the
// number of bytes consumed.
func scanNumber(d []byte, i int, posDoc *PosDoc) (int, error) {
	start := i
	if d[i] == '-' {
		i++
	}
	digits := 0
	for i < len(d) && d[i] >= '0' && d[i] <= '9' {
		i++
		digits++
	}
	if digits == 0 {
		return 0, ExpectedErr("digit", posDoc.Pos(i))
	}
	if i < len(d) && d[i] == '.' {
		i++
		digits = 0
		for i < len(d) && d[i] >= '0' && d[i] <= '9' {
			i++
			digits++
		}
		if digits == 0 {
			return 0, ExpectedErr("fraction digit", posDoc.Pos(i))
		}
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		i++
		if i < len(d) && (d[i] == '+' || d[i] == '-') {
			i++
		}
		digits = 0
		for i < len(d) && d[i] >= '0' && d[i] <= '9' {
			i++
			digits++
		}
		if digits == 0 {
			return 0, ExpectedErr("exponent digit", posDoc.Pos(i))
		}
	}
	return i - start, nil
}
