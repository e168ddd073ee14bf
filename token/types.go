// Package token provides tokenization for the SCIM filter and path grammars.
package token

import (
	"fmt"
	"strings"
)

type Type int

const (
	TAttrName Type = iota
	TString
	TNumber
	TTrue
	TFalse
	TNull
	TCompareOp
	TPresent
	TAnd
	TOr
	TNot
	TLParen
	TRParen
	TLBracket
	TRBracket
	TComma
	TDot
)

func (t Type) String() string {
	return map[Type]string{
		TAttrName:  "TAttrName",
		TString:    "TString",
		TNumber:    "TNumber",
		TTrue:      "TTrue",
		TFalse:     "TFalse",
		TNull:      "TNull",
		TCompareOp: "TCompareOp",
		TPresent:   "TPresent",
		TAnd:       "TAnd",
		TOr:        "TOr",
		TNot:       "TNot",
		TLParen:    "TLParen",
		TRParen:    "TRParen",
		TLBracket:  "TLBracket",
		TRBracket:  "TRBracket",
		TComma:     "TComma",
		TDot:       "TDot",
	}[t]
}

type Token struct {
	Type  Type
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the token text. For TString this is the unescaped
// string value, not the quoted source form.
func (t *Token) String() string {
	return string(t.Bytes)
}

// Keyword returns the canonical lower-case form of a keyword token
// (comparison operators, pr, and, or, not).
func (t *Token) Keyword() string {
	return strings.ToLower(string(t.Bytes))
}

// IsWord reports whether t is identifier-shaped: an attribute name or
// a keyword. Attribute names are not reserved, so parsers accept any
// word where the grammar expects an attribute ("null pr" filters on an
// attribute literally named null).
func (t *Token) IsWord() bool {
	switch t.Type {
	case TAttrName, TTrue, TFalse, TNull, TCompareOp, TPresent, TAnd, TOr, TNot:
		return true
	}
	return false
}

// keyword classification for identifier-shaped words. Words are matched
// case-insensitively; anything else stays an attribute name.
var keywords = map[string]Type{
	"true":  TTrue,
	"false": TFalse,
	"null":  TNull,
	"eq":    TCompareOp,
	"ne":    TCompareOp,
	"co":    TCompareOp,
	"sw":    TCompareOp,
	"ew":    TCompareOp,
	"gt":    TCompareOp,
	"ge":    TCompareOp,
	"lt":    TCompareOp,
	"le":    TCompareOp,
	"pr":    TPresent,
	"and":   TAnd,
	"or":    TOr,
	"not":   TNot,
}

func classify(word []byte) Type {
	t, ok := keywords[strings.ToLower(string(word))]
	if !ok {
		return TAttrName
	}
	return t
}
