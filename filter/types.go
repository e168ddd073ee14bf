// Package filter implements the SCIM 2.0 filter expression language:
// the AST, builders, a precedence-climbing parser and a canonical
// renderer.
package filter

import (
	"strings"

	"github.com/scimwire/go-scim/ir"
)

type Op int

const (
	OpInvalid Op = iota
	OpEqual
	OpNotEqual
	OpContains
	OpStartsWith
	OpEndsWith
	OpGreaterThan
	OpGreaterOrEqual
	OpLessThan
	OpLessOrEqual
	OpPresent
	OpAnd
	OpOr
	OpNot
	OpComplex
)

var opNames = map[Op]string{
	OpEqual:          "eq",
	OpNotEqual:       "ne",
	OpContains:       "co",
	OpStartsWith:     "sw",
	OpEndsWith:       "ew",
	OpGreaterThan:    "gt",
	OpGreaterOrEqual: "ge",
	OpLessThan:       "lt",
	OpLessOrEqual:    "le",
	OpPresent:        "pr",
	OpAnd:            "and",
	OpOr:             "or",
	OpNot:            "not",
	OpComplex:        "complex",
}

func (o Op) String() string {
	s, ok := opNames[o]
	if !ok {
		return "<invalid op>"
	}
	return s
}

// IsComparison reports whether o is one of the nine leaf comparison
// operators.
func (o Op) IsComparison() bool {
	switch o {
	case OpEqual, OpNotEqual, OpContains, OpStartsWith, OpEndsWith,
		OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual:
		return true
	}
	return false
}

var compareOps = map[string]Op{
	"eq": OpEqual,
	"ne": OpNotEqual,
	"co": OpContains,
	"sw": OpStartsWith,
	"ew": OpEndsWith,
	"gt": OpGreaterThan,
	"ge": OpGreaterOrEqual,
	"lt": OpLessThan,
	"le": OpLessOrEqual,
}

// Filter is a node of the filter AST. Which fields are set depends on
// Op:
//
//	comparison ops   Attr, Value
//	OpPresent        Attr
//	OpComplex        Attr, Children[0] (the bracketed sub-filter)
//	OpAnd, OpOr      Children (two or more, ordered)
//	OpNot            Children[0]
//
// Filter values are immutable once built; they may be shared freely
// across goroutines.
type Filter struct {
	Op       Op
	Attr     *AttrPath
	Value    *ir.Node
	Children []*Filter
}

// AttrPath is a dotted attribute reference with an optional schema URN,
// as used inside filter expressions.
type AttrPath struct {
	URN   string
	Names []string
}

func NewAttrPath(urn string, names ...string) *AttrPath {
	return &AttrPath{URN: urn, Names: names}
}

func (a *AttrPath) String() string {
	var b strings.Builder
	if a.URN != "" {
		b.WriteString(a.URN)
		b.WriteByte(':')
	}
	for i, n := range a.Names {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(n)
	}
	return b.String()
}

// AttrPathEqual compares attribute paths with case-insensitive names
// and URNs.
func AttrPathEqual(a, b *AttrPath) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !strings.EqualFold(a.URN, b.URN) {
		return false
	}
	if len(a.Names) != len(b.Names) {
		return false
	}
	for i := range a.Names {
		if !strings.EqualFold(a.Names[i], b.Names[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same variant, same attribute path
// (names case-insensitive), equal values, and pairwise equal children
// in order.
func Equal(a, b *Filter) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Op != b.Op {
		return false
	}
	if !AttrPathEqual(a.Attr, b.Attr) {
		return false
	}
	if (a.Value == nil) != (b.Value == nil) {
		return false
	}
	if a.Value != nil && !ir.Equal(a.Value, b.Value) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
