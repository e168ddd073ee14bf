// Package evaluate interprets filter expressions against document
// trees. Evaluation is total: a type-mismatched comparison is false,
// never an error.
package evaluate

import (
	"strings"

	"github.com/scimwire/go-scim/debug"
	"github.com/scimwire/go-scim/filter"
	"github.com/scimwire/go-scim/ir"
)

// Filter reports whether node satisfies f. String comparison is
// case-insensitive; a multi-valued attribute satisfies a leaf
// comparison when any of its elements does.
func Filter(f *filter.Filter, node *ir.Node) bool {
	res := eval(f, node)
	if debug.Eval() {
		debug.Logf("eval %s -> %v\n", f, res)
	}
	return res
}

func eval(f *filter.Filter, node *ir.Node) bool {
	switch f.Op {
	case filter.OpAnd:
		for _, child := range f.Children {
			if !eval(child, node) {
				return false
			}
		}
		return true
	case filter.OpOr:
		for _, child := range f.Children {
			if eval(child, node) {
				return true
			}
		}
		return false
	case filter.OpNot:
		return !eval(f.Children[0], node)
	case filter.OpComplex:
		return evalComplex(f, node)
	case filter.OpPresent:
		return present(ResolveAttr(f.Attr, node))
	default:
		return evalCompare(f, node)
	}
}

// ResolveAttr walks a dotted attribute reference from node, descending
// first into the extension object when the path is URN-qualified. It
// returns nil when any step is missing or not an object.
func ResolveAttr(attr *filter.AttrPath, node *ir.Node) *ir.Node {
	cur := node
	if attr.URN != "" {
		if cur == nil || cur.Type != ir.ObjectType {
			return nil
		}
		cur = cur.Get(attr.URN)
	}
	for _, name := range attr.Names {
		if cur == nil || cur.Type != ir.ObjectType {
			return nil
		}
		cur = cur.Get(name)
	}
	return cur
}

// present reports the SCIM pr semantics: a missing, null, or
// empty-array value is not present.
func present(v *ir.Node) bool {
	if v == nil || v.Type == ir.NullType {
		return false
	}
	if v.Type == ir.ArrayType && len(v.Values) == 0 {
		return false
	}
	return true
}

func evalComplex(f *filter.Filter, node *ir.Node) bool {
	v := ResolveAttr(f.Attr, node)
	if v == nil || v.Type != ir.ArrayType {
		return false
	}
	sub := f.Children[0]
	for _, elt := range v.Values {
		if elt.Type != ir.ObjectType {
			continue
		}
		if eval(sub, elt) {
			return true
		}
	}
	return false
}

func evalCompare(f *filter.Filter, node *ir.Node) bool {
	v := ResolveAttr(f.Attr, node)
	absent := !present(v)
	// absence equals null, and only null
	if f.Value.Type == ir.NullType {
		switch f.Op {
		case filter.OpEqual:
			if absent {
				return true
			}
		case filter.OpNotEqual:
			if absent {
				return false
			}
			if v.Type != ir.ArrayType {
				return v.Type != ir.NullType
			}
		default:
			return false
		}
	}
	if absent {
		return false
	}
	if v.Type == ir.ArrayType {
		for _, elt := range v.Values {
			if leafCompare(f.Op, elt, f.Value) {
				return true
			}
		}
		return false
	}
	return leafCompare(f.Op, v, f.Value)
}

func leafCompare(op filter.Op, v, cmp *ir.Node) bool {
	switch op {
	case filter.OpEqual:
		return valueEqual(v, cmp)
	case filter.OpNotEqual:
		return !valueEqual(v, cmp)
	case filter.OpContains, filter.OpStartsWith, filter.OpEndsWith:
		if v.Type != ir.StringType || cmp.Type != ir.StringType {
			return false
		}
		a, b := strings.ToLower(v.String), strings.ToLower(cmp.String)
		switch op {
		case filter.OpContains:
			return strings.Contains(a, b)
		case filter.OpStartsWith:
			return strings.HasPrefix(a, b)
		default:
			return strings.HasSuffix(a, b)
		}
	case filter.OpGreaterThan, filter.OpGreaterOrEqual, filter.OpLessThan, filter.OpLessOrEqual:
		c, ok := order(v, cmp)
		if !ok {
			return false
		}
		switch op {
		case filter.OpGreaterThan:
			return c > 0
		case filter.OpGreaterOrEqual:
			return c >= 0
		case filter.OpLessThan:
			return c < 0
		default:
			return c <= 0
		}
	}
	return false
}

// valueEqual compares a resolved value against a comparison literal:
// strings case-insensitively, numbers numerically, bools and nulls by
// identity of kind.
func valueEqual(v, cmp *ir.Node) bool {
	switch cmp.Type {
	case ir.StringType:
		return v.Type == ir.StringType && strings.EqualFold(v.String, cmp.String)
	case ir.NumberType:
		vf, vok := v.Float()
		cf, cok := cmp.Float()
		return vok && cok && vf == cf
	case ir.BoolType:
		return v.Type == ir.BoolType && v.Bool == cmp.Bool
	case ir.NullType:
		return v.Type == ir.NullType
	}
	return false
}

// order compares two scalars for the relational operators, returning
// ok=false on a type mismatch. Strings that both parse as ISO-8601
// instants compare as instants, not as text.
func order(v, cmp *ir.Node) (int, bool) {
	if v.Type == ir.NumberType && cmp.Type == ir.NumberType {
		vf, vok := v.Float()
		cf, cok := cmp.Float()
		if !vok || !cok {
			return 0, false
		}
		switch {
		case vf < cf:
			return -1, true
		case vf > cf:
			return 1, true
		}
		return 0, true
	}
	if v.Type == ir.StringType && cmp.Type == ir.StringType {
		if vt, err := ParseInstant(v.String); err == nil {
			if ct, err := ParseInstant(cmp.String); err == nil {
				switch {
				case vt.Before(ct):
					return -1, true
				case vt.After(ct):
					return 1, true
				}
				return 0, true
			}
		}
		return strings.Compare(strings.ToLower(v.String), strings.ToLower(cmp.String)), true
	}
	return 0, false
}
