package filter

import "github.com/scimwire/go-scim/ir"

// Builders for constructing filter ASTs without parsing.

func compare(op Op, attr *AttrPath, value *ir.Node) *Filter {
	return &Filter{Op: op, Attr: attr, Value: value}
}

func Eq(attr *AttrPath, value *ir.Node) *Filter { return compare(OpEqual, attr, value) }
func Ne(attr *AttrPath, value *ir.Node) *Filter { return compare(OpNotEqual, attr, value) }
func Co(attr *AttrPath, value *ir.Node) *Filter { return compare(OpContains, attr, value) }
func Sw(attr *AttrPath, value *ir.Node) *Filter { return compare(OpStartsWith, attr, value) }
func Ew(attr *AttrPath, value *ir.Node) *Filter { return compare(OpEndsWith, attr, value) }
func Gt(attr *AttrPath, value *ir.Node) *Filter { return compare(OpGreaterThan, attr, value) }
func Ge(attr *AttrPath, value *ir.Node) *Filter { return compare(OpGreaterOrEqual, attr, value) }
func Lt(attr *AttrPath, value *ir.Node) *Filter { return compare(OpLessThan, attr, value) }
func Le(attr *AttrPath, value *ir.Node) *Filter { return compare(OpLessOrEqual, attr, value) }

func Pr(attr *AttrPath) *Filter {
	return &Filter{Op: OpPresent, Attr: attr}
}

// And combines two or more filters; order is preserved.
func And(f, g *Filter, more ...*Filter) *Filter {
	return &Filter{Op: OpAnd, Children: append([]*Filter{f, g}, more...)}
}

// Or combines two or more filters; order is preserved.
func Or(f, g *Filter, more ...*Filter) *Filter {
	return &Filter{Op: OpOr, Children: append([]*Filter{f, g}, more...)}
}

func Not(f *Filter) *Filter {
	return &Filter{Op: OpNot, Children: []*Filter{f}}
}

// HasComplexValue matches when any element of the multi-valued
// attribute at attr satisfies sub.
func HasComplexValue(attr *AttrPath, sub *Filter) *Filter {
	return &Filter{Op: OpComplex, Attr: attr, Children: []*Filter{sub}}
}
