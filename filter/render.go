package filter

import (
	"strings"

	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/token"
)

// String renders the filter in canonical grammar form: lower-case
// operators, JSON-escaped string literals, and parentheses only where
// needed to preserve structure. Parse(f.String()) is Equal to f.
func (f *Filter) String() string {
	var b strings.Builder
	f.render(&b)
	return b.String()
}

func (f *Filter) render(b *strings.Builder) {
	switch {
	case f.Op.IsComparison():
		b.WriteString(f.Attr.String())
		b.WriteByte(' ')
		b.WriteString(f.Op.String())
		b.WriteByte(' ')
		renderValue(f.Value, b)
	case f.Op == OpPresent:
		b.WriteString(f.Attr.String())
		b.WriteString(" pr")
	case f.Op == OpComplex:
		b.WriteString(f.Attr.String())
		b.WriteByte('[')
		f.Children[0].render(b)
		b.WriteByte(']')
	case f.Op == OpNot:
		b.WriteString("not (")
		f.Children[0].render(b)
		b.WriteByte(')')
	case f.Op == OpAnd:
		for i, child := range f.Children {
			if i > 0 {
				b.WriteString(" and ")
			}
			// nested and/or must keep their own grouping
			grouped := child.Op == OpAnd || child.Op == OpOr
			renderChild(child, grouped, b)
		}
	case f.Op == OpOr:
		for i, child := range f.Children {
			if i > 0 {
				b.WriteString(" or ")
			}
			grouped := child.Op == OpOr
			renderChild(child, grouped, b)
		}
	}
}

func renderChild(f *Filter, grouped bool, b *strings.Builder) {
	if grouped {
		b.WriteByte('(')
		f.render(b)
		b.WriteByte(')')
		return
	}
	f.render(b)
}

func renderValue(v *ir.Node, b *strings.Builder) {
	if v.Type == ir.StringType {
		b.WriteString(token.Quote(v.String))
		return
	}
	d, err := v.MarshalJSON()
	if err != nil {
		// scalar comparison values always marshal
		panic(err)
	}
	b.Write(d)
}
