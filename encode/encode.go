// Package encode renders document trees as deterministic JSON, with
// stored field order preserved and optional terminal coloring.
package encode

import (
	"io"
	"strings"

	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/token"
)

type EncState struct {
	depth, indent int
	compact       bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. Output is pretty-printed with two-space
// indentation unless Compact is set; field order is the tree's stored
// order, so encoding is deterministic.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	if es.compact {
		return nil
	}
	return writeString(w, "\n")
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	default:
		return writeColored(w, es, node.Type, ValueColor, scalarText(node))
	}
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, "{}")
	}
	if err := writeColored(w, es, ir.ObjectType, SepColor, "{"); err != nil {
		return err
	}
	es.depth++
	for i, f := range node.Fields {
		if i > 0 {
			if err := writeColored(w, es, ir.ObjectType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeColored(w, es, ir.ObjectType, FieldColor, token.Quote(f.String)); err != nil {
			return err
		}
		sep := ": "
		if es.compact {
			sep = ":"
		}
		if err := writeColored(w, es, ir.ObjectType, SepColor, sep); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ObjectType, SepColor, "}")
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, "[]")
	}
	if err := writeColored(w, es, ir.ArrayType, SepColor, "["); err != nil {
		return err
	}
	es.depth++
	for i, elt := range node.Values {
		if i > 0 {
			if err := writeColored(w, es, ir.ArrayType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(elt, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ArrayType, SepColor, "]")
}

func scalarText(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		if node.Bool {
			return "true"
		}
		return "false"
	case ir.StringType:
		return token.Quote(node.String)
	default:
		d, _ := node.MarshalJSON()
		return string(d)
	}
}

func writeNL(w io.Writer, es *EncState) error {
	if es.compact {
		return nil
	}
	pad := strings.Repeat(" ", es.indent*es.depth)
	return writeString(w, "\n"+pad)
}

func writeColored(w io.Writer, es *EncState, t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
