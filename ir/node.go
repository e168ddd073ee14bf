// Package ir holds the ordered JSON document tree the SCIM engine
// addresses and mutates. Objects preserve insertion order; field lookup
// is case-insensitive while writes preserve the stored key's case.
package ir

import (
	"strings"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	// ObjectType: parallel Fields/Values, Fields[i] is the key node
	// for Values[i]. ArrayType: Values only.
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func Object() *Node {
	return &Node{Type: ObjectType}
}

func Array() *Node {
	return &Node{Type: ArrayType}
}

func FromSlice(elts []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(elts))
	for i, y := range elts {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs ...KeyVal) *Node {
	res := Object()
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

// Get returns the value of field, matching the name case-insensitively,
// or nil if y is not an object or has no such field.
func (y *Node) Get(field string) *Node {
	_, v := y.lookup(field)
	return v
}

// Lookup returns the stored key node and value for field, matched
// case-insensitively.
func (y *Node) Lookup(field string) (*Node, *Node) {
	return y.lookup(field)
}

func (y *Node) lookup(field string) (*Node, *Node) {
	n := len(y.Fields)
	for i := range n {
		if strings.EqualFold(y.Fields[i].String, field) {
			return y.Fields[i], y.Values[i]
		}
	}
	return nil, nil
}

// Set sets field to v. An existing field is matched case-insensitively
// and replaced in place, keeping the stored key's case and position; a
// new field is appended with the caller's case.
func (y *Node) Set(field string, v *Node) {
	n := len(y.Fields)
	for i := range n {
		if strings.EqualFold(y.Fields[i].String, field) {
			v.Parent = y
			v.ParentIndex = i
			v.ParentField = y.Fields[i].String
			y.Values[i] = v
			return
		}
	}
	keyNode := &Node{
		Parent:      y,
		ParentIndex: n,
		ParentField: field,
		Type:        StringType,
		String:      field,
	}
	v.Parent = y
	v.ParentIndex = n
	v.ParentField = field
	y.Fields = append(y.Fields, keyNode)
	y.Values = append(y.Values, v)
}

// Delete removes field, matched case-insensitively, preserving the
// order of the remaining fields. It reports whether a field was
// removed.
func (y *Node) Delete(field string) bool {
	n := len(y.Fields)
	for i := range n {
		if !strings.EqualFold(y.Fields[i].String, field) {
			continue
		}
		y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
		y.Values = append(y.Values[:i], y.Values[i+1:]...)
		for j := i; j < len(y.Values); j++ {
			y.Fields[j].ParentIndex = j
			y.Values[j].ParentIndex = j
		}
		return true
	}
	return false
}

// Append adds elt to the end of an array node.
func (y *Node) Append(elt *Node) {
	elt.Parent = y
	elt.ParentIndex = len(y.Values)
	y.Values = append(y.Values, elt)
}

// RemoveIndex removes the array element at index i, preserving the
// order of the rest.
func (y *Node) RemoveIndex(i int) {
	y.Values = append(y.Values[:i], y.Values[i+1:]...)
	for j := i; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
	}
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// IsEmpty reports whether y carries no data: null, empty string, empty
// array, or empty object. Numbers and bools are never empty.
func (y *Node) IsEmpty() bool {
	switch y.Type {
	case NullType:
		return true
	case StringType:
		return y.String == ""
	case ArrayType:
		return len(y.Values) == 0
	case ObjectType:
		return len(y.Fields) == 0
	default:
		return false
	}
}
