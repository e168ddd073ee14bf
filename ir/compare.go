package ir

import (
	"strconv"
	"strings"
)

// Equal reports deep structural equality. Object fields are compared
// case-insensitively and without regard to order; array elements are
// compared in order; numbers are compared numerically, so 1 and 1.0
// are equal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return numEqual(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			bv := b.Get(a.Fields[i].String)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

func numEqual(a, b *Node) bool {
	af, aok := a.Float()
	bf, bok := b.Float()
	if aok && bok {
		return af == bf
	}
	return a.Number == b.Number
}

// Float returns the numeric value of a number node as a float64.
func (y *Node) Float() (float64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	f, err := strconv.ParseFloat(y.Number, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the integral value of a number node.
func (y *Node) Int() (int64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 != nil && *y.Float64 == float64(int64(*y.Float64)) {
		return int64(*y.Float64), true
	}
	i, err := strconv.ParseInt(y.Number, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ContainsString reports whether an array of scalars contains v,
// compared case-insensitively for strings.
func (y *Node) ContainsString(v string) bool {
	for _, elt := range y.Values {
		if elt.Type == StringType && strings.EqualFold(elt.String, v) {
			return true
		}
	}
	return false
}
