package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// FromJSON decodes JSON into a tree, preserving object field order.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// trailing input after the first value is an error
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}
	return node, nil
}

// MustFromJSON is FromJSON for tests and fixtures known to be valid.
func MustFromJSON(d string) *Node {
	node, err := FromJSON([]byte(d))
	if err != nil {
		panic(err)
	}
	return node
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := Array()
			for dec.More() {
				elt, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(elt)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return FromString(v), nil
	case json.Number:
		return FromNumber(string(v)), nil
	case bool:
		return FromBool(v), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// FromNumber builds a number node from raw JSON number text, retaining
// the source text for rendering.
func FromNumber(raw string) *Node {
	node := &Node{Type: NumberType, Number: raw}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		node.Int64 = &i
		return node
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		node.Float64 = &f
	}
	return node
}

// MarshalJSON renders the tree as compact JSON with object fields in
// stored order.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(y, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(y *Node, buf *bytes.Buffer) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		buf.WriteString(y.numberText())
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, elt := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(elt, buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(y.Values[i], buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unencodable type %s", y.Type)
	}
	return nil
}

func (y *Node) numberText() string {
	if y.Number != "" {
		return y.Number
	}
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 != nil {
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	}
	return "0"
}

// FromAny converts a decoded any-typed document (for example from a
// YAML decoder) into a tree. Map iteration order is not defined for
// map[string]any inputs; callers needing stable order should decode
// with FromJSON.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return FromNumber(string(x)), nil
	case []any:
		arr := Array()
		for _, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			arr.Append(n)
		}
		return arr, nil
	case map[string]any:
		obj := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, n)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T", ErrDecode, v)
	}
}

// ToAny converts the tree to the any-typed form encoding/json produces,
// losing field order.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return json.Number(y.numberText())
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, elt := range y.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i := range y.Fields {
			res[y.Fields[i].String] = ToAny(y.Values[i])
		}
		return res
	default:
		return nil
	}
}
