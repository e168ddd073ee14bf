// Package resource wraps a document tree in a container the patch
// engine and typed accessors work against, so callers holding generic
// and strongly-typed resources share one mutation surface.
package resource

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scimwire/go-scim/evaluate"
	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/patch"
	"github.com/scimwire/go-scim/path"
	"github.com/scimwire/go-scim/resolve"
)

// Container exposes a resource's raw document tree for reading and
// wholesale replacement. The tree is exclusively owned by the caller
// for the duration of any call that takes a Container.
type Container interface {
	Raw() *ir.Node
	SetRaw(*ir.Node)
}

// Unstructured is a schema-less resource holding only its document
// tree.
type Unstructured struct {
	raw *ir.Node
}

// New returns an empty resource.
func New() *Unstructured {
	return &Unstructured{raw: ir.Object()}
}

// FromJSON decodes a resource document.
func FromJSON(d []byte) (*Unstructured, error) {
	n, err := ir.FromJSON(d)
	if err != nil {
		return nil, err
	}
	if n.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: resource document is not an object", ir.ErrDecode)
	}
	return &Unstructured{raw: n}, nil
}

func (u *Unstructured) Raw() *ir.Node     { return u.raw }
func (u *Unstructured) SetRaw(n *ir.Node) { u.raw = n }

func (u *Unstructured) MarshalJSON() ([]byte, error) {
	return u.raw.MarshalJSON()
}

// Get resolves pathStr and returns the first present value, or
// ErrNotFound when the path addresses nothing.
func Get(c Container, pathStr string) (*ir.Node, error) {
	p, err := path.Parse(pathStr)
	if err != nil {
		return nil, err
	}
	tgts, err := resolve.Targets(p, c.Raw())
	if err != nil {
		return nil, err
	}
	for _, tgt := range tgts {
		if tgt.Node != nil {
			return tgt.Node, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, pathStr)
}

// GetString returns the string value at pathStr.
func GetString(c Container, pathStr string) (string, error) {
	n, err := Get(c, pathStr)
	if err != nil {
		return "", err
	}
	if n.Type != ir.StringType {
		return "", fmt.Errorf("%w: %q is not a string", ErrWrongType, pathStr)
	}
	return n.String, nil
}

// GetInt returns the integer value at pathStr.
func GetInt(c Container, pathStr string) (int64, error) {
	n, err := Get(c, pathStr)
	if err != nil {
		return 0, err
	}
	v, ok := n.Int()
	if !ok {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrWrongType, pathStr)
	}
	return v, nil
}

// GetBool returns the boolean value at pathStr.
func GetBool(c Container, pathStr string) (bool, error) {
	n, err := Get(c, pathStr)
	if err != nil {
		return false, err
	}
	if n.Type != ir.BoolType {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrWrongType, pathStr)
	}
	return n.Bool, nil
}

// GetTime returns the value at pathStr parsed as an ISO-8601 instant.
func GetTime(c Container, pathStr string) (time.Time, error) {
	s, err := GetString(c, pathStr)
	if err != nil {
		return time.Time{}, err
	}
	t, err := evaluate.ParseInstant(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an instant", ErrWrongType, pathStr)
	}
	return t, nil
}

// Set writes v at pathStr, creating intermediate objects. Filtered
// paths are rejected; use Patch for value-selected mutation.
func Set(c Container, pathStr string, v *ir.Node) error {
	p, err := path.Parse(pathStr)
	if err != nil {
		return err
	}
	tgt, err := resolve.Ensure(p, c.Raw())
	if err != nil {
		return err
	}
	if tgt.Container == nil {
		if v.Type != ir.ObjectType {
			return fmt.Errorf("%w: resource document must be an object", ErrWrongType)
		}
		c.SetRaw(v)
		return nil
	}
	tgt.Container.Set(tgt.Field, v)
	return nil
}

// Remove deletes the attribute at pathStr with standard remove
// semantics, including filtered element deletion.
func Remove(c Container, pathStr string) error {
	p, err := path.Parse(pathStr)
	if err != nil {
		return err
	}
	return patch.Apply(c.Raw(), patch.Operation{Op: patch.OpRemove, Path: p})
}

// Patch applies a decoded patch request to the resource.
func Patch(c Container, req *patch.Request) error {
	return req.Apply(c.Raw())
}

// ID returns the resource's id attribute, or "".
func ID(c Container) string {
	n := c.Raw().Get("id")
	if n == nil || n.Type != ir.StringType {
		return ""
	}
	return n.String
}

// SetID sets the resource's id attribute.
func SetID(c Container, id string) {
	c.Raw().Set("id", ir.FromString(id))
}

// NewID returns a fresh random resource id.
func NewID() string {
	return uuid.NewString()
}

// EnsureID assigns a fresh id only when the resource has none, and
// returns the id in effect afterward.
func EnsureID(c Container) string {
	if id := ID(c); id != "" {
		return id
	}
	id := NewID()
	SetID(c, id)
	return id
}

// Schemas returns the resource's declared schema URNs in stored order.
func Schemas(c Container) []string {
	arr := c.Raw().Get("schemas")
	if arr == nil || arr.Type != ir.ArrayType {
		return nil
	}
	res := make([]string, 0, len(arr.Values))
	for _, e := range arr.Values {
		if e.Type == ir.StringType {
			res = append(res, e.String)
		}
	}
	return res
}
