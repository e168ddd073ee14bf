// Package patch implements the SCIM 2.0 PATCH mutation engine: decoding
// PatchOp request documents and applying their add, replace, and remove
// operations to a resource tree in request order.
package patch

import (
	"fmt"
	"strings"

	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/path"
)

// PatchOpURN is the message schema URN a PatchOp request document must
// carry.
const PatchOpURN = "urn:ietf:params:scim:api:messages:2.0:PatchOp"

type OpType int

const (
	OpInvalid OpType = iota
	OpAdd
	OpReplace
	OpRemove
)

var opTypeNames = map[OpType]string{
	OpAdd:     "add",
	OpReplace: "replace",
	OpRemove:  "remove",
}

func (t OpType) String() string {
	s, ok := opTypeNames[t]
	if !ok {
		return "<invalid op>"
	}
	return s
}

// Operation is one decoded patch operation. Path is nil when the
// operation addresses the whole resource; Value is nil when the
// operation carries none.
type Operation struct {
	Op    OpType
	Path  *path.Path
	Value *ir.Node
}

// Request is an ordered list of operations applied against one tree.
type Request struct {
	Operations []Operation
}

// DecodeRequest decodes a PatchOp request document. Envelope field
// names are matched case-insensitively. The document must carry the
// PatchOp schema URN and at least one operation.
func DecodeRequest(d []byte) (*Request, error) {
	doc, err := ir.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	if doc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: patch request is not an object", ErrBadValue)
	}
	schemas := doc.Get("schemas")
	if schemas == nil || !schemas.ContainsString(PatchOpURN) {
		return nil, fmt.Errorf("%w: patch request does not declare schema %q", ErrBadValue, PatchOpURN)
	}
	opsNode := doc.Get("Operations")
	if opsNode == nil || opsNode.Type != ir.ArrayType || len(opsNode.Values) == 0 {
		return nil, fmt.Errorf("%w: patch request has no operations", ErrBadValue)
	}
	req := &Request{Operations: make([]Operation, 0, len(opsNode.Values))}
	for i, n := range opsNode.Values {
		op, err := decodeOperation(n)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		req.Operations = append(req.Operations, op)
	}
	return req, nil
}

func decodeOperation(n *ir.Node) (Operation, error) {
	var res Operation
	if n.Type != ir.ObjectType {
		return res, fmt.Errorf("%w: operation is not an object", ErrBadValue)
	}
	kind := n.Get("op")
	if kind == nil || kind.Type != ir.StringType {
		return res, fmt.Errorf("%w: operation has no op field", ErrBadValue)
	}
	switch strings.ToLower(kind.String) {
	case "add":
		res.Op = OpAdd
	case "replace":
		res.Op = OpReplace
	case "remove":
		res.Op = OpRemove
	default:
		return res, fmt.Errorf("%w: unknown op %q", ErrBadValue, kind.String)
	}
	if pn := n.Get("path"); pn != nil && pn.Type != ir.NullType {
		if pn.Type != ir.StringType {
			return res, fmt.Errorf("%w: path is not a string", ErrBadPath)
		}
		p, err := path.Parse(pn.String)
		if err != nil {
			return res, err
		}
		res.Path = p
	}
	if v := n.Get("value"); v != nil && v.Type != ir.NullType {
		res.Value = detach(v)
	}
	return res, nil
}

// CompatMemberIDs returns the member ids named by a compatibility-mode
// remove payload, accepting both {"members": [...]} and a bare member
// list. It fails with ErrState on a non-remove operation and with
// ErrBadValue when a member object carries no value field.
func (o *Operation) CompatMemberIDs() ([]*ir.Node, error) {
	if o.Op != OpRemove {
		return nil, fmt.Errorf("%w: %s carries no member list", ErrState, o.Op)
	}
	list := o.Value
	if list != nil && list.Type == ir.ObjectType {
		list = list.Get("members")
	}
	if list == nil || list.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: remove value is not a member list", ErrBadValue)
	}
	ids := make([]*ir.Node, 0, len(list.Values))
	for i, m := range list.Values {
		if m.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: member %d is not an object", ErrBadValue, i)
		}
		id := m.Get("value")
		if id == nil || id.Type == ir.NullType {
			return nil, fmt.Errorf("%w: member %d has no value", ErrBadValue, i)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// detach deep-copies n so mutations of the destination tree cannot
// reach back into the source document.
func detach(n *ir.Node) *ir.Node {
	c := n.Clone()
	c.Parent = nil
	c.ParentIndex = 0
	c.ParentField = ""
	return c
}
