// Package resolve turns paths into target handles inside a document
// tree: object fields, array indexes, or every array element matching
// an embedded value filter.
package resolve

import (
	"github.com/scimwire/go-scim/debug"
	"github.com/scimwire/go-scim/evaluate"
	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/path"
)

// Target is one resolved location. For an object field, Container is
// the owning object, Field the stored key (case preserved) and Index
// -1; for an array element, Container is the array and Index the
// element's position. Node is the value at the location, nil when the
// path addresses an absent attribute. The root handle has a nil
// Container.
type Target struct {
	Container *ir.Node
	Field     string
	Index     int
	Node      *ir.Node
}

// Targets resolves p against root for reading. It never mutates the
// tree. A path whose elements carry no filter resolves to exactly one
// handle, possibly absent; each filtered element fans out to every
// matching array element, so a zero-match filter yields zero handles.
func Targets(p *path.Path, root *ir.Node) ([]Target, error) {
	if debug.Resolve() {
		debug.Logf("resolve %q\n", p)
	}
	if p.IsRoot() {
		return []Target{{Index: -1, Node: root}}, nil
	}
	if p.IsExtensionRoot() {
		field, val := lookupField(root, p.URN)
		return []Target{{Container: root, Field: field, Index: -1, Node: val}}, nil
	}
	base := root
	if p.URN != "" {
		base = root.Get(p.URN)
	}
	cursors := []*ir.Node{base}
	var res []Target
	for ei := range p.Elements {
		el := &p.Elements[ei]
		last := ei == len(p.Elements)-1
		var next []*ir.Node
		for _, cur := range cursors {
			var container *ir.Node
			field := el.Name
			var val *ir.Node
			if cur != nil && cur.Type == ir.ObjectType {
				container = cur
				field, val = lookupField(cur, el.Name)
			}
			if el.Filter == nil {
				if last {
					res = append(res, Target{Container: container, Field: field, Index: -1, Node: val})
				} else {
					next = append(next, val)
				}
				continue
			}
			if val == nil || val.Type != ir.ArrayType {
				continue
			}
			for i, elt := range val.Values {
				if !evaluate.Filter(el.Filter, elt) {
					continue
				}
				if last {
					res = append(res, Target{Container: val, Index: i, Node: elt})
				} else {
					next = append(next, elt)
				}
			}
		}
		cursors = next
	}
	return res, nil
}

// Ensure resolves p for writing, creating missing intermediate objects
// along the way. Filtered paths are rejected; the patch engine handles
// those itself since their write semantics depend on the operation.
func Ensure(p *path.Path, root *ir.Node) (*Target, error) {
	if p.FirstFilter() != nil || p.HasLaterFilter() {
		return nil, ErrFilteredPath
	}
	if p.IsRoot() {
		return &Target{Index: -1, Node: root}, nil
	}
	base := root
	if p.URN != "" {
		base = ensureObject(root, p.URN)
		if base == nil {
			return nil, ErrNotComplex
		}
		if p.IsExtensionRoot() {
			field, val := lookupField(root, p.URN)
			return &Target{Container: root, Field: field, Index: -1, Node: val}, nil
		}
	}
	cur := base
	for i := 0; i < len(p.Elements)-1; i++ {
		cur = ensureObject(cur, p.Elements[i].Name)
		if cur == nil {
			return nil, ErrNotComplex
		}
	}
	name := p.Elements[len(p.Elements)-1].Name
	field, val := lookupField(cur, name)
	return &Target{Container: cur, Field: field, Index: -1, Node: val}, nil
}

// FirstArray returns the array addressed by the first element of p,
// optionally creating it (and an absent extension object) on the way.
// It returns nil without error when the attribute is absent and create
// is false.
func FirstArray(p *path.Path, root *ir.Node, create bool) (*ir.Node, error) {
	base := root
	if p.URN != "" {
		if create {
			base = ensureObject(root, p.URN)
			if base == nil {
				return nil, ErrNotComplex
			}
		} else {
			base = root.Get(p.URN)
			if base == nil {
				return nil, nil
			}
			if base.Type != ir.ObjectType {
				return nil, ErrNotComplex
			}
		}
	}
	name := p.Elements[0].Name
	_, val := lookupField(base, name)
	if val == nil {
		if !create {
			return nil, nil
		}
		val = ir.Array()
		base.Set(name, val)
		return val, nil
	}
	if val.Type != ir.ArrayType {
		return nil, ErrNotMultiValued
	}
	return val, nil
}

// lookupField returns the stored key (case preserved) and value of
// name on obj, falling back to name itself when absent.
func lookupField(obj *ir.Node, name string) (string, *ir.Node) {
	if obj == nil || obj.Type != ir.ObjectType {
		return name, nil
	}
	key, val := obj.Lookup(name)
	if key == nil {
		return name, nil
	}
	return key.String, val
}

// ensureObject returns the object stored at name on obj, creating it
// when absent. It returns nil when a non-object value is in the way.
func ensureObject(obj *ir.Node, name string) *ir.Node {
	_, val := obj.Lookup(name)
	if val == nil {
		val = ir.Object()
		obj.Set(name, val)
		return val
	}
	if val.Type != ir.ObjectType {
		return nil
	}
	return val
}
