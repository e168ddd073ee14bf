package patch

import (
	"fmt"
	"strings"

	"github.com/scimwire/go-scim/debug"
	"github.com/scimwire/go-scim/evaluate"
	"github.com/scimwire/go-scim/filter"
	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/path"
	"github.com/scimwire/go-scim/resolve"
)

// Apply applies ops to root strictly in order. A failing operation
// stops the run but does not roll back the mutations of earlier
// operations; callers needing atomicity must clone the tree first.
func Apply(root *ir.Node, ops ...Operation) error {
	for i := range ops {
		if err := applyOne(root, &ops[i]); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return nil
}

// Apply applies the request's operations to root in order, with the
// same non-atomic failure behavior as the package-level Apply.
func (r *Request) Apply(root *ir.Node) error {
	return Apply(root, r.Operations...)
}

func applyOne(root *ir.Node, op *Operation) error {
	if debug.Patch() {
		debug.Logf("patch %s %q\n", op.Op, op.Path)
	}
	if op.Path != nil && op.Path.HasLaterFilter() {
		return fmt.Errorf("%w: %q has a value filter after the first element", ErrBadPath, op.Path)
	}
	switch op.Op {
	case OpAdd:
		return applyAdd(root, op)
	case OpReplace:
		return applyReplace(root, op)
	case OpRemove:
		return applyRemove(root, op)
	}
	return fmt.Errorf("%w: unknown op", ErrBadValue)
}

func applyAdd(root *ir.Node, op *Operation) error {
	if err := checkValue(op); err != nil {
		return err
	}
	p := op.Path
	if p == nil || p.IsRoot() {
		if op.Value.Type != ir.ObjectType {
			return fmt.Errorf("%w: add without a path requires an object value", ErrBadValue)
		}
		mergeObject(root, op.Value)
		for _, f := range op.Value.Fields {
			if strings.HasPrefix(strings.ToLower(f.String), "urn:") {
				addSchemaURN(root, f.String)
			}
		}
		return nil
	}
	if f := p.FirstFilter(); f != nil {
		if err := setFiltered(root, p, f, op.Value, true); err != nil {
			return err
		}
	} else if p.IsExtensionRoot() {
		if op.Value.Type != ir.ObjectType {
			return fmt.Errorf("%w: add to %q requires an object value", ErrBadValue, p.URN)
		}
		tgt, err := resolve.Ensure(p, root)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		mergeObject(tgt.Node, op.Value)
	} else {
		tgt, err := resolve.Ensure(p, root)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		mergeField(tgt.Container, tgt.Field, tgt.Node, op.Value)
	}
	if p.URN != "" {
		addSchemaURN(root, p.URN)
	}
	return nil
}

func applyReplace(root *ir.Node, op *Operation) error {
	if err := checkValue(op); err != nil {
		return err
	}
	p := op.Path
	if p == nil || p.IsRoot() {
		if op.Value.Type != ir.ObjectType {
			return fmt.Errorf("%w: replace without a path requires an object value", ErrBadValue)
		}
		for i, f := range op.Value.Fields {
			root.Set(f.String, detach(op.Value.Values[i]))
		}
		return nil
	}
	if f := p.FirstFilter(); f != nil {
		if err := setFiltered(root, p, f, op.Value, false); err != nil {
			return err
		}
	} else {
		tgt, err := resolve.Ensure(p, root)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		tgt.Container.Set(tgt.Field, detach(op.Value))
	}
	if p.URN != "" {
		addSchemaURN(root, p.URN)
	}
	return nil
}

// setFiltered sets the sub-attribute named by the second path element
// on every array element matching the first element's filter. The
// filter must be a single eq comparison. When seed is set and nothing
// matches, a new element carrying the filtered attribute and the
// sub-attribute is appended; otherwise a zero-match set is a no-op.
func setFiltered(root *ir.Node, p *path.Path, f *filter.Filter, v *ir.Node, seed bool) error {
	if f.Op != filter.OpEqual {
		return fmt.Errorf("%w: value filter in %q must be a single eq comparison", ErrBadPath, p)
	}
	if len(p.Elements) != 2 {
		return fmt.Errorf("%w: filtered path %q must name one sub-attribute", ErrBadPath, p)
	}
	arr, err := resolve.FirstArray(p, root, seed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPath, err)
	}
	if arr == nil {
		return nil
	}
	sub := p.Elements[1].Name
	matched := false
	for _, elt := range arr.Values {
		if !evaluate.Filter(f, elt) {
			continue
		}
		matched = true
		if elt.Type == ir.ObjectType {
			elt.Set(sub, detach(v))
		}
	}
	if !matched && seed {
		elt := ir.Object()
		cur := elt
		for _, name := range f.Attr.Names[:len(f.Attr.Names)-1] {
			next := ir.Object()
			cur.Set(name, next)
			cur = next
		}
		cur.Set(f.Attr.Names[len(f.Attr.Names)-1], detach(f.Value))
		elt.Set(sub, detach(v))
		arr.Append(elt)
	}
	return nil
}

func applyRemove(root *ir.Node, op *Operation) error {
	if op.Value != nil {
		return compatRemove(root, op)
	}
	p := op.Path
	if p == nil || p.IsRoot() {
		return fmt.Errorf("%w: remove requires a path", ErrBadPath)
	}
	if f := p.FirstFilter(); f != nil {
		if err := removeFiltered(root, p, f); err != nil {
			return err
		}
	} else {
		tgts, err := resolve.Targets(p, root)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		for _, tgt := range tgts {
			if tgt.Node == nil || tgt.Container == nil {
				continue
			}
			tgt.Container.Delete(tgt.Field)
		}
	}
	if p.URN != "" {
		pruneExtension(root, p.URN)
	}
	return nil
}

// removeFiltered deletes every array element matching the filter, or,
// when the path names a sub-attribute, deletes that field from every
// matching element. An attribute left empty by element deletion is
// removed outright rather than kept as an empty array.
func removeFiltered(root *ir.Node, p *path.Path, f *filter.Filter) error {
	if len(p.Elements) > 2 {
		return fmt.Errorf("%w: filtered path %q is too deep to remove through", ErrBadPath, p)
	}
	arr, err := resolve.FirstArray(p, root, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPath, err)
	}
	if arr == nil {
		return nil
	}
	if len(p.Elements) == 2 {
		sub := p.Elements[1].Name
		for _, elt := range arr.Values {
			if elt.Type == ir.ObjectType && evaluate.Filter(f, elt) {
				elt.Delete(sub)
			}
		}
		return nil
	}
	removeElements(arr, f)
	if len(arr.Values) == 0 && arr.Parent != nil {
		arr.Parent.Delete(arr.ParentField)
	}
	return nil
}

func removeElements(arr *ir.Node, f *filter.Filter) {
	for i := len(arr.Values) - 1; i >= 0; i-- {
		if evaluate.Filter(f, arr.Values[i]) {
			arr.RemoveIndex(i)
		}
	}
}

// compatRemove handles the legacy remove shape that names members to
// delete in the operation value instead of in a value filter. Each
// member id becomes an independent equality-filtered remove; ids with
// no matching member are ignored.
func compatRemove(root *ir.Node, op *Operation) error {
	p := op.Path
	if p == nil || p.URN != "" || len(p.Elements) != 1 || !strings.EqualFold(p.Elements[0].Name, "members") {
		return fmt.Errorf("%w: member-list remove applies only to the members attribute", ErrBadValue)
	}
	if p.Elements[0].Filter != nil {
		return fmt.Errorf("%w: member-list remove cannot combine with a value filter", ErrBadPath)
	}
	ids, err := op.CompatMemberIDs()
	if err != nil {
		return err
	}
	arr, err := resolve.FirstArray(p, root, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPath, err)
	}
	if arr == nil {
		return nil
	}
	attr := filter.NewAttrPath("", "value")
	for _, id := range ids {
		removeElements(arr, filter.Eq(attr, id))
	}
	if len(arr.Values) == 0 && arr.Parent != nil {
		arr.Parent.Delete(arr.ParentField)
	}
	return nil
}

// mergeField implements add semantics for one object field: append to
// an existing array, merge into an existing object, otherwise set.
func mergeField(container *ir.Node, field string, existing, v *ir.Node) {
	switch {
	case existing != nil && existing.Type == ir.ArrayType:
		if v.Type == ir.ArrayType {
			for _, e := range v.Values {
				existing.Append(detach(e))
			}
		} else {
			existing.Append(detach(v))
		}
	case existing != nil && existing.Type == ir.ObjectType && v.Type == ir.ObjectType:
		mergeObject(existing, v)
	default:
		container.Set(field, detach(v))
	}
}

func mergeObject(dst, src *ir.Node) {
	for i, f := range src.Fields {
		mergeField(dst, f.String, dst.Get(f.String), src.Values[i])
	}
}

func checkValue(op *Operation) error {
	v := op.Value
	if v == nil || v.Type == ir.NullType {
		return fmt.Errorf("%w: %s operation requires a value", ErrBadValue, op.Op)
	}
	if v.IsEmpty() && v.Type != ir.ArrayType {
		return fmt.Errorf("%w: %s operation value is empty", ErrBadValue, op.Op)
	}
	return nil
}

// addSchemaURN records urn in the resource's schemas set, creating the
// set if absent.
func addSchemaURN(root *ir.Node, urn string) {
	schemas := root.Get("schemas")
	if schemas == nil || schemas.Type != ir.ArrayType {
		schemas = ir.Array()
		root.Set("schemas", schemas)
	}
	if !schemas.ContainsString(urn) {
		schemas.Append(ir.FromString(urn))
	}
}

// pruneExtension drops an extension whose data has been fully removed:
// the empty extension object itself and its URN in the schemas set.
func pruneExtension(root *ir.Node, urn string) {
	ext := root.Get(urn)
	if ext != nil && !ext.IsEmpty() {
		return
	}
	if ext != nil {
		root.Delete(urn)
	}
	schemas := root.Get("schemas")
	if schemas == nil || schemas.Type != ir.ArrayType {
		return
	}
	for i := len(schemas.Values) - 1; i >= 0; i-- {
		e := schemas.Values[i]
		if e.Type == ir.StringType && strings.EqualFold(e.String, urn) {
			schemas.RemoveIndex(i)
		}
	}
}
