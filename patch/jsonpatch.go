package patch

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/scimwire/go-scim/ir"
)

// ApplyJSONPatch applies an RFC 6902 patch document to root and
// returns the patched tree. The input tree is not modified; RFC 6902
// paths are index-based and case-sensitive, unlike SCIM paths.
func ApplyJSONPatch(root *ir.Node, patchDoc []byte) (*ir.Node, error) {
	p, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	raw, err := root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	return ir.FromJSON(out)
}

// ApplyMergePatch applies an RFC 7386 merge patch document to root and
// returns the patched tree.
func ApplyMergePatch(root *ir.Node, mergeDoc []byte) (*ir.Node, error) {
	raw, err := root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(raw, mergeDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	return ir.FromJSON(out)
}
