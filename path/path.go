// Package path implements the SCIM 2.0 attribute path language used to
// address locations inside a resource document. A path is an optional
// schema URN followed by dotted elements, each optionally carrying a
// bracketed value-selection filter.
package path

import (
	"strings"

	"github.com/scimwire/go-scim/filter"
)

// Path addresses a location in a resource. The zero value is the root
// path, denoting the whole resource. A Path with a URN and no elements
// denotes the whole schema-extension object. Paths are immutable value
// objects.
type Path struct {
	URN      string
	Elements []Element
}

type Element struct {
	Name   string
	Filter *filter.Filter
}

// Root returns the path denoting the whole resource.
func Root() *Path {
	return &Path{}
}

// Attr returns a single-element path for a top-level attribute.
func Attr(name string) *Path {
	return &Path{Elements: []Element{{Name: name}}}
}

// Extension returns the path denoting a whole extension object.
func Extension(urn string) *Path {
	return &Path{URN: urn}
}

// Sub returns a copy of p with a sub-attribute element appended.
func (p *Path) Sub(name string) *Path {
	res := p.clone()
	res.Elements = append(res.Elements, Element{Name: name})
	return res
}

// Where returns a copy of p with f attached as the value filter of the
// last element.
func (p *Path) Where(f *filter.Filter) *Path {
	res := p.clone()
	res.Elements[len(res.Elements)-1].Filter = f
	return res
}

func (p *Path) clone() *Path {
	res := &Path{URN: p.URN}
	res.Elements = make([]Element, len(p.Elements))
	copy(res.Elements, p.Elements)
	return res
}

// IsRoot reports whether p denotes the whole resource.
func (p *Path) IsRoot() bool {
	return p.URN == "" && len(p.Elements) == 0
}

// IsExtensionRoot reports whether p denotes a whole extension object.
func (p *Path) IsExtensionRoot() bool {
	return p.URN != "" && len(p.Elements) == 0
}

// FirstFilter returns the value filter of the first element, or nil.
func (p *Path) FirstFilter() *filter.Filter {
	if len(p.Elements) == 0 {
		return nil
	}
	return p.Elements[0].Filter
}

// HasLaterFilter reports whether any element after the first carries a
// value filter. Such paths resolve for reads but are rejected by the
// patch engine.
func (p *Path) HasLaterFilter() bool {
	for i := 1; i < len(p.Elements); i++ {
		if p.Elements[i].Filter != nil {
			return true
		}
	}
	return false
}

func (p *Path) String() string {
	var b strings.Builder
	if p.URN != "" {
		b.WriteString(p.URN)
		b.WriteByte(':')
	}
	for i, e := range p.Elements {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(e.Name)
		if e.Filter != nil {
			b.WriteByte('[')
			b.WriteString(e.Filter.String())
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Equal compares paths with case-insensitive URNs and element names
// and structurally equal filters.
func Equal(a, b *Path) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !strings.EqualFold(a.URN, b.URN) {
		return false
	}
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if !strings.EqualFold(a.Elements[i].Name, b.Elements[i].Name) {
			return false
		}
		if !filter.Equal(a.Elements[i].Filter, b.Elements[i].Filter) {
			return false
		}
	}
	return true
}
