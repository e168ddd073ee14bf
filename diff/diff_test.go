package diff

import (
	"strings"
	"testing"

	"github.com/scimwire/go-scim/ir"
)

func TestRenderEqual(t *testing.T) {
	a := ir.MustFromJSON(`{"userName":"bjensen"}`)
	b := ir.MustFromJSON(`{"USERNAME":"bjensen"}`)
	if got := Render(a, b); got != "" {
		t.Errorf("equal trees diff:\n%s", got)
	}
}

func TestRenderChange(t *testing.T) {
	a := ir.MustFromJSON(`{"userName":"bjensen","active":true}`)
	b := ir.MustFromJSON(`{"userName":"babs","active":true}`)
	got := Render(a, b)
	if !strings.Contains(got, `-   "userName": "bjensen",`) {
		t.Errorf("missing removal line:\n%s", got)
	}
	if !strings.Contains(got, `+   "userName": "babs",`) {
		t.Errorf("missing addition line:\n%s", got)
	}
	if !strings.Contains(got, `    "active": true`) {
		t.Errorf("missing unchanged line:\n%s", got)
	}
}

func TestRenderAddedField(t *testing.T) {
	a := ir.MustFromJSON(`{"a":1}`)
	b := ir.MustFromJSON(`{"a":1,"b":2}`)
	got := Render(a, b)
	if !strings.Contains(got, `+   "b": 2`) {
		t.Errorf("missing added field:\n%s", got)
	}
}
