package resolve

import (
	"errors"
	"testing"

	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/path"
)

const doc = `{
  "userName": "bjensen",
  "name": {"familyName": "Jensen"},
  "emails": [
    {"type": "work", "value": "a@x.com"},
    {"type": "home", "value": "b@x.com"},
    {"type": "work", "value": "c@x.com"}
  ],
  "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User": {
    "department": "eng"
  }
}`

func mustPath(t *testing.T, s string) *path.Path {
	t.Helper()
	p, err := path.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTargetsRoot(t *testing.T) {
	root := ir.MustFromJSON(doc)
	ts, err := Targets(path.Root(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 || ts[0].Node != root || ts[0].Container != nil {
		t.Fatalf("root targets: %+v", ts)
	}
}

func TestTargetsField(t *testing.T) {
	root := ir.MustFromJSON(doc)
	ts, err := Targets(mustPath(t, "USERNAME"), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 {
		t.Fatalf("got %d targets", len(ts))
	}
	// stored key case is preserved in the handle
	if ts[0].Field != "userName" || ts[0].Node.String != "bjensen" {
		t.Errorf("target: %+v", ts[0])
	}
	if ts[0].Container != root {
		t.Error("container is not the root object")
	}
}

func TestTargetsAbsent(t *testing.T) {
	root := ir.MustFromJSON(doc)
	ts, err := Targets(mustPath(t, "name.missing.deeper"), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 || ts[0].Node != nil {
		t.Fatalf("targets: %+v", ts)
	}
}

func TestTargetsFiltered(t *testing.T) {
	root := ir.MustFromJSON(doc)
	ts, err := Targets(mustPath(t, `emails[type eq "work"]`), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 2 {
		t.Fatalf("got %d targets, want 2", len(ts))
	}
	if ts[0].Index != 0 || ts[1].Index != 2 {
		t.Errorf("indexes %d,%d, want 0,2", ts[0].Index, ts[1].Index)
	}
	ts, err = Targets(mustPath(t, `emails[type eq "work"].value`), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 2 {
		t.Fatalf("got %d targets, want 2", len(ts))
	}
	if ts[0].Node.String != "a@x.com" || ts[1].Node.String != "c@x.com" {
		t.Errorf("values %q,%q", ts[0].Node.String, ts[1].Node.String)
	}
	ts, err = Targets(mustPath(t, `emails[type eq "none"]`), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 0 {
		t.Errorf("zero-match filter yielded %d targets", len(ts))
	}
}

func TestTargetsExtension(t *testing.T) {
	root := ir.MustFromJSON(doc)
	urn := "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
	ts, err := Targets(mustPath(t, urn+":department"), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 || ts[0].Node.String != "eng" {
		t.Fatalf("targets: %+v", ts)
	}
	ts, err = Targets(mustPath(t, urn+":"), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 || ts[0].Node == nil || ts[0].Container != root {
		t.Fatalf("extension root targets: %+v", ts)
	}
}

func TestTargetsDoesNotMutate(t *testing.T) {
	root := ir.MustFromJSON(doc)
	want := ir.MustFromJSON(doc)
	for _, s := range []string{"a.b.c", `emails[type eq "x"].value`, "urn:none:x:y"} {
		if _, err := Targets(mustPath(t, s), root); err != nil {
			t.Fatal(err)
		}
	}
	if !ir.Equal(root, want) {
		t.Error("Targets mutated the tree")
	}
}

func TestEnsureCreatesIntermediates(t *testing.T) {
	root := ir.MustFromJSON(`{}`)
	tgt, err := Ensure(mustPath(t, "name.familyName"), root)
	if err != nil {
		t.Fatal(err)
	}
	if tgt.Node != nil {
		t.Error("absent leaf should have nil Node")
	}
	tgt.Container.Set(tgt.Field, ir.FromString("Jensen"))
	if !ir.Equal(root, ir.MustFromJSON(`{"name":{"familyName":"Jensen"}}`)) {
		d, _ := root.MarshalJSON()
		t.Errorf("got %s", d)
	}
}

func TestEnsureExtension(t *testing.T) {
	root := ir.MustFromJSON(`{}`)
	tgt, err := Ensure(mustPath(t, "urn:x:y:dept"), root)
	if err != nil {
		t.Fatal(err)
	}
	tgt.Container.Set(tgt.Field, ir.FromString("eng"))
	if !ir.Equal(root, ir.MustFromJSON(`{"urn:x:y":{"dept":"eng"}}`)) {
		d, _ := root.MarshalJSON()
		t.Errorf("got %s", d)
	}
}

func TestEnsureRejectsFiltered(t *testing.T) {
	root := ir.MustFromJSON(doc)
	if _, err := Ensure(mustPath(t, `emails[type eq "work"].value`), root); !errors.Is(err, ErrFilteredPath) {
		t.Errorf("got %v, want ErrFilteredPath", err)
	}
}

func TestEnsureNotComplex(t *testing.T) {
	root := ir.MustFromJSON(`{"userName":"bjensen"}`)
	if _, err := Ensure(mustPath(t, "userName.sub"), root); !errors.Is(err, ErrNotComplex) {
		t.Errorf("got %v, want ErrNotComplex", err)
	}
}

func TestFirstArray(t *testing.T) {
	root := ir.MustFromJSON(doc)
	arr, err := FirstArray(mustPath(t, `emails[type eq "work"].value`), root, false)
	if err != nil {
		t.Fatal(err)
	}
	if arr == nil || len(arr.Values) != 3 {
		t.Fatalf("arr: %v", arr)
	}
	if arr, err = FirstArray(mustPath(t, `groups[value eq "g"]`), root, false); err != nil || arr != nil {
		t.Errorf("absent no-create: %v, %v", arr, err)
	}
	arr, err = FirstArray(mustPath(t, `groups[value eq "g"]`), root, true)
	if err != nil || arr == nil || arr.Type != ir.ArrayType {
		t.Fatalf("create: %v, %v", arr, err)
	}
	if _, err := FirstArray(mustPath(t, `userName[x eq 1]`), root, false); !errors.Is(err, ErrNotMultiValued) {
		t.Errorf("got %v, want ErrNotMultiValued", err)
	}
}
