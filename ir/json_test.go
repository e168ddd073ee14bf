package ir

import (
	"testing"
)

func TestFromJSONPreservesOrder(t *testing.T) {
	in := `{"z":1,"a":{"m":true,"b":null},"list":[1,"two",3.5]}`
	doc, err := FromJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	d, err := doc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != in {
		t.Errorf("round trip:\n in  %s\n out %s", in, d)
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a":1} extra`} {
		if _, err := FromJSON([]byte(in)); err == nil {
			t.Errorf("FromJSON(%q): expected error", in)
		}
	}
}

func TestFromAny(t *testing.T) {
	node, err := FromAny(map[string]any{
		"name":   "test",
		"count":  3,
		"ratio":  0.5,
		"flags":  []any{true, nil},
		"nested": map[string]any{"a": int64(1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := MustFromJSON(`{"name":"test","count":3,"ratio":0.5,"flags":[true,null],"nested":{"a":1}}`)
	if !Equal(node, want) {
		d, _ := node.MarshalJSON()
		t.Errorf("got %s", d)
	}
}

func TestToAnyRoundTrip(t *testing.T) {
	doc := MustFromJSON(`{"a":[1,2.5,"x",null,true],"b":{"c":"d"}}`)
	back, err := FromAny(ToAny(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(doc, back) {
		t.Error("ToAny/FromAny round trip changed the tree")
	}
}

func TestNumberTextPreserved(t *testing.T) {
	doc := MustFromJSON(`{"big":123456789012345678901234567890,"exp":1e3}`)
	d, _ := doc.MarshalJSON()
	if string(d) != `{"big":123456789012345678901234567890,"exp":1e3}` {
		t.Errorf("got %s", d)
	}
}
