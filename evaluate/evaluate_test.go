package evaluate

import (
	"testing"

	"github.com/scimwire/go-scim/filter"
	"github.com/scimwire/go-scim/ir"
)

const userDoc = `{
  "schemas": ["urn:ietf:params:scim:schemas:core:2.0:User"],
  "id": "2819c223",
  "userName": "bjensen",
  "active": true,
  "nullAttr": null,
  "emptyArr": [],
  "loginCount": 7,
  "ratio": 2.5,
  "meta": {
    "created": "2010-01-23T04:56:22Z",
    "lastModified": "2011-05-13T04:42:34Z"
  },
  "emails": [
    {"type": "work", "value": "bjensen@example.com", "primary": true},
    {"type": "home", "value": "babs@jensen.org"}
  ],
  "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User": {
    "department": "Tour Operations",
    "manager": {"displayName": "John Smith"}
  }
}`

func evalStr(t *testing.T, f string, doc *ir.Node) bool {
	t.Helper()
	parsed, err := filter.Parse(f)
	if err != nil {
		t.Fatalf("Parse(%q): %v", f, err)
	}
	return Filter(parsed, doc)
}

func TestFilter(t *testing.T) {
	doc := ir.MustFromJSON(userDoc)
	tests := []struct {
		in   string
		want bool
	}{
		{`userName eq "bjensen"`, true},
		{`userName eq "BJENSEN"`, true},
		{`userName eq "other"`, false},
		{`userName ne "other"`, true},
		{`userName ne "bjensen"`, false},
		{`userName co "jens"`, true},
		{`userName sw "bj"`, true},
		{`userName sw "BJ"`, true},
		{`userName ew "sen"`, true},
		{`userName ew "xx"`, false},
		{`active eq true`, true},
		{`active ne false`, true},
		{`loginCount gt 5`, true},
		{`loginCount gt 7`, false},
		{`loginCount ge 7`, true},
		{`loginCount lt 7.5`, true},
		{`ratio le 2.5`, true},
		{`loginCount eq 7.0`, true},
		{`userName gt 5`, false},
		{`name.familyName pr`, false},
		{`meta.created pr`, true},
		{`meta.created gt "2010-01-01T00:00:00Z"`, true},
		{`meta.created lt "2010-01-01T00:00:00Z"`, false},
		{`meta.created gt "2010-01-23T01:56:22-03:00"`, false},
		{`meta.created ge "2010-01-23T04:56:22.000Z"`, true},
		{`userName pr and active eq true`, true},
		{`userName pr and active eq false`, false},
		{`userName eq "no" or active eq true`, true},
		{`not (userName eq "no")`, true},
		{`emails[type eq "work"]`, true},
		{`emails[type eq "work" and primary eq true]`, true},
		{`emails[type eq "home" and primary eq true]`, false},
		{`emails[value co "example.com"]`, true},
		{`emails.type eq "work"`, false},
		{`userName[type eq "work"]`, false},
		{`urn:ietf:params:scim:schemas:extension:enterprise:2.0:User:department eq "tour operations"`, true},
		{`urn:ietf:params:scim:schemas:extension:enterprise:2.0:User:manager.displayName co "Smith"`, true},
		{`urn:missing:ext:attr pr`, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := evalStr(t, tt.in, doc); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// a leaf comparison over a multi-valued attribute matches when any
// element matches
func TestQuantifier(t *testing.T) {
	doc := ir.MustFromJSON(`{"attr":["a","b"],"schemas":["urn:one","urn:two"]}`)
	tests := []struct {
		in   string
		want bool
	}{
		{`attr eq "B"`, true},
		{`attr eq "c"`, false},
		{`attr sw "a"`, true},
		{`schemas eq "urn:two"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := evalStr(t, tt.in, doc); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// missing, null, and empty-array values behave identically under every
// leaf operator
func TestAbsenceUniformity(t *testing.T) {
	doc := ir.MustFromJSON(`{"null": null, "empty": []}`)
	for _, attr := range []string{"null", "empty", "missing"} {
		for expr, want := range map[string]bool{
			attr + ` pr`:       false,
			attr + ` eq null`:  true,
			attr + ` ne null`:  false,
			attr + ` eq "x"`:   false,
			attr + ` ne "x"`:   false,
			attr + ` co "x"`:   false,
			attr + ` gt 1`:     false,
			attr + ` le "zzz"`: false,
		} {
			if got := evalStr(t, expr, doc); got != want {
				t.Errorf("%s = %v, want %v", expr, got, want)
			}
		}
	}
}

func TestShortCircuit(t *testing.T) {
	doc := ir.MustFromJSON(`{"a": 1}`)
	// or stops at the first true disjunct, and at the first false
	// conjunct; both sides here are well-formed so this just pins the
	// left-to-right truth table
	if !evalStr(t, `a eq 1 or b eq "never"`, doc) {
		t.Error("or")
	}
	if evalStr(t, `a eq 2 and a eq 1`, doc) {
		t.Error("and")
	}
}

func TestResolveAttr(t *testing.T) {
	doc := ir.MustFromJSON(userDoc)
	ap, err := filter.ParseAttrPath("meta.created")
	if err != nil {
		t.Fatal(err)
	}
	if v := ResolveAttr(ap, doc); v == nil || v.String != "2010-01-23T04:56:22Z" {
		t.Errorf("ResolveAttr = %v", v)
	}
	ap, err = filter.ParseAttrPath("emails.value")
	if err != nil {
		t.Fatal(err)
	}
	// dotted resolution does not descend into arrays
	if v := ResolveAttr(ap, doc); v != nil {
		t.Errorf("ResolveAttr through array = %v", v)
	}
}

func TestParseInstant(t *testing.T) {
	for _, s := range []string{
		"2011-05-13T04:42:34Z",
		"2011-05-13T04:42:34.123Z",
		"2011-05-13T04:42:34",
		"2011-05-13T04:42:34-07:00",
	} {
		if _, err := ParseInstant(s); err != nil {
			t.Errorf("ParseInstant(%q): %v", s, err)
		}
	}
	if _, err := ParseInstant("not a date"); err == nil {
		t.Error("expected error")
	}
}
