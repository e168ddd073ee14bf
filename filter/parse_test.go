package filter

import (
	"errors"
	"testing"

	"github.com/scimwire/go-scim/ir"
)

func mustAttr(t *testing.T, s string) *AttrPath {
	t.Helper()
	ap, err := ParseAttrPath(s)
	if err != nil {
		t.Fatal(err)
	}
	return ap
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want func(t *testing.T) *Filter
	}{
		{
			"equality",
			`userName eq "bjensen"`,
			func(t *testing.T) *Filter {
				return Eq(mustAttr(t, "userName"), ir.FromString("bjensen"))
			},
		},
		{
			"case-insensitive operator",
			`userName EQ "bjensen"`,
			func(t *testing.T) *Filter {
				return Eq(mustAttr(t, "userName"), ir.FromString("bjensen"))
			},
		},
		{
			"sub-attribute",
			`name.familyName co "O'Malley"`,
			func(t *testing.T) *Filter {
				return Co(mustAttr(t, "name.familyName"), ir.FromString("O'Malley"))
			},
		},
		{
			"urn qualified",
			`urn:ietf:params:scim:schemas:core:2.0:User:userName sw "J"`,
			func(t *testing.T) *Filter {
				return Sw(mustAttr(t, "urn:ietf:params:scim:schemas:core:2.0:User:userName"),
					ir.FromString("J"))
			},
		},
		{
			"present",
			`title pr`,
			func(t *testing.T) *Filter { return Pr(mustAttr(t, "title")) },
		},
		{
			"number value",
			`meta.version gt 2`,
			func(t *testing.T) *Filter {
				return Gt(mustAttr(t, "meta.version"), ir.FromNumber("2"))
			},
		},
		{
			"boolean value",
			`active eq true`,
			func(t *testing.T) *Filter {
				return Eq(mustAttr(t, "active"), ir.FromBool(true))
			},
		},
		{
			"null value",
			`nickName eq null`,
			func(t *testing.T) *Filter {
				return Eq(mustAttr(t, "nickName"), ir.Null())
			},
		},
		{
			"precedence and over or",
			`title pr and email pr or userType pr`,
			func(t *testing.T) *Filter {
				return Or(
					And(Pr(mustAttr(t, "title")), Pr(mustAttr(t, "email"))),
					Pr(mustAttr(t, "userType")))
			},
		},
		{
			"parens override",
			`title pr and (email pr or userType pr)`,
			func(t *testing.T) *Filter {
				return And(
					Pr(mustAttr(t, "title")),
					Or(Pr(mustAttr(t, "email")), Pr(mustAttr(t, "userType"))))
			},
		},
		{
			"not",
			`not (userName eq "x")`,
			func(t *testing.T) *Filter {
				return Not(Eq(mustAttr(t, "userName"), ir.FromString("x")))
			},
		},
		{
			"value filter",
			`emails[type eq "work" and value co "@example.com"]`,
			func(t *testing.T) *Filter {
				return HasComplexValue(mustAttr(t, "emails"),
					And(Eq(mustAttr(t, "type"), ir.FromString("work")),
						Co(mustAttr(t, "value"), ir.FromString("@example.com"))))
			},
		},
		{
			"nested value filter",
			`a[b[c pr] or d pr]`,
			func(t *testing.T) *Filter {
				return HasComplexValue(mustAttr(t, "a"),
					Or(HasComplexValue(mustAttr(t, "b"), Pr(mustAttr(t, "c"))),
						Pr(mustAttr(t, "d"))))
			},
		},
		{
			"n-ary and",
			`a pr and b pr and c pr`,
			func(t *testing.T) *Filter {
				return And(Pr(mustAttr(t, "a")), Pr(mustAttr(t, "b")), Pr(mustAttr(t, "c")))
			},
		},
		{
			"attribute named null",
			`null eq "x"`,
			func(t *testing.T) *Filter {
				return Eq(mustAttr(t, "null"), ir.FromString("x"))
			},
		},
		{
			"attribute named pr",
			`pr pr`,
			func(t *testing.T) *Filter { return Pr(mustAttr(t, "pr")) },
		},
		{
			"attribute named not",
			`not pr and not (true eq false)`,
			func(t *testing.T) *Filter {
				return And(Pr(mustAttr(t, "not")),
					Not(Eq(mustAttr(t, "true"), ir.FromBool(false))))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			want := tt.want(t)
			if !Equal(got, want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"dangling and", `a pr and`},
		{"dangling or", `a pr or`},
		{"missing operand", `userName eq`},
		{"unknown operator", `userName zz "x"`},
		{"unbalanced paren", `(a pr`},
		{"unbalanced bracket", `emails[type eq "work"`},
		{"trailing tokens", `a pr b pr`},
		{"trailing dot", `emails[type pr].value`},
		{"bare urn", `urn:ietf:params:scim:schemas:core:2.0:User: pr`},
		{"operator without attr", `eq 5`},
		{"not without parens", `not a pr`},
		{"double dot", `a..b pr`},
		{"unterminated string", `a eq "x`},
		{"bad escape", `a eq "\q"`},
		{"comma", `a pr, b pr`},
		{"operator abuts string", `userName eq"bjensen"`},
		{"keyword abuts group", `a pr and(b pr)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.in, f)
			}
			if !errors.Is(err, ErrInvalidFilter) {
				t.Errorf("error %v does not wrap ErrInvalidFilter", err)
			}
			if f != nil {
				t.Error("partial AST returned with error")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	filters := []string{
		`userName eq "bjensen"`,
		`name.familyName co "O'Malley"`,
		`title pr and email pr or userType pr`,
		`title pr and (email pr or userType pr)`,
		`not (a pr and b eq 3.5)`,
		`emails[type eq "work" and value co "@x.com"] or ims[type eq "xmpp"]`,
		`urn:ietf:params:scim:schemas:extension:enterprise:2.0:User:department eq "eng"`,
		`a eq "quote \" backslash \\ tab \t"`,
		`active eq false and deleted eq null`,
	}
	for _, in := range filters {
		t.Run(in, func(t *testing.T) {
			f1, err := Parse(in)
			if err != nil {
				t.Fatal(err)
			}
			f2, err := Parse(f1.String())
			if err != nil {
				t.Fatalf("rendered filter %q does not parse: %v", f1.String(), err)
			}
			if !Equal(f1, f2) {
				t.Errorf("round trip changed structure:\n first  %s\n second %s", f1, f2)
			}
		})
	}
}

func TestRenderBuiltFilters(t *testing.T) {
	// builder-constructed nesting keeps grouping when rendered
	f := And(
		And(Pr(NewAttrPath("", "a")), Pr(NewAttrPath("", "b"))),
		Pr(NewAttrPath("", "c")))
	if got := f.String(); got != "(a pr and b pr) and c pr" {
		t.Errorf("got %q", got)
	}
	back, err := Parse(f.String())
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(f, back) {
		t.Error("round trip of nested and changed structure")
	}
}

func TestParseAttrPath(t *testing.T) {
	ap, err := ParseAttrPath("urn:x:y:")
	if err != nil {
		t.Fatal(err)
	}
	if ap.URN != "urn:x:y" || len(ap.Names) != 0 {
		t.Errorf("bare urn parse: %+v", ap)
	}
	if _, err := ParseAttrPath("bad:path"); err == nil {
		t.Error("expected error for non-urn colon path")
	}
	if _, err := ParseAttrPath(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestEqualNameCase(t *testing.T) {
	a, err := Parse(`userName eq "x"`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(`USERNAME eq "x"`)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Error("attribute names should compare case-insensitively")
	}
	c, err := Parse(`userName eq "X"`)
	if err != nil {
		t.Fatal(err)
	}
	if Equal(a, c) {
		t.Error("values should compare case-sensitively in the AST")
	}
}
