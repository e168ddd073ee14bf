package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scimwire/go-scim/debug"
	"github.com/scimwire/go-scim/ir"
	"github.com/scimwire/go-scim/token"
)

// Parse parses a SCIM filter expression. Errors wrap ErrInvalidFilter
// and carry the position of the offending input; no partial AST is
// ever returned.
func Parse(s string, opts ...token.Option) (*Filter, error) {
	toks, err := token.Tokenize([]byte(s), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	p := &parser{toks: toks}
	f, err := p.or()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if t := p.peek(); t != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter,
			token.UnexpectedErr(fmt.Sprintf("trailing %q", t.String()), t.Pos))
	}
	if debug.Parse() {
		debug.Logf("parse filter %q -> %s\n", s, f)
	}
	return f, nil
}

// ParseExpr parses a single or-expression from a token stream,
// starting at pos, and returns the next unconsumed position. The path
// parser uses it for embedded value selectors; errors are not yet
// wrapped in ErrInvalidFilter.
func ParseExpr(toks []token.Token, pos int) (*Filter, int, error) {
	p := &parser{toks: toks, pos: pos}
	f, err := p.or()
	if err != nil {
		return nil, 0, err
	}
	return f, p.pos, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return &p.toks[p.pos]
}

func (p *parser) next() *token.Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ token.Type, what string) (*token.Token, error) {
	t := p.peek()
	if t == nil {
		return nil, fmt.Errorf("expected %s at end of input", what)
	}
	if t.Type != typ {
		return nil, token.ExpectedErr(what, t.Pos)
	}
	p.pos++
	return t, nil
}

func (p *parser) or() (*Filter, error) {
	f, err := p.and()
	if err != nil {
		return nil, err
	}
	children := []*Filter{f}
	for t := p.peek(); t != nil && t.Type == token.TOr; t = p.peek() {
		p.pos++
		g, err := p.and()
		if err != nil {
			return nil, err
		}
		children = append(children, g)
	}
	if len(children) == 1 {
		return f, nil
	}
	return &Filter{Op: OpOr, Children: children}, nil
}

func (p *parser) and() (*Filter, error) {
	f, err := p.primary()
	if err != nil {
		return nil, err
	}
	children := []*Filter{f}
	for t := p.peek(); t != nil && t.Type == token.TAnd; t = p.peek() {
		p.pos++
		g, err := p.primary()
		if err != nil {
			return nil, err
		}
		children = append(children, g)
	}
	if len(children) == 1 {
		return f, nil
	}
	return &Filter{Op: OpAnd, Children: children}, nil
}

func (p *parser) primary() (*Filter, error) {
	t := p.peek()
	if t == nil {
		return nil, errors.New("expected filter expression at end of input")
	}
	switch {
	// "not" negates only ahead of a parenthesized group; elsewhere it
	// is an ordinary attribute name, like any other keyword-shaped word
	case t.Type == token.TNot && p.peekType(1) == token.TLParen:
		p.pos += 2
		f, err := p.or()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRParen, "')'"); err != nil {
			return nil, err
		}
		return Not(f), nil
	case t.Type == token.TLParen:
		p.pos++
		f, err := p.or()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRParen, "')'"); err != nil {
			return nil, err
		}
		return f, nil
	case t.IsWord():
		p.pos++
		attr, err := ParseAttrPath(t.String())
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, t.Pos)
		}
		if len(attr.Names) == 0 {
			return nil, token.ExpectedErr("attribute name after URN", t.Pos)
		}
		return p.predicate(attr)
	default:
		return nil, token.UnexpectedErr(fmt.Sprintf("%q", t.String()), t.Pos)
	}
}

// peekType returns the type of the token n positions ahead, or -1 past
// the end of the stream.
func (p *parser) peekType(n int) token.Type {
	if p.pos+n >= len(p.toks) {
		return token.Type(-1)
	}
	return p.toks[p.pos+n].Type
}

// predicate parses what follows an attribute path: a bracketed value
// filter, pr, or a comparison operator and value.
func (p *parser) predicate(attr *AttrPath) (*Filter, error) {
	t := p.peek()
	if t == nil {
		return nil, errors.New("expected operator at end of input")
	}
	switch t.Type {
	case token.TLBracket:
		p.pos++
		sub, err := p.or()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRBracket, "']'"); err != nil {
			return nil, err
		}
		return HasComplexValue(attr, sub), nil
	case token.TPresent:
		p.pos++
		return Pr(attr), nil
	case token.TCompareOp:
		p.pos++
		op := compareOps[t.Keyword()]
		value, err := p.compValue()
		if err != nil {
			return nil, err
		}
		return compare(op, attr, value), nil
	default:
		return nil, token.ExpectedErr("operator after attribute path", t.Pos)
	}
}

func (p *parser) compValue() (*ir.Node, error) {
	t := p.next()
	if t == nil {
		return nil, errors.New("expected comparison value at end of input")
	}
	switch t.Type {
	case token.TString:
		return ir.FromString(t.String()), nil
	case token.TNumber:
		return ir.FromNumber(t.String()), nil
	case token.TTrue:
		return ir.FromBool(true), nil
	case token.TFalse:
		return ir.FromBool(false), nil
	case token.TNull:
		return ir.Null(), nil
	default:
		return nil, token.ExpectedErr("comparison value", t.Pos)
	}
}

// ParseAttrPath parses a dotted, optionally URN-qualified attribute
// reference such as
// urn:ietf:params:scim:schemas:core:2.0:User:name.familyName.
// A trailing-colon URN with no attribute yields a bare-URN path.
func ParseAttrPath(s string) (*AttrPath, error) {
	urn, rest := s, ""
	ci := strings.LastIndexByte(s, ':')
	if ci < 0 {
		urn, rest = "", s
	} else {
		if !strings.HasPrefix(strings.ToLower(s), "urn:") || ci <= 3 {
			return nil, fmt.Errorf("invalid URN in attribute path %q", s)
		}
		urn, rest = s[:ci], s[ci+1:]
	}
	ap := &AttrPath{URN: urn}
	if rest == "" {
		if urn == "" {
			return nil, errors.New("empty attribute path")
		}
		return ap, nil
	}
	for _, name := range strings.Split(rest, ".") {
		if !validName(name) {
			return nil, fmt.Errorf("invalid attribute name %q in %q", name, s)
		}
		ap.Names = append(ap.Names, name)
	}
	return ap, nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	return s[0] != '-'
}
