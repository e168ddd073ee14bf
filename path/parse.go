package path

import (
	"fmt"

	"github.com/scimwire/go-scim/debug"
	"github.com/scimwire/go-scim/filter"
	"github.com/scimwire/go-scim/token"
)

// Parse parses a SCIM attribute path. The empty string is the root
// path; a bare URN such as "urn:x:" denotes the whole extension
// object. Errors wrap ErrInvalidPath; no partial path is returned.
func Parse(s string, opts ...token.Option) (*Path, error) {
	if s == "" {
		return Root(), nil
	}
	toks, err := token.Tokenize([]byte(s), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	p, pos, err := parseToks(toks, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if pos != len(toks) {
		t := &toks[pos]
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath,
			token.UnexpectedErr(fmt.Sprintf("trailing %q", t.String()), t.Pos))
	}
	if debug.Parse() {
		debug.Logf("parse path %q -> %s\n", s, p)
	}
	return p, nil
}

func parseToks(toks []token.Token, pos int) (*Path, int, error) {
	if pos >= len(toks) {
		return nil, 0, fmt.Errorf("expected attribute path at end of input")
	}
	t := &toks[pos]
	// keyword-shaped words are ordinary attribute names here
	if !t.IsWord() {
		return nil, 0, token.ExpectedErr("attribute path", t.Pos)
	}
	ap, err := filter.ParseAttrPath(t.String())
	if err != nil {
		return nil, 0, fmt.Errorf("%w at %s", err, t.Pos)
	}
	pos++
	res := &Path{URN: ap.URN}
	for _, name := range ap.Names {
		res.Elements = append(res.Elements, Element{Name: name})
	}
	for pos < len(toks) {
		switch toks[pos].Type {
		case token.TLBracket:
			if len(res.Elements) == 0 {
				return nil, 0, token.UnexpectedErr("value filter on bare URN", toks[pos].Pos)
			}
			last := &res.Elements[len(res.Elements)-1]
			if last.Filter != nil {
				return nil, 0, token.UnexpectedErr("second value filter on element", toks[pos].Pos)
			}
			pos++
			sub, next, err := filter.ParseExpr(toks, pos)
			if err != nil {
				return nil, 0, err
			}
			pos = next
			if pos >= len(toks) || toks[pos].Type != token.TRBracket {
				var at *token.Pos
				if pos < len(toks) {
					at = toks[pos].Pos
				} else {
					at = toks[len(toks)-1].Pos
				}
				return nil, 0, token.ExpectedErr("']'", at)
			}
			pos++
			last.Filter = sub
		case token.TDot:
			pos++
			if pos >= len(toks) || !toks[pos].IsWord() {
				return nil, 0, token.ExpectedErr("attribute name after '.'", toks[pos-1].Pos)
			}
			word := toks[pos].String()
			more, err := filter.ParseAttrPath(word)
			if err != nil {
				return nil, 0, fmt.Errorf("%w at %s", err, toks[pos].Pos)
			}
			if more.URN != "" {
				return nil, 0, token.UnexpectedErr("URN after '.'", toks[pos].Pos)
			}
			for _, name := range more.Names {
				res.Elements = append(res.Elements, Element{Name: name})
			}
			pos++
		default:
			return res, pos, nil
		}
	}
	return res, pos, nil
}

// ParseAttribute parses a path that must consist of exactly one
// unfiltered element, optionally URN-qualified. Call sites use it when
// a single top-level attribute is statically required; anything with
// sub-attributes or a value filter is rejected.
func ParseAttribute(s string, opts ...token.Option) (*Path, error) {
	p, err := Parse(s, opts...)
	if err != nil {
		return nil, err
	}
	if len(p.Elements) != 1 {
		return nil, fmt.Errorf("%w: %q is not a single attribute", ErrInvalidPath, s)
	}
	if p.Elements[0].Filter != nil {
		return nil, fmt.Errorf("%w: %q carries a value filter", ErrInvalidPath, s)
	}
	return p, nil
}
