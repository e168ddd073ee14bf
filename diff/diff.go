// Package diff renders line diffs between two document trees, for
// showing what a patch changed.
package diff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/scimwire/go-scim/encode"
	"github.com/scimwire/go-scim/ir"
)

// Render returns a unified-style line diff between the pretty-printed
// forms of from and to. Unchanged lines are prefixed with two spaces,
// removals with "- ", additions with "+ ". Equal trees render as "".
func Render(from, to *ir.Node) string {
	if ir.Equal(from, to) {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(text(from), text(to))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		default:
			prefix = "  "
		}
		for _, ln := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(ln)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func text(n *ir.Node) string {
	return encode.MustString(n) + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
