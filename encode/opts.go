package encode

type EncodeOption func(*EncState)

// Indent sets the per-level indentation width.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Depth sets the starting indentation depth.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// Compact renders on one line with no whitespace, matching the wire
// form.
func Compact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}

// EncodeColors enables terminal coloring. A nil Colors is a no-op.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c != nil {
			es.Color = c.Color
		}
	}
}
