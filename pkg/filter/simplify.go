package filter

import "github.com/kkm-horikawa/sqlpretty/pkg/token"

// Ellipsis replaces the select-column region in simplified output.
const Ellipsis = "•••"

// Simplify collapses the column list between SELECT and the next
// clause to an ellipsis, keeping the query's shape readable without
// the column noise.
type Simplify struct{}

func (*Simplify) Name() string { return "simplify" }

func (*Simplify) Apply(doc *Doc) error {
	var out []Line
	skipping := false
	for _, l := range doc.Lines {
		if skipping {
			if l.Lead == "" {
				continue
			}
			skipping = false
		}
		if l.Lead == "select" {
			kw := l.Frags[0]
			out = append(out, Line{
				Indent: l.Indent,
				Lead:   l.Lead,
				Frags:  []Frag{kw, {Kind: token.Unknown, Text: Ellipsis}},
			})
			skipping = true
			continue
		}
		out = append(out, l)
	}
	doc.Lines = out
	return nil
}
