package filter

import (
	"github.com/kkm-horikawa/sqlpretty/pkg/group"
	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

const (
	// indentWidth is spaces per nesting level.
	indentWidth = 2

	// softWidth is the estimated line width beyond which a list wraps
	// to one item per line.
	softWidth = 60
)

// Indent lays the grouped tree out as lines: one line per clause,
// parenthesized lists inline while short and one item per line once
// they outgrow the soft width. Original whitespace tokens are dropped;
// spacing is reconstructed at render time.
type Indent struct{}

func (*Indent) Name() string { return "indent" }

func (*Indent) Apply(doc *Doc) error {
	w := &lineWriter{}
	for _, clause := range doc.Root.Children {
		w.newLine(0, clauseLead(clause))
		w.emitChildren(clause, 0)
	}
	doc.Lines = w.finish()
	return nil
}

// clauseLead returns the lowercased leading keyword of a clause.
func clauseLead(clause *group.Node) string {
	for _, c := range clause.Children {
		if c.Kind != group.Leaf {
			return ""
		}
		if c.Tok.Kind == token.Whitespace {
			continue
		}
		if c.Tok.Kind == token.Keyword {
			return lower(c.Tok.Text)
		}
		return ""
	}
	return ""
}

type lineWriter struct {
	lines []Line
	cur   *Line
}

func (w *lineWriter) newLine(indent int, lead string) {
	w.lines = append(w.lines, Line{Indent: indent, Lead: lead})
	w.cur = &w.lines[len(w.lines)-1]
}

func (w *lineWriter) frag(kind token.Kind, text string) {
	w.cur.Frags = append(w.cur.Frags, Frag{Kind: kind, Text: text})
}

// finish drops lines that ended up empty.
func (w *lineWriter) finish() []Line {
	out := w.lines[:0]
	for _, l := range w.lines {
		if len(l.Frags) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// emitChildren renders the children of a branch node onto the current
// line, breaking out nested lists when they are too wide.
func (w *lineWriter) emitChildren(n *group.Node, indent int) {
	for _, c := range n.Children {
		w.emitNode(c, indent)
	}
}

func (w *lineWriter) emitNode(n *group.Node, indent int) {
	switch n.Kind {
	case group.Leaf:
		if n.Tok.Kind == token.Whitespace {
			return
		}
		w.frag(n.Tok.Kind, n.Tok.Text)

	case group.Paren:
		if estimateWidth(n) > softWidth {
			w.emitWrappedParen(n, indent)
			return
		}
		w.emitChildren(n, indent)

	case group.List, group.Item, group.Clause, group.Statement:
		w.emitChildren(n, indent)
	}
}

// emitWrappedParen renders a wide parenthesized group with one list
// item per line.
func (w *lineWriter) emitWrappedParen(n *group.Node, indent int) {
	for _, c := range n.Children {
		switch c.Kind {
		case group.Leaf:
			if c.Tok.Kind == token.Whitespace {
				continue
			}
			if c.Tok.IsPunct(")") {
				w.newLine(indent, "")
			}
			w.frag(c.Tok.Kind, c.Tok.Text)
		case group.List:
			for _, el := range c.Children {
				if el.Kind == group.Item {
					w.newLine(indent+1, "")
					w.emitChildren(el, indent+1)
					continue
				}
				// comma separator stays on the item's line
				w.emitNode(el, indent+1)
			}
		default:
			w.emitNode(c, indent)
		}
	}
}

// estimateWidth approximates the rendered width of a node from its
// source span. Dropped whitespace makes this an overestimate, which
// only errs toward wrapping sooner.
func estimateWidth(n *group.Node) int {
	return n.Span().Len()
}

func lower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
