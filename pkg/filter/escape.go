package filter

import (
	"fmt"
	"html"
	"strings"

	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

// Escape is the terminal filter. It renders lines to Output, escaping
// every fragment for the display context: HTML entity escaping with
// keywords wrapped in <strong> when doc.HTML is set, otherwise plain
// text with control characters made visible.
type Escape struct{}

func (*Escape) Name() string { return "escape" }

func (*Escape) Apply(doc *Doc) error {
	var b strings.Builder
	for li, line := range doc.Lines {
		if li > 0 {
			b.WriteByte('\n')
		}
		for i := 0; i < line.Indent*indentWidth; i++ {
			b.WriteByte(' ')
		}
		var prev *Frag
		for fi := range line.Frags {
			f := &line.Frags[fi]
			if prev != nil && needSpace(prev, f) {
				b.WriteByte(' ')
			}
			writeFrag(&b, f, doc.HTML)
			prev = f
		}
	}
	doc.Output = b.String()
	return nil
}

func writeFrag(b *strings.Builder, f *Frag, htmlMode bool) {
	text := escapeControl(f.Text)
	if !htmlMode {
		b.WriteString(text)
		return
	}
	text = html.EscapeString(text)
	if f.Kind == token.Keyword {
		b.WriteString("<strong>")
		b.WriteString(text)
		b.WriteString("</strong>")
		return
	}
	b.WriteString(text)
}

// EscapeText escapes a standalone string for the given display
// context. Degraded previews go through this rather than the full
// pipeline.
func EscapeText(s string, htmlMode bool) string {
	s = escapeControl(s)
	if htmlMode {
		s = html.EscapeString(s)
	}
	return s
}

// escapeControl rewrites control characters (other than tab, newline
// and carriage return) to their \uXXXX form so they cannot disturb the
// display.
func escapeControl(s string) string {
	clean := true
	for i := 0; i < len(s); i++ {
		if isControl(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 && isControl(byte(r)) {
			fmt.Fprintf(&b, "\\u%04x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(c byte) bool {
	return c < 0x20 && c != '\t' && c != '\n' && c != '\r'
}

// needSpace decides whether a space belongs between two fragments.
func needSpace(prev, cur *Frag) bool {
	switch {
	case prev.Text == "(" || prev.Text == ".":
		return false
	case cur.Text == ")" || cur.Text == "," || cur.Text == ";" || cur.Text == ".":
		return false
	case cur.Text == "(" && prev.Kind == token.Ident:
		// function call: max(v)
		return false
	default:
		return true
	}
}
