package filter

import (
	"strings"

	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

// KeywordCase rewrites keyword fragments to canonical uppercase.
type KeywordCase struct{}

func (*KeywordCase) Name() string { return "keyword-case" }

func (*KeywordCase) Apply(doc *Doc) error {
	for li := range doc.Lines {
		frags := doc.Lines[li].Frags
		for fi, f := range frags {
			if f.Kind == token.Keyword {
				frags[fi].Text = strings.ToUpper(f.Text)
			}
		}
	}
	return nil
}
