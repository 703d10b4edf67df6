package filter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kkm-horikawa/sqlpretty/pkg/group"
	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

func render(t *testing.T, sql string, htmlMode, simplify bool) string {
	t.Helper()
	root, err := group.NewParser(0).Parse(context.Background(), token.NewTokenizer(sql))
	require.NoError(t, err)

	doc := &Doc{Source: sql, Root: root, HTML: htmlMode}
	require.NoError(t, Standard(simplify).Run(doc))
	return doc.Output
}

func TestClausePerLine(t *testing.T) {
	out := render(t, "select * from t where id = 1 order by id", false, false)

	want := strings.Join([]string{
		"SELECT *",
		"FROM t",
		"WHERE id = 1",
		"ORDER BY id",
	}, "\n")
	require.Equal(t, want, out)
}

func TestKeywordUppercased(t *testing.T) {
	out := render(t, "select a from t", false, false)
	require.Contains(t, out, "SELECT")
	require.Contains(t, out, "FROM")
	require.NotContains(t, out, "select")
}

func TestShortListStaysInline(t *testing.T) {
	out := render(t, "where id in (1, 2, 3)", false, false)
	require.Equal(t, "WHERE id IN (1, 2, 3)", out)
}

func TestLongListWraps(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = "'abcdefgh'"
	}
	sql := "where id in (" + strings.Join(items, ", ") + ")"
	out := render(t, sql, false, false)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 30, "long lists wrap one item per line")
	require.Equal(t, "WHERE id IN (", lines[0])
	require.Equal(t, "  'abcdefgh',", lines[1])
	require.Equal(t, ")", lines[len(lines)-1])
}

func TestFunctionCallSpacing(t *testing.T) {
	out := render(t, "select max(v) from t", false, false)
	require.Contains(t, out, "max(v)")
}

func TestHTMLEscaping(t *testing.T) {
	out := render(t, "select * from t where name = '<b>'", true, false)
	require.Contains(t, out, "&#39;&lt;b&gt;&#39;")
	require.NotContains(t, out, "'<b>'")
}

func TestHTMLKeywordHighlight(t *testing.T) {
	out := render(t, "select 1", true, false)
	require.Contains(t, out, "<strong>SELECT</strong>")
}

func TestControlCharactersEscaped(t *testing.T) {
	out := render(t, "select '\x01'", false, false)
	require.Contains(t, out, `\u0001`)
	require.NotContains(t, out, "\x01")
}

func TestSimplifyCollapsesColumns(t *testing.T) {
	out := render(t, "select a, b, c from t where x = 1", false, true)

	lines := strings.Split(out, "\n")
	require.Equal(t, "SELECT "+Ellipsis, lines[0])
	require.Equal(t, "FROM t", lines[1])
	require.NotContains(t, out, "a, b, c")
}

func TestFiltersDoNotMutateTree(t *testing.T) {
	sql := "select a from t"
	root, err := group.NewParser(0).Parse(context.Background(), token.NewTokenizer(sql))
	require.NoError(t, err)

	var before []string
	group.Walk(root, func(n *group.Node) bool {
		if n.Kind == group.Leaf {
			before = append(before, n.Tok.Text)
		}
		return true
	})

	doc := &Doc{Source: sql, Root: root, HTML: true}
	require.NoError(t, Standard(true).Run(doc))

	var after []string
	group.Walk(root, func(n *group.Node) bool {
		if n.Kind == group.Leaf {
			after = append(after, n.Tok.Text)
		}
		return true
	})
	require.Equal(t, before, after, "filters must not rewrite shared tokens")
}
