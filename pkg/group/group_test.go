package group

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

func parse(t *testing.T, sql string) *Node {
	t.Helper()
	root, err := NewParser(0).Parse(context.Background(), token.NewTokenizer(sql))
	require.NoError(t, err)
	return root
}

func findParen(n *Node) *Node {
	var found *Node
	Walk(n, func(c *Node) bool {
		if c.Kind == Paren {
			found = c
			return false
		}
		return true
	})
	return found
}

func TestClauseSegments(t *testing.T) {
	root := parse(t, "SELECT a, b FROM t WHERE x = 1 ORDER BY a")

	require.Equal(t, Statement, root.Kind)
	var leads []string
	for _, clause := range root.Children {
		require.Equal(t, Clause, clause.Kind)
		require.NotEmpty(t, clause.Children)
		first := clause.Children[0]
		require.Equal(t, Leaf, first.Kind)
		leads = append(leads, strings.ToUpper(first.Tok.Text))
	}
	require.Equal(t, []string{"SELECT", "FROM", "WHERE", "ORDER"}, leads)
}

func TestParenList(t *testing.T) {
	root := parse(t, "WHERE id IN (1, 2, 3)")

	paren := findParen(root)
	require.NotNil(t, paren)
	require.Equal(t, 3, CountItems(paren))

	// Delimiters stay inside the group.
	first := paren.Children[0]
	last := paren.Children[len(paren.Children)-1]
	require.True(t, first.Tok.IsPunct("("))
	require.True(t, last.Tok.IsPunct(")"))
}

func TestSpanContiguity(t *testing.T) {
	sql := "SELECT * FROM t WHERE id IN (1, (2), 'x') AND y = (SELECT max(v) FROM u)"
	root := parse(t, sql)

	Walk(root, func(n *Node) bool {
		if n.Kind == Leaf || len(n.Children) == 0 {
			return true
		}
		span := n.Span()
		pos := span.Start
		for _, c := range n.Children {
			cs := c.Span()
			if cs.Len() == 0 {
				continue
			}
			require.Equal(t, pos, cs.Start, "child spans must be contiguous")
			pos = cs.End
		}
		require.Equal(t, span.End, pos)
		return true
	})
}

func TestUnbalancedParens(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"unclosed open", "SELECT (1, 2"},
		{"stray close", "SELECT 1) FROM t"},
		{"deeply unclosed", "SELECT ((((1"},
		{"close before open", ") SELECT 1 ("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.sql)
			// Every input token must survive into the tree.
			want := len(token.Tokenize(tt.sql))
			got := 0
			Walk(root, func(n *Node) bool {
				if n.Kind == Leaf {
					got++
				}
				return true
			})
			require.Equal(t, want, got)
		})
	}
}

func TestDepthGuard(t *testing.T) {
	const max = 4
	sql := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)
	root, err := NewParser(max).Parse(context.Background(), token.NewTokenizer(sql))
	require.NoError(t, err)

	depth := 0
	maxSeen := 0
	var measure func(n *Node, d int)
	measure = func(n *Node, d int) {
		if n.Kind == Paren && d > maxSeen {
			maxSeen = d
		}
		for _, c := range n.Children {
			next := d
			if c.Kind == Paren {
				next = d + 1
			}
			measure(c, next)
		}
	}
	measure(root, depth)
	require.LessOrEqual(t, maxSeen, max)

	// All 41 tokens survive even though most parens stay flat.
	got := 0
	Walk(root, func(n *Node) bool {
		if n.Kind == Leaf {
			got++
		}
		return true
	})
	require.Equal(t, 41, got)
}

func TestParseCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Enough tokens to hit a poll interval.
	sql := "(" + strings.Repeat("1,", ctxPollInterval) + "1)"
	_, err := NewParser(0).Parse(ctx, token.NewTokenizer(sql))
	require.ErrorIs(t, err, context.Canceled)
}

func BenchmarkParseFlatList(b *testing.B) {
	sql := "SELECT * FROM t WHERE id IN (" + strings.Repeat("'v',", 10000) + "'v')"
	b.SetBytes(int64(len(sql)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewParser(0).Parse(context.Background(), token.NewTokenizer(sql)); err != nil {
			b.Fatal(err)
		}
	}
}
