// Package group arranges a token stream into a shallow tree for display:
// statement clauses at the top level, parenthesized groups below them,
// and comma-separated items inside parentheses.
//
// The grouper is tolerant by construction. Unbalanced parentheses and
// unknown tokens never produce an error; they are kept as plain leaves
// or sealed in place at end of input. Nesting beyond a configured
// maximum depth is not entered as new scopes, which bounds both tree
// depth and grouping cost on adversarial input.
package group

import (
	"context"

	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

// NodeKind identifies the role of a node in the grouped tree.
type NodeKind int

const (
	// Leaf wraps a single token.
	Leaf NodeKind = iota
	// Statement is the root node.
	Statement
	// Clause is a statement-level segment led by a clause keyword.
	Clause
	// Paren is a parenthesized group, including its delimiters.
	Paren
	// List is the comma-separated content of a Paren.
	List
	// Item is one element of a List.
	Item
)

// Node is a leaf token or an ordered sequence of children covering a
// contiguous region of the source. Nodes are never mutated after Parse
// returns.
type Node struct {
	Kind     NodeKind
	Tok      token.Token // set when Kind == Leaf
	Children []*Node
}

// Span returns the source region the node covers.
func (n *Node) Span() token.Span {
	if n.Kind == Leaf {
		return n.Tok.Span
	}
	if len(n.Children) == 0 {
		return token.Span{}
	}
	return token.Span{
		Start: n.Children[0].Span().Start,
		End:   n.Children[len(n.Children)-1].Span().End,
	}
}

// leaf wraps a token.
func leaf(tok token.Token) *Node {
	return &Node{Kind: Leaf, Tok: tok}
}

// DefaultMaxDepth bounds paren nesting entered as scopes.
const DefaultMaxDepth = 32

// ctxPollInterval is how many tokens are consumed between cancellation
// checks.
const ctxPollInterval = 4096

// Parser builds the grouped tree in a single pass over the tokenizer.
type Parser struct {
	maxDepth int
}

// NewParser returns a parser with the given maximum nesting depth.
// depth <= 0 selects DefaultMaxDepth.
func NewParser(maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{maxDepth: maxDepth}
}

// frame is one open parenthesized scope.
type frame struct {
	paren *Node
	list  *Node
	item  *Node
}

// Parse consumes the tokenizer exactly once and returns the Statement
// root. The only error it can return is ctx.Err() from cancellation;
// malformed input is absorbed.
func (p *Parser) Parse(ctx context.Context, tz *token.Tokenizer) (*Node, error) {
	root := &Node{Kind: Statement}
	clause := &Node{Kind: Clause}

	var stack []frame
	overflow := 0 // opens beyond maxDepth, kept as plain leaves
	consumed := 0

	// append target for the current position
	sink := func() *[]*Node {
		if len(stack) > 0 {
			return &stack[len(stack)-1].item.Children
		}
		return &clause.Children
	}

	closeClause := func() {
		if len(clause.Children) > 0 {
			root.Children = append(root.Children, clause)
		}
		clause = &Node{Kind: Clause}
	}

	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		consumed++
		if consumed%ctxPollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		switch {
		case tok.IsPunct("("):
			if overflow > 0 || len(stack) >= p.maxDepth {
				// Too deep. Keep as punctuation, do not open a scope.
				overflow++
				*sink() = append(*sink(), leaf(tok))
				continue
			}
			fr := frame{
				paren: &Node{Kind: Paren},
				list:  &Node{Kind: List},
				item:  &Node{Kind: Item},
			}
			fr.paren.Children = append(fr.paren.Children, leaf(tok))
			stack = append(stack, fr)

		case tok.IsPunct(")"):
			if overflow > 0 {
				overflow--
				*sink() = append(*sink(), leaf(tok))
				continue
			}
			if len(stack) == 0 {
				// Unmatched close, keep it where it is.
				*sink() = append(*sink(), leaf(tok))
				continue
			}
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			sealFrame(fr)
			fr.paren.Children = append(fr.paren.Children, leaf(tok))
			*sink() = append(*sink(), fr.paren)

		case tok.IsPunct(",") && len(stack) > 0:
			fr := &stack[len(stack)-1]
			if len(fr.item.Children) > 0 {
				fr.list.Children = append(fr.list.Children, fr.item)
			}
			fr.list.Children = append(fr.list.Children, leaf(tok))
			fr.item = &Node{Kind: Item}

		case tok.Kind == token.Keyword && len(stack) == 0 && token.IsClauseKeyword(tok.Text):
			closeClause()
			clause.Children = append(clause.Children, leaf(tok))

		default:
			*sink() = append(*sink(), leaf(tok))
		}
	}

	// Seal unclosed scopes in place: the partial group keeps whatever
	// it accumulated and becomes a child of its enclosing group.
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sealFrame(fr)
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			top.item.Children = append(top.item.Children, fr.paren)
		} else {
			clause.Children = append(clause.Children, fr.paren)
		}
	}
	closeClause()

	return root, nil
}

// sealFrame attaches the open item and list to the paren node.
func sealFrame(fr frame) {
	if len(fr.item.Children) > 0 {
		fr.list.Children = append(fr.list.Children, fr.item)
	}
	if len(fr.list.Children) > 0 {
		fr.paren.Children = append(fr.paren.Children, fr.list)
	}
}

// Walk visits n and its descendants depth-first, stopping if fn
// returns false.
func Walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// CountItems returns the number of Item nodes directly under the List
// of a Paren node, or 0 for other kinds.
func CountItems(n *Node) int {
	if n.Kind != Paren {
		return 0
	}
	for _, c := range n.Children {
		if c.Kind == List {
			count := 0
			for _, item := range c.Children {
				if item.Kind == Item {
					count++
				}
			}
			return count
		}
	}
	return 0
}
