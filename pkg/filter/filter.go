// Package filter implements the ordered transform pipeline that turns
// a grouped token tree into display text: re-indentation, keyword
// casing, optional simplification, and output escaping.
//
// Filters are pure with respect to shared data: the token tree is
// read-only, and each filter rewrites only the Doc fields it owns.
package filter

import (
	"github.com/pkg/errors"

	"github.com/kkm-horikawa/sqlpretty/pkg/group"
	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

// Frag is one renderable fragment of a line. Fragments carry copies of
// token text, never references into mutable state.
type Frag struct {
	Kind token.Kind
	Text string
}

// Line is one output line at a given indentation depth. Lead is the
// lowercased clause keyword the line starts with, or "".
type Line struct {
	Indent int
	Frags  []Frag
	Lead   string
}

// Doc is the unit of work flowing through the pipeline. The Indent
// filter populates Lines from Root; later filters rewrite Lines; the
// terminal Escape filter produces Output.
type Doc struct {
	Source string
	Root   *group.Node

	// HTML selects the display context for escaping and highlighting.
	HTML bool

	Lines  []Line
	Output string
}

// Filter is a single pipeline stage.
type Filter interface {
	Name() string
	Apply(*Doc) error
}

// Chain applies filters strictly in order. A filter error aborts the
// chain; no filter is ever re-invoked.
type Chain []Filter

// Run applies every filter to doc in order.
func (c Chain) Run(doc *Doc) error {
	for _, f := range c {
		if err := f.Apply(doc); err != nil {
			return errors.Wrapf(err, "filter %s", f.Name())
		}
	}
	return nil
}

// Standard returns the stock pipeline: indentation, keyword casing,
// optional simplification, then escaping as the terminal step.
func Standard(simplify bool) Chain {
	chain := Chain{&Indent{}, &KeywordCase{}}
	if simplify {
		chain = append(chain, &Simplify{})
	}
	return append(chain, &Escape{})
}
