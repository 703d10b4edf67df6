// Package token defines the lexical model for SQL display formatting:
// token kinds, source spans, and a tolerant maximal-munch tokenizer.
//
// The tokenizer never fails. Input it cannot classify becomes Unknown
// tokens of length one, so arbitrary captured query text (including
// truncated or binary-ish strings) always lexes to completion.
package token

// Kind classifies a lexical token. The set is closed; downstream stages
// switch exhaustively over it.
type Kind int

const (
	// Unknown is the fallback for bytes no other pattern matches.
	Unknown Kind = iota
	// Keyword is an identifier found in the SQL keyword dictionary.
	Keyword
	// Ident is a plain or quoted identifier.
	Ident
	// String is a quoted string literal.
	String
	// Number is a numeric literal, including decimals and exponents.
	Number
	// Operator covers arithmetic and comparison operators.
	Operator
	// Punct covers parentheses, commas, semicolons, dots and brackets.
	Punct
	// Whitespace is a run of spaces, tabs and newlines.
	Whitespace
	// Comment is a line or block comment.
	Comment
)

var kindNames = map[Kind]string{
	Unknown:    "UNKNOWN",
	Keyword:    "KEYWORD",
	Ident:      "IDENT",
	String:     "STRING",
	Number:     "NUMBER",
	Operator:   "OPERATOR",
	Punct:      "PUNCT",
	Whitespace: "WHITESPACE",
	Comment:    "COMMENT",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "KIND(?)"
}

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the byte length of the span.
func (s Span) Len() int { return s.End - s.Start }

// Token is a single lexical unit. Tokens are immutable once produced;
// later stages reference them and never rewrite Text or Span.
type Token struct {
	Kind Kind
	Span Span
	Text string
}

// IsKeyword reports whether the token is the given keyword,
// compared case-insensitively.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == Keyword && equalFold(t.Text, word)
}

// IsPunct reports whether the token is the given punctuation text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// equalFold is ASCII-only case-insensitive comparison. SQL keywords are
// ASCII, so the full unicode folding of strings.EqualFold is not needed
// on this hot path.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
