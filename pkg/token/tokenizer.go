package token

import (
	"unicode"
	"unicode/utf8"
)

// Tokenizer scans SQL text left to right, producing one token per call
// to Next. The scan is maximal-munch over a fixed pattern order:
// whitespace, comments, quoted strings, numbers, identifiers/keywords,
// operators, punctuation. A byte matching none of these becomes a
// single Unknown token, so Next cannot fail.
//
// Cost is linear in the input length: the position only moves forward
// and every byte is visited a constant number of times.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer returns a tokenizer positioned at the start of src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next returns the next token. The second return is false once the
// input is exhausted.
func (tz *Tokenizer) Next() (Token, bool) {
	if tz.pos >= len(tz.src) {
		return Token{}, false
	}

	start := tz.pos
	c := tz.src[tz.pos]

	var kind Kind
	switch {
	case isSpace(c):
		kind = Whitespace
		tz.scanWhile(isSpace)
	case c == '-' && tz.peek(1) == '-':
		kind = Comment
		tz.scanLineComment()
	case c == '/' && tz.peek(1) == '*':
		kind = Comment
		tz.scanBlockComment()
	case c == '\'' || c == '"' || c == '`':
		kind = String
		if c == '`' || c == '"' {
			// Double-quoted and backtick-quoted forms are identifier
			// quoting in most dialects.
			kind = Ident
		}
		tz.scanQuoted(c)
	case isDigit(c):
		kind = Number
		tz.scanNumber()
	case isIdentStart(c) || isLetterRune(tz.src[tz.pos:]):
		tz.scanIdent()
		kind = Ident
		if IsKeywordWord(tz.src[start:tz.pos]) {
			kind = Keyword
		}
	case isOperatorByte(c):
		kind = Operator
		tz.scanOperator()
	case isPunctByte(c):
		kind = Punct
		tz.pos++
	default:
		kind = Unknown
		if c >= utf8.RuneSelf {
			// Consume the whole rune so the span stays valid UTF-8.
			_, size := utf8.DecodeRuneInString(tz.src[tz.pos:])
			tz.pos += size
		} else {
			tz.pos++
		}
	}

	return Token{
		Kind: kind,
		Span: Span{Start: start, End: tz.pos},
		Text: tz.src[start:tz.pos],
	}, true
}

// Count scans src and returns the number of tokens, stopping early once
// the count exceeds budget (budget <= 0 means unbounded). It allocates
// no tokens, so a budget check on pathological input stays cheap.
func Count(src string, budget int) (n int, exceeded bool) {
	tz := NewTokenizer(src)
	for {
		if _, ok := tz.Next(); !ok {
			return n, false
		}
		n++
		if budget > 0 && n > budget {
			return n, true
		}
	}
}

// Tokenize scans src to completion and returns all tokens. Intended for
// tests and small inputs; the pipeline consumes the pull API instead.
func Tokenize(src string) []Token {
	var toks []Token
	tz := NewTokenizer(src)
	for {
		tok, ok := tz.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (tz *Tokenizer) peek(ahead int) byte {
	if tz.pos+ahead >= len(tz.src) {
		return 0
	}
	return tz.src[tz.pos+ahead]
}

func (tz *Tokenizer) scanWhile(pred func(byte) bool) {
	for tz.pos < len(tz.src) && pred(tz.src[tz.pos]) {
		tz.pos++
	}
}

func (tz *Tokenizer) scanLineComment() {
	for tz.pos < len(tz.src) && tz.src[tz.pos] != '\n' {
		tz.pos++
	}
}

func (tz *Tokenizer) scanBlockComment() {
	tz.pos += 2 // consume /*
	for tz.pos < len(tz.src) {
		if tz.src[tz.pos] == '*' && tz.peek(1) == '/' {
			tz.pos += 2
			return
		}
		tz.pos++
	}
	// Unterminated comment runs to end of input.
}

// scanQuoted consumes a quoted region delimited by quote. Both doubled
// quotes ('it''s') and backslash escapes are honored. An unterminated
// literal runs to end of input rather than erroring.
func (tz *Tokenizer) scanQuoted(quote byte) {
	tz.pos++ // opening quote
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		switch {
		case c == '\\' && tz.pos+1 < len(tz.src):
			tz.pos += 2
		case c == quote && tz.peek(1) == quote:
			tz.pos += 2
		case c == quote:
			tz.pos++
			return
		default:
			tz.pos++
		}
	}
}

func (tz *Tokenizer) scanNumber() {
	tz.scanWhile(isDigit)
	if tz.pos < len(tz.src) && tz.src[tz.pos] == '.' {
		tz.pos++
		tz.scanWhile(isDigit)
	}
	if tz.pos < len(tz.src) && (tz.src[tz.pos] == 'e' || tz.src[tz.pos] == 'E') {
		next := tz.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(tz.peek(2))) {
			tz.pos++
			if tz.src[tz.pos] == '+' || tz.src[tz.pos] == '-' {
				tz.pos++
			}
			tz.scanWhile(isDigit)
		}
	}
}

func (tz *Tokenizer) scanIdent() {
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		if c < utf8.RuneSelf {
			if !isIdentPart(c) {
				return
			}
			tz.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(tz.src[tz.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		tz.pos += size
	}
}

// isLetterRune reports whether s starts with a multi-byte letter rune.
func isLetterRune(s string) bool {
	if len(s) == 0 || s[0] < utf8.RuneSelf {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

// twoByteOperators are matched before single bytes (maximal munch).
var twoByteOperators = map[string]struct{}{
	"<=": {}, ">=": {}, "<>": {}, "!=": {}, "||": {}, "::": {},
}

func (tz *Tokenizer) scanOperator() {
	if tz.pos+1 < len(tz.src) {
		if _, ok := twoByteOperators[tz.src[tz.pos:tz.pos+2]]; ok {
			tz.pos += 2
			return
		}
	}
	tz.pos++
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c == '@' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isOperatorByte(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '|', ':', '&', '^', '~', '?':
		return true
	}
	return false
}

func isPunctByte(c byte) bool {
	switch c {
	case '(', ')', ',', ';', '.', '[', ']', '{', '}':
		return true
	}
	return false
}
