package token

import "strings"

// keywords is the case-insensitive dictionary used to classify
// identifiers. It covers the keywords that matter for display grouping
// and highlighting, not a full dialect grammar.
var keywords = map[string]struct{}{
	"all":       {},
	"alter":     {},
	"and":       {},
	"as":        {},
	"asc":       {},
	"begin":     {},
	"between":   {},
	"by":        {},
	"case":      {},
	"cast":      {},
	"commit":    {},
	"create":    {},
	"cross":     {},
	"delete":    {},
	"desc":      {},
	"distinct":  {},
	"drop":      {},
	"else":      {},
	"end":       {},
	"except":    {},
	"exists":    {},
	"false":     {},
	"from":      {},
	"full":      {},
	"group":     {},
	"having":    {},
	"ilike":     {},
	"in":        {},
	"inner":     {},
	"insert":    {},
	"intersect": {},
	"into":      {},
	"is":        {},
	"join":      {},
	"left":      {},
	"like":      {},
	"limit":     {},
	"not":       {},
	"null":      {},
	"offset":    {},
	"on":        {},
	"or":        {},
	"order":     {},
	"outer":     {},
	"over":      {},
	"partition": {},
	"returning": {},
	"right":     {},
	"rollback":  {},
	"select":    {},
	"set":       {},
	"table":     {},
	"then":      {},
	"true":      {},
	"union":     {},
	"update":    {},
	"using":     {},
	"values":    {},
	"when":      {},
	"where":     {},
	"with":      {},
}

// clauseKeywords lead a new display line at statement level.
var clauseKeywords = map[string]struct{}{
	"and":       {},
	"delete":    {},
	"except":    {},
	"from":      {},
	"group":     {},
	"having":    {},
	"insert":    {},
	"intersect": {},
	"join":      {},
	"limit":     {},
	"offset":    {},
	"or":        {},
	"order":     {},
	"returning": {},
	"select":    {},
	"set":       {},
	"union":     {},
	"update":    {},
	"values":    {},
	"where":     {},
}

// IsKeywordWord reports whether word is in the keyword dictionary.
func IsKeywordWord(word string) bool {
	_, ok := keywords[strings.ToLower(word)]
	return ok
}

// IsClauseKeyword reports whether word begins a new clause when it
// appears at statement level.
func IsClauseKeyword(word string) bool {
	_, ok := clauseKeywords[strings.ToLower(word)]
	return ok
}
