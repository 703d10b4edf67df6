// Package pkg groups the sqlpretty building blocks.
//
// Most applications only need the formatter package:
//
//	f := formatter.New()
//	res := f.Format(ctx, sql, formatter.Options{HTML: true})
//
// The remaining packages are the pipeline stages it composes:
//
//   - token: tolerant maximal-munch SQL tokenizer
//   - group: depth-bounded grouping of tokens into a display tree
//   - filter: the indent / keyword-case / simplify / escape pipeline
//   - guard: length and token-count limits with typed errors
//   - cache: bounded LRU memoization with per-key singleflight
//   - config: file-based configuration for hosts
//   - logger: shared slog wrapper
//
// Each stage is usable on its own; the formatter package wires them
// with the degradation and caching semantics described in its docs.
package pkg
