// Package formatter is the public entry point for bounded SQL display
// formatting.
//
// A Formatter turns raw captured SQL into display-ready text through a
// fixed pipeline (tokenize, group, filter) wrapped in two safety
// mechanisms: a resource guard that degrades oversized or token-dense
// input instead of processing it, and a memoizing cache that coalesces
// concurrent identical requests.
//
// # Quick start
//
//	f := formatter.New()
//	res := f.Format(context.Background(), "SELECT * FROM t WHERE id IN (1,2,3)",
//	    formatter.Options{HTML: true})
//	switch res.Kind {
//	case formatter.Formatted:
//	    render(res.Text)
//	case formatter.Degraded:
//	    renderNotice(res.Reason, res.Preview)
//	}
//
// Format never returns an error and never panics: every call yields a
// well-formed Result. Oversized input produces a Degraded result with
// a reason and a bounded preview; only unexpected internal failures
// produce Failed.
package formatter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kkm-horikawa/sqlpretty/pkg/cache"
	"github.com/kkm-horikawa/sqlpretty/pkg/filter"
	"github.com/kkm-horikawa/sqlpretty/pkg/group"
	"github.com/kkm-horikawa/sqlpretty/pkg/guard"
	"github.com/kkm-horikawa/sqlpretty/pkg/logger"
	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

// Formatter formats SQL text for display with bounded cost.
//
// Formatter is safe for concurrent use by multiple goroutines; the
// result cache is its only shared mutable state.
type Formatter struct {
	limits   guard.Limits
	maxDepth int
	results  *cache.Cache[Result]
	log      logger.Interface
}

// New creates a Formatter. Without options it uses the default limits
// (50000 bytes, 15000 tokens, a 512-byte preview) and a
// 128-entry result cache.
func New(opts ...Option) *Formatter {
	s := &settings{
		limits:        guard.DefaultLimits(),
		maxDepth:      group.DefaultMaxDepth,
		cacheCapacity: DefaultCacheCapacity,
		log:           logger.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return &Formatter{
		limits:   s.limits,
		maxDepth: s.maxDepth,
		results:  cache.New[Result](s.cacheCapacity),
		log:      s.log,
	}
}

// Format formats sql for display. The returned Result is always
// well-formed: Formatted on success, Degraded when a resource limit
// applies, Failed only on unexpected internal errors.
//
// ctx is a cooperative cancellation signal for callers that abandon
// interest mid-computation; the guard limits, not the context, are
// what bound the cost.
func (f *Formatter) Format(ctx context.Context, sql string, opts Options) Result {
	res, err := f.results.GetOrCompute(cacheKey(sql, opts), func() (Result, error) {
		return f.compute(ctx, sql, opts)
	})
	if err != nil {
		// Cancellation is the only error compute returns. It is not
		// cached: the next caller with the same key recomputes.
		return Result{Kind: Failed, Reason: err.Error()}
	}
	return res
}

// compute runs the guard and, when it passes, the full pipeline. The
// error return is reserved for context cancellation, which must not be
// memoized; every other outcome is encoded in the Result.
func (f *Formatter) compute(ctx context.Context, sql string, opts Options) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("formatting panicked", "panic", r)
			res = Result{Kind: Failed, Reason: fmt.Sprintf("internal error: %v", r)}
			err = nil
		}
	}()

	if lerr := f.limits.CheckLength(sql); lerr != nil {
		return f.degrade(sql, opts, lerr), nil
	}
	if lerr := f.limits.CheckTokens(sql); lerr != nil {
		return f.degrade(sql, opts, lerr), nil
	}

	root, perr := group.NewParser(f.maxDepth).Parse(ctx, token.NewTokenizer(sql))
	if perr != nil {
		// Only cancellation reaches here; the grouper absorbs
		// malformed input.
		return Result{}, perr
	}

	doc := &filter.Doc{Source: sql, Root: root, HTML: opts.HTML}
	if ferr := filter.Standard(opts.Simplify).Run(doc); ferr != nil {
		return f.degrade(sql, opts, ferr), nil
	}

	return Result{Kind: Formatted, Text: doc.Output}, nil
}

// degrade builds the Degraded variant: the reason verbatim plus an
// escaped, bounded preview of the raw input.
func (f *Formatter) degrade(sql string, opts Options, cause error) Result {
	return Result{
		Kind:           Degraded,
		Reason:         cause.Error(),
		Preview:        filter.EscapeText(f.limits.Preview(sql), opts.HTML),
		OriginalLength: len(sql),
	}
}

// cacheKey derives the memo key from the input and every option that
// affects output.
func cacheKey(sql string, opts Options) string {
	return strconv.FormatBool(opts.Simplify) + "|" +
		strconv.FormatBool(opts.HTML) + "|" + sql
}
