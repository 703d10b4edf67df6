package formatter

import (
	"github.com/kkm-horikawa/sqlpretty/pkg/guard"
	"github.com/kkm-horikawa/sqlpretty/pkg/logger"
)

// Options select per-call output variations. Both fields are part of
// the cache key.
type Options struct {
	// Simplify collapses the select-column list to an ellipsis.
	Simplify bool

	// HTML renders for an HTML display context: entity escaping plus
	// <strong> keyword highlighting. When false the output is plain
	// text with control characters escaped.
	HTML bool
}

// DefaultCacheCapacity is the number of results memoized per
// Formatter.
const DefaultCacheCapacity = 128

// Option customizes a Formatter at construction.
type Option func(*settings)

type settings struct {
	limits        guard.Limits
	maxDepth      int
	cacheCapacity int
	log           logger.Interface
}

// WithLimits replaces the default resource limits.
func WithLimits(l guard.Limits) Option {
	return func(s *settings) { s.limits = l }
}

// WithMaxDepth bounds the paren nesting the grouper enters as scopes.
func WithMaxDepth(depth int) Option {
	return func(s *settings) { s.maxDepth = depth }
}

// WithCacheCapacity sets the result cache size. Zero disables caching.
func WithCacheCapacity(n int) Option {
	return func(s *settings) { s.cacheCapacity = n }
}

// WithLogger replaces the default logger.
func WithLogger(log logger.Interface) Option {
	return func(s *settings) { s.log = log }
}
