// Package guard enforces the resource limits that keep formatting cost
// bounded. It is consulted before the pipeline commits to full-cost
// work; limit violations are reported as typed errors that the caller
// converts to a degraded result, never surfaced to the host.
package guard

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/kkm-horikawa/sqlpretty/pkg/token"
)

var (
	// ErrInputTooLarge marks input longer than Limits.MaxLength.
	ErrInputTooLarge = errors.New("input too large")

	// ErrTokenBudget marks input whose token count exceeds
	// Limits.MaxTokens.
	ErrTokenBudget = errors.New("token budget exceeded")
)

// Default limits. MaxLength matches the byte threshold the SQL
// panel degrades at; MaxTokens caps grouping work on inputs that are
// short but token-dense.
const (
	DefaultMaxLength     = 50000
	DefaultMaxTokens     = 15000
	DefaultPreviewLength = 512
)

// Limits is the resource policy for one formatter. A zero value for
// MaxLength or MaxTokens disables that check; disabling is always this
// explicit, there is no implicit unlimited default.
type Limits struct {
	// MaxLength is the maximum input length in bytes.
	MaxLength int `yaml:"maxLength" json:"maxLength"`

	// MaxTokens is the maximum token count before grouping.
	MaxTokens int `yaml:"maxTokens" json:"maxTokens"`

	// PreviewLength is how many bytes of the raw input a degraded
	// result carries.
	PreviewLength int `yaml:"previewLength" json:"previewLength"`
}

// DefaultLimits returns the stock policy.
func DefaultLimits() Limits {
	return Limits{
		MaxLength:     DefaultMaxLength,
		MaxTokens:     DefaultMaxTokens,
		PreviewLength: DefaultPreviewLength,
	}
}

// LimitError carries the measured value and the limit it exceeded.
type LimitError struct {
	kind     error
	Measured int
	Limit    int
}

func (e *LimitError) Error() string {
	switch e.kind {
	case ErrInputTooLarge:
		return fmt.Sprintf("query length %d exceeds the %d byte limit", e.Measured, e.Limit)
	case ErrTokenBudget:
		return fmt.Sprintf("query token count exceeds the %d token limit", e.Limit)
	default:
		return e.kind.Error()
	}
}

// Unwrap exposes the sentinel for errors.Is.
func (e *LimitError) Unwrap() error { return e.kind }

// CheckLength verifies raw input length against MaxLength. It reads
// only len(sql), so its cost is independent of input size.
func (l Limits) CheckLength(sql string) error {
	if l.MaxLength <= 0 {
		return nil
	}
	if n := len(sql); n > l.MaxLength {
		return &LimitError{kind: ErrInputTooLarge, Measured: n, Limit: l.MaxLength}
	}
	return nil
}

// CheckTokens verifies the token count against MaxTokens. Counting
// stops as soon as the budget is exceeded, so the work done on an
// over-budget input is proportional to the budget, not the input.
func (l Limits) CheckTokens(sql string) error {
	if l.MaxTokens <= 0 {
		return nil
	}
	n, exceeded := token.Count(sql, l.MaxTokens)
	if exceeded {
		return &LimitError{kind: ErrTokenBudget, Measured: n, Limit: l.MaxTokens}
	}
	return nil
}

// Preview returns the first PreviewLength bytes of sql, cut on a
// rune boundary.
func (l Limits) Preview(sql string) string {
	max := l.PreviewLength
	if max <= 0 {
		max = DefaultPreviewLength
	}
	if len(sql) <= max {
		return sql
	}
	cut := max
	for cut > 0 && !isRuneStart(sql[cut]) {
		cut--
	}
	return sql[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
