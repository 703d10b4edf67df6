package formatter

import "fmt"

// ResultKind tags the variant of a Result.
type ResultKind int

const (
	// Formatted means Text holds the fully formatted query.
	Formatted ResultKind = iota
	// Degraded means full formatting was skipped for resource reasons;
	// Reason and Preview describe what happened.
	Degraded
	// Failed means formatting could not complete even in degraded
	// form. Reserved for unexpected internal errors.
	Failed
)

var kindNames = map[ResultKind]string{
	Formatted: "formatted",
	Degraded:  "degraded",
	Failed:    "failed",
}

func (k ResultKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so the kind renders as
// its name in JSON output.
func (k ResultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalYAML renders the kind by name; yaml.v3 does not consult
// TextMarshaler.
func (k ResultKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Result is the outcome of one Format call. Exactly one variant
// applies; there is no partial or streaming result.
type Result struct {
	// Kind selects the variant.
	Kind ResultKind `yaml:"kind" json:"kind"`

	// Text is the display-ready formatted query (Formatted only).
	Text string `yaml:"text,omitempty" json:"text,omitempty"`

	// Preview is the escaped head of the raw input (Degraded only).
	Preview string `yaml:"preview,omitempty" json:"preview,omitempty"`

	// Reason says why formatting was skipped or failed.
	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`

	// OriginalLength is the raw input length in bytes (Degraded only).
	OriginalLength int `yaml:"originalLength,omitempty" json:"originalLength,omitempty"`
}

// IsFormatted reports whether full formatting succeeded.
func (r Result) IsFormatted() bool { return r.Kind == Formatted }

// IsDegraded reports whether formatting was skipped for resource
// reasons.
func (r Result) IsDegraded() bool { return r.Kind == Degraded }

// String returns a short human-readable summary.
func (r Result) String() string {
	switch r.Kind {
	case Formatted:
		return fmt.Sprintf("formatted (%d bytes)", len(r.Text))
	case Degraded:
		return fmt.Sprintf("degraded: %s", r.Reason)
	default:
		return fmt.Sprintf("failed: %s", r.Reason)
	}
}
