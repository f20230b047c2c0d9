package launchcast

import "fmt"

// Direction selects which key of an Object field is read from the input and
// which one is written to the output.
type Direction int

const (
	ToInternal Direction = iota // Read external (JSON) keys, emit internal keys.
	ToExternal                  // Read internal keys, emit external (JSON) keys.
)

func (d Direction) String() string {
	switch d {
	case ToInternal:
		return "to_internal"
	case ToExternal:
		return "to_external"
	default:
		return "unknown"
	}
}

// Severity expresses how a parse-time finding is handled.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseSeverity maps "ignore", "warn" and "error" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Ignore, fmt.Errorf("launchcast: severity must be one of: ignore, warn, error, got %q", s)
}

// ParseOpt bundles options for ParseBytes/ParseReader.
type ParseOpt struct {
	// OnDuplicateKey controls duplicate JSON object keys. Ignore keeps the
	// decoder's last-wins behavior.
	OnDuplicateKey Severity
	// MaxBytes caps the input size read by ParseReader (0 = unlimited).
	MaxBytes int64
	// OnWarn receives findings reported with Warn severity.
	OnWarn func(path, msg string)
}
