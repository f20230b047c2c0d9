package launchcast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/launchcast/i18n"
)

// Mismatch codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
)

// ShapeMismatch is the single error kind returned when a value does not
// conform to its descriptor.
type ShapeMismatch struct {
	Code     string
	Path     string // JSON Pointer into the input (for example: /docs/2/cores/0/flight).
	Key      string // Field key when the value sits inside an object.
	Parent   string // Name of the enclosing registry entry, if any.
	Expected string // Human readable shape, e.g. "optional string" or `one of ["hour"]`.
	Actual   string // Offending value serialized as JSON ("undefined" when missing).
	Cause    error  // Optional: underlying error (date parsing).
}

func (e *ShapeMismatch) Error() string {
	b := &strings.Builder{}
	b.WriteString("launchcast: ")
	b.WriteString(i18n.T(e.Code))
	fmt.Fprintf(b, " at %s", e.Path)
	if e.Key != "" || e.Parent != "" {
		b.WriteString(" (")
		if e.Key != "" {
			fmt.Fprintf(b, "key %s", strconv.Quote(e.Key))
		}
		if e.Parent != "" {
			if e.Key != "" {
				b.WriteString(" ")
			}
			fmt.Fprintf(b, "on %s", e.Parent)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(b, ": expected %s but got %s", e.Expected, e.Actual)
	return b.String()
}

func (e *ShapeMismatch) Unwrap() error { return e.Cause }

// AsShapeMismatch extracts a *ShapeMismatch from an error chain.
func AsShapeMismatch(err error) (*ShapeMismatch, bool) {
	if err == nil {
		return nil, false
	}
	var sm *ShapeMismatch
	if errors.As(err, &sm) {
		return sm, true
	}
	return nil, false
}

// renderActual serializes the offending value for error messages.
func renderActual(v any, present bool) string {
	if !present {
		return "undefined"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
