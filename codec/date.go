package codec

import (
	"errors"
	"fmt"
	"time"
)

// Codec converts between a wire representation A and a domain representation B.
type Codec[A, B any] interface {
	Decode(a A) (B, error) // wire -> domain
	Encode(b B) (A, error) // domain -> wire
}

// ErrInvalidDate is wrapped by ISODate().Decode when no layout matches.
var ErrInvalidDate = errors.New("invalid ISO-8601 date")

// CanonicalLayout is the layout produced by ISODate().Encode: UTC with
// millisecond precision.
const CanonicalLayout = "2006-01-02T15:04:05.000Z"

// Layouts accepted by ISODate().Decode, tried in order. Layouts without a zone
// are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ISODate returns a Codec that converts between ISO-8601 strings and time.Time.
func ISODate() Codec[string, time.Time] { return isoDateCodec{} }

type isoDateCodec struct{}

func (isoDateCodec) Decode(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (isoDateCodec) Encode(t time.Time) (string, error) {
	if y := t.UTC().Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%w: year %d out of range", ErrInvalidDate, y)
	}
	return t.UTC().Format(CanonicalLayout), nil
}
