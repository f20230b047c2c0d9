package launchcast

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	eng "github.com/reoring/launchcast/internal/engine"
)

var (
	// ErrDuplicateKey is wrapped when ParseOpt.OnDuplicateKey is Error and the
	// input repeats an object key.
	ErrDuplicateKey = errors.New("launchcast: duplicate key")
	// ErrTooLarge is returned by ParseReader when the input exceeds MaxBytes.
	ErrTooLarge = errors.New("launchcast: input exceeds max bytes")
	// ErrUnknownSchema is returned when a caller names an entry the registry
	// does not have.
	ErrUnknownSchema = errors.New("launchcast: unknown schema")
)

// ParseBytes decodes JSON and casts it ToInternal against the registry entry
// called name.
func ParseBytes(reg *Registry, name string, data []byte, opts ...ParseOpt) (any, error) {
	v, err := decodeJSON(data, lastOpt(opts))
	if err != nil {
		return nil, err
	}
	return reg.CastNamed(v, name, ToInternal)
}

// ParseReader reads the whole input (bounded by MaxBytes) and delegates to
// ParseBytes.
func ParseReader(reg *Registry, name string, r io.Reader, opts ...ParseOpt) (any, error) {
	data, err := readAll(r, lastOpt(opts))
	if err != nil {
		return nil, err
	}
	return ParseBytes(reg, name, data, opts...)
}

// EncodeJSON casts an internal value ToExternal and renders it as indented
// JSON.
func EncodeJSON(reg *Registry, name string, v any) ([]byte, error) {
	ext, err := reg.CastNamed(v, name, ToExternal)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ext, "", "  ")
}

// ---- helpers (options, decode, size cap) ----

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func decodeJSON(data []byte, opt ParseOpt) (any, error) {
	if opt.OnDuplicateKey != Ignore {
		iss, err := eng.DetectDuplicateKeysBytes(data, toEngineDup(opt.OnDuplicateKey), -1)
		if err != nil {
			return nil, fmt.Errorf("launchcast: decode json: %w", err)
		}
		for _, it := range iss {
			if opt.OnDuplicateKey == Error {
				return nil, fmt.Errorf("%w at %s", ErrDuplicateKey, it.Path)
			}
			if opt.OnWarn != nil {
				opt.OnWarn(it.Path, it.Message)
			}
		}
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("launchcast: decode json: %w", err)
	}
	return v, nil
}

func readAll(r io.Reader, opt ParseOpt) ([]byte, error) {
	if opt.MaxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("launchcast: read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("launchcast: read input: %w", err)
	}
	if int64(len(data)) > opt.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
