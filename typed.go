package launchcast

import (
	"fmt"
	"io"
	"math"
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
)

// Decode casts v ToInternal against the entry called name and maps the
// internal value onto T. Internal keys are matched against T's field names;
// keys without a matching field are an error.
func Decode[T any](reg *Registry, name string, v any) (T, error) {
	var out T
	internal, err := reg.CastNamed(v, name, ToInternal)
	if err != nil {
		return out, err
	}
	if err := mapInto(internal, &out); err != nil {
		return out, fmt.Errorf("launchcast: decode %s into %T: %w", name, out, err)
	}
	return out, nil
}

// Unmarshal is ParseBytes followed by the mapping step of Decode.
func Unmarshal[T any](reg *Registry, name string, data []byte, opts ...ParseOpt) (T, error) {
	var out T
	internal, err := ParseBytes(reg, name, data, opts...)
	if err != nil {
		return out, err
	}
	if err := mapInto(internal, &out); err != nil {
		return out, fmt.Errorf("launchcast: decode %s into %T: %w", name, out, err)
	}
	return out, nil
}

// UnmarshalReader is ParseReader followed by the mapping step of Decode.
func UnmarshalReader[T any](reg *Registry, name string, r io.Reader, opts ...ParseOpt) (T, error) {
	var out T
	data, err := readAll(r, lastOpt(opts))
	if err != nil {
		return out, err
	}
	return Unmarshal[T](reg, name, data, opts...)
}

// Encode renders a typed value in its external (JSON) shape. The value is
// marshaled with field names as keys, then cast ToExternal, so the result is
// validated against the entry called name.
func Encode[T any](reg *Registry, name string, v T) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("launchcast: encode %T: %w", v, err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("launchcast: encode %T: %w", v, err)
	}
	return reg.CastNamed(generic, name, ToExternal)
}

// Marshal is Encode rendered as indented JSON.
func Marshal[T any](reg *Registry, name string, v T) ([]byte, error) {
	ext, err := Encode(reg, name, v)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ext, "", "  ")
}

func mapInto(internal any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook:  exactIntegerHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(internal)
}

// exactIntegerHook rejects JSON numbers that would lose precision when stored
// in an integer field: fractions and values outside the field's range.
func exactIntegerHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32 {
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	var lo, hi float64
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		lo, hi = -math.Exp2(float64(to.Bits()-1)), math.Exp2(float64(to.Bits()-1))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		lo, hi = 0, math.Exp2(float64(to.Bits()))
	default:
		return data, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	if f < lo || f >= hi {
		return nil, fmt.Errorf("%v overflows %s", f, to)
	}
	return data, nil
}
