package launchcast

import (
	"fmt"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/launchcast/codec"
)

// Cast validates v against d and returns the normalized value for the given
// direction. Failures are reported as *ShapeMismatch; no partial result is
// returned. Cast is pure and safe for concurrent use.
//
// A Ref that the registry cannot resolve is a programming error and panics;
// NewRegistry rejects such tables up front.
func (r *Registry) Cast(v any, d Descriptor, dir Direction) (any, error) {
	w := walker{reg: r, dir: dir, dates: codec.ISODate()}
	out, sm := w.walk(v, true, d, rootPath, "", "", "")
	if sm != nil {
		return nil, sm
	}
	return out, nil
}

// CastNamed is Cast against the registry entry called name. An unknown name
// is reported as ErrUnknownSchema.
func (r *Registry) CastNamed(v any, name string, dir Direction) (any, error) {
	if _, ok := r.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: registry %s has no %q", ErrUnknownSchema, r.name, name)
	}
	return r.Cast(v, Ref{Name: name}, dir)
}

// Cast validates v against a descriptor that contains no references.
func Cast(v any, d Descriptor, dir Direction) (any, error) {
	var r *Registry
	return r.Cast(v, d, dir)
}

type walker struct {
	reg   *Registry
	dir   Direction
	dates codec.Codec[string, time.Time]
}

// walk validates a single value. present is false when an object field is
// absent from its input; a missing value that is accepted stays missing.
// key/parent describe the enclosing object field, ref is set when d was
// reached through a reference.
func (w *walker) walk(v any, present bool, d Descriptor, at *pathRef, key, parent, ref string) (any, *ShapeMismatch) {
	switch t := d.(type) {
	case Any:
		return v, nil

	case Null:
		if !present || v == nil {
			return nil, nil
		}
		return nil, w.fail(CodeInvalidType, t, v, present, at, key, parent)

	case Primitive:
		if !present {
			return nil, w.fail(CodeRequired, t, v, present, at, key, parent)
		}
		if !matchesPrimitive(t.Type, v) {
			return nil, w.fail(CodeInvalidType, t, v, present, at, key, parent)
		}
		return v, nil

	case Ref:
		if w.reg == nil {
			panic(fmt.Sprintf("launchcast: unresolved reference %q (no registry)", t.Name))
		}
		return w.walk(v, present, w.reg.resolve(t), at, key, parent, t.Name)

	case Enum:
		if !present {
			return nil, w.fail(CodeRequired, t, v, present, at, key, parent)
		}
		s, ok := v.(string)
		if !ok {
			return nil, w.fail(CodeInvalidType, t, v, present, at, key, parent)
		}
		if !t.Contains(s) {
			return nil, w.fail(CodeInvalidEnum, t, v, present, at, key, parent)
		}
		return s, nil

	case Union:
		// earlier failures are discarded once a later member matches
		for _, m := range t.Members {
			if out, sm := w.walk(v, present, m, at, key, parent, ""); sm == nil {
				return out, nil
			}
		}
		code := CodeInvalidType
		if !present {
			code = CodeRequired
		}
		return nil, w.fail(code, t, v, present, at, key, parent)

	case Array:
		if !present {
			return nil, w.fail(CodeRequired, t, v, present, at, key, parent)
		}
		arr, ok := v.([]any)
		if !ok {
			return nil, w.fail(CodeInvalidType, t, v, present, at, key, parent)
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			ev, sm := w.walk(el, true, t.Items, at.Index(i), key, parent, "")
			if sm != nil {
				return nil, sm
			}
			out[i] = ev
		}
		return out, nil

	case Date:
		return w.walkDate(t, v, present, at, key, parent)

	case *Object:
		return w.walkObject(t, v, present, at, key, parent, ref)

	default:
		panic(fmt.Sprintf("launchcast: unsupported descriptor %T", d))
	}
}

func (w *walker) walkDate(d Date, v any, present bool, at *pathRef, key, parent string) (any, *ShapeMismatch) {
	if !present || v == nil {
		return nil, nil
	}
	var tm time.Time
	switch t := v.(type) {
	case time.Time:
		tm = t
	case string:
		parsed, err := w.dates.Decode(t)
		if err != nil {
			sm := w.fail(CodeInvalidFormat, d, v, present, at, key, parent)
			sm.Cause = err
			return nil, sm
		}
		tm = parsed
	default:
		// numbers are never read as epoch values
		return nil, w.fail(CodeInvalidType, d, v, present, at, key, parent)
	}
	if w.dir == ToExternal {
		s, err := w.dates.Encode(tm)
		if err != nil {
			sm := w.fail(CodeInvalidFormat, d, v, present, at, key, parent)
			sm.Cause = err
			return nil, sm
		}
		return s, nil
	}
	return tm, nil
}

func (w *walker) walkObject(o *Object, v any, present bool, at *pathRef, key, parent, ref string) (any, *ShapeMismatch) {
	expected := Descriptor(o)
	if ref != "" {
		expected = Ref{Name: ref}
	}
	if !present {
		return nil, w.fail(CodeRequired, expected, v, present, at, key, parent)
	}
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, w.fail(CodeInvalidType, expected, v, present, at, key, parent)
	}
	out := make(map[string]any, len(m))
	for _, f := range o.fields {
		in := f.lookupKey(w.dir)
		fv, seen := m[in]
		res, sm := w.walk(fv, seen, f.Type, at.Field(in), in, ref, "")
		if sm != nil {
			return nil, sm
		}
		if seen {
			out[f.outputKey(w.dir)] = res
		}
	}

	var extra []string
	for k := range m {
		if !o.declares(k, w.dir) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if o.additional == nil {
			return nil, &ShapeMismatch{
				Code:     CodeUnknownKey,
				Path:     at.Field(k).Pointer(),
				Key:      k,
				Parent:   ref,
				Expected: "no additional keys",
				Actual:   renderActual(m[k], true),
			}
		}
		if _, clash := out[k]; clash {
			return nil, &ShapeMismatch{
				Code:     CodeUnknownKey,
				Path:     at.Field(k).Pointer(),
				Key:      k,
				Parent:   ref,
				Expected: "a key distinct from declared fields",
				Actual:   renderActual(m[k], true),
			}
		}
		res, sm := w.walk(m[k], true, o.additional, at.Field(k), k, ref, "")
		if sm != nil {
			return nil, sm
		}
		out[k] = res
	}
	return out, nil
}

func (w *walker) fail(code string, d Descriptor, v any, present bool, at *pathRef, key, parent string) *ShapeMismatch {
	return &ShapeMismatch{
		Code:     code,
		Path:     at.Pointer(),
		Key:      key,
		Parent:   parent,
		Expected: d.describe(),
		Actual:   renderActual(v, present),
	}
}

func matchesPrimitive(t PrimitiveType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeNumber:
		switch v.(type) {
		case float64, float32,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			json.Number:
			return true
		}
	}
	return false
}
