package launchcast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a descriptor variant.
type Kind int

const (
	KindPrimitive Kind = iota
	KindNull
	KindAny
	KindRef
	KindArray
	KindUnion
	KindEnum
	KindObject
	KindDate
)

// Descriptor is a declarative description of an expected JSON shape. The set
// of variants is closed: only the types in this file implement it.
type Descriptor interface {
	Kind() Kind
	// describe renders the descriptor for error messages.
	describe() string
}

// PrimitiveType names a JSON scalar type.
type PrimitiveType int

const (
	TypeString PrimitiveType = iota
	TypeNumber
	TypeBool
)

func (t PrimitiveType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Primitive matches a string, number or boolean. Values are never coerced
// between scalar types.
type Primitive struct{ Type PrimitiveType }

func (Primitive) Kind() Kind         { return KindPrimitive }
func (p Primitive) describe() string { return p.Type.String() }

// Null matches the literal null.
type Null struct{}

func (Null) Kind() Kind       { return KindNull }
func (Null) describe() string { return "null" }

// Any accepts every value unchanged.
type Any struct{}

func (Any) Kind() Kind       { return KindAny }
func (Any) describe() string { return "any" }

// Ref points at a named entry of the Registry.
type Ref struct{ Name string }

func (Ref) Kind() Kind         { return KindRef }
func (r Ref) describe() string { return r.Name }

// Array matches a JSON array whose elements all match Items.
type Array struct{ Items Descriptor }

func (Array) Kind() Kind       { return KindArray }
func (Array) describe() string { return "array" }

// Union matches the first member (in order) that accepts the value.
type Union struct{ Members []Descriptor }

func (Union) Kind() Kind { return KindUnion }

func (u Union) describe() string {
	if len(u.Members) == 2 {
		// T|null renders as "optional T" regardless of member order.
		if _, ok := u.Members[0].(Null); ok {
			return "optional " + u.Members[1].describe()
		}
		if _, ok := u.Members[1].(Null); ok {
			return "optional " + u.Members[0].describe()
		}
	}
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.describe()
	}
	return "one of [" + strings.Join(parts, ", ") + "]"
}

// Enum matches one of the listed string literals exactly.
type Enum struct{ Values []string }

func (Enum) Kind() Kind { return KindEnum }

func (e Enum) describe() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = strconv.Quote(v)
	}
	return "one of [" + strings.Join(parts, ", ") + "]"
}

// Contains reports whether s is one of the enum literals.
func (e Enum) Contains(s string) bool {
	for _, v := range e.Values {
		if v == s {
			return true
		}
	}
	return false
}

// Date matches an ISO-8601 timestamp string (or null) and normalizes it.
// Numbers are rejected.
type Date struct{}

func (Date) Kind() Kind       { return KindDate }
func (Date) describe() string { return "date" }

// Field maps an external (JSON) key to an internal key.
type Field struct {
	External string
	Internal string
	Type     Descriptor
}

// Object matches a JSON object with declared fields. Additional validates keys
// that are not declared; when nil, undeclared keys are rejected.
type Object struct {
	fields     []Field
	additional Descriptor
	byExternal map[string]int
	byInternal map[string]int
}

// NewObject builds an Object. External keys must be unique and internal keys
// must be unique.
func NewObject(fields []Field, additional Descriptor) (*Object, error) {
	o := &Object{
		fields:     append([]Field(nil), fields...),
		additional: additional,
		byExternal: make(map[string]int, len(fields)),
		byInternal: make(map[string]int, len(fields)),
	}
	for i, f := range o.fields {
		if f.Type == nil {
			return nil, fmt.Errorf("launchcast: field %q has no descriptor", f.External)
		}
		if f.Internal == "" {
			o.fields[i].Internal = f.External
			f.Internal = f.External
		}
		if _, dup := o.byExternal[f.External]; dup {
			return nil, fmt.Errorf("launchcast: duplicate external key %q", f.External)
		}
		if _, dup := o.byInternal[f.Internal]; dup {
			return nil, fmt.Errorf("launchcast: duplicate internal key %q", f.Internal)
		}
		o.byExternal[f.External] = i
		o.byInternal[f.Internal] = i
	}
	return o, nil
}

func (*Object) Kind() Kind       { return KindObject }
func (*Object) describe() string { return "object" }

// Fields returns a copy of the declared fields in declaration order.
func (o *Object) Fields() []Field { return append([]Field(nil), o.fields...) }

// Additional returns the descriptor for undeclared keys (nil = rejected).
func (o *Object) Additional() Descriptor { return o.additional }

// lookupKey returns the key read from the input for the given direction.
func (f Field) lookupKey(dir Direction) string {
	if dir == ToExternal {
		return f.Internal
	}
	return f.External
}

// outputKey returns the key written to the result for the given direction.
func (f Field) outputKey(dir Direction) string {
	if dir == ToExternal {
		return f.External
	}
	return f.Internal
}

func (o *Object) declares(key string, dir Direction) bool {
	if dir == ToExternal {
		_, ok := o.byInternal[key]
		return ok
	}
	_, ok := o.byExternal[key]
	return ok
}
