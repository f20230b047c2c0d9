package dsl

import launchcast "github.com/reoring/launchcast"

type objectBuilder struct {
	fields     []launchcast.Field
	additional launchcast.Descriptor
}

type fieldStep struct {
	b   *objectBuilder
	idx int
}

// Object creates a new object builder with safe defaults (undeclared keys rejected).
func Object() *objectBuilder { return &objectBuilder{} }

// Field declares a field read from the external key name. The internal key
// defaults to the same name; use As to rename it.
func (b *objectBuilder) Field(name string, d launchcast.Descriptor) *fieldStep {
	b.fields = append(b.fields, launchcast.Field{External: name, Internal: name, Type: d})
	return &fieldStep{b: b, idx: len(b.fields) - 1}
}

// Additional sets the descriptor for undeclared keys.
func (b *objectBuilder) Additional(d launchcast.Descriptor) *objectBuilder {
	b.additional = d
	return b
}

// UnknownStrict rejects undeclared keys (the default).
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.additional = nil
	return b
}

// Build returns the Object or an error on duplicate keys.
func (b *objectBuilder) Build() (*launchcast.Object, error) {
	return launchcast.NewObject(b.fields, b.additional)
}

// MustBuild is Build that panics on error.
func (b *objectBuilder) MustBuild() *launchcast.Object {
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}

// As sets the internal key of the current field.
func (f *fieldStep) As(internal string) *objectBuilder {
	f.b.fields[f.idx].Internal = internal
	return f.b
}

func (f *fieldStep) Field(name string, d launchcast.Descriptor) *fieldStep { return f.b.Field(name, d) }
func (f *fieldStep) Additional(d launchcast.Descriptor) *objectBuilder     { return f.b.Additional(d) }
func (f *fieldStep) UnknownStrict() *objectBuilder                         { return f.b.UnknownStrict() }
func (f *fieldStep) Build() (*launchcast.Object, error)                    { return f.b.Build() }
func (f *fieldStep) MustBuild() *launchcast.Object                         { return f.b.MustBuild() }
