// Package launchcast validates decoded JSON against declarative descriptors and
// casts it into a normalized internal shape.
//
// - Descriptors form a closed set of variants (Primitive/Null/Any/Ref/Array/Union/Enum/Object/Date)
// - A Registry holds named Object/Enum descriptors and is immutable once built
// - Cast walks a value against a descriptor in one of two directions (ToInternal/ToExternal)
// - Every failure is a *ShapeMismatch carrying a JSON Pointer, the expected shape and the actual value
//
// Design policy:
// - Keep only public APIs in the root package; put token scanning under internal/.
// - Place the builder DSL under dsl/, codecs under codec/, and the CLI under cmd/launchcast.
// - Data models for the SpaceX API live under spacex/ (v5) and spacex/legacy (v3).
//
// Typical usage:
//
//	reg := spacex.Registry
//	v, err := launchcast.ParseBytes(reg, "Launch", data)
//	l, err := launchcast.Decode[spacex.Launch](reg, "Launch", raw)
//	out, err := launchcast.EncodeJSON(reg, "Launch", v)
package launchcast
