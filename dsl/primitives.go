package dsl

import launchcast "github.com/reoring/launchcast"

// String matches a JSON string.
func String() launchcast.Descriptor { return launchcast.Primitive{Type: launchcast.TypeString} }

// Number matches a JSON number.
func Number() launchcast.Descriptor { return launchcast.Primitive{Type: launchcast.TypeNumber} }

// Bool matches a JSON boolean.
func Bool() launchcast.Descriptor { return launchcast.Primitive{Type: launchcast.TypeBool} }

// Null matches the literal null (or an absent field).
func Null() launchcast.Descriptor { return launchcast.Null{} }

// Any accepts every value.
func Any() launchcast.Descriptor { return launchcast.Any{} }

// Date matches an ISO-8601 string or null.
func Date() launchcast.Descriptor { return launchcast.Date{} }

// Ref points at a registry entry.
func Ref(name string) launchcast.Descriptor { return launchcast.Ref{Name: name} }
