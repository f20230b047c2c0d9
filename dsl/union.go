package dsl

import launchcast "github.com/reoring/launchcast"

// Union tries members in order; the first match wins.
func Union(members ...launchcast.Descriptor) launchcast.Descriptor {
	return launchcast.Union{Members: append([]launchcast.Descriptor(nil), members...)}
}

// Nullable is Union(d, Null()).
func Nullable(d launchcast.Descriptor) launchcast.Descriptor { return Union(d, Null()) }

// Enum matches one of the given string literals.
func Enum(values ...string) launchcast.Descriptor {
	return launchcast.Enum{Values: append([]string(nil), values...)}
}
