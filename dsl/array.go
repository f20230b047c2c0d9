package dsl

import launchcast "github.com/reoring/launchcast"

// Array matches a JSON array whose elements match items.
func Array(items launchcast.Descriptor) launchcast.Descriptor {
	return launchcast.Array{Items: items}
}
