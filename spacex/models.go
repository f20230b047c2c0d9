package spacex

import (
	"sort"

	launchcast "github.com/reoring/launchcast"
	"github.com/reoring/launchcast/spacex/legacy"
)

// Model names accepted by Model.
const (
	ModelV5 = "v5"
	ModelV3 = "v3"
)

var models = map[string]*launchcast.Registry{
	ModelV5: Registry,
	ModelV3: legacy.Registry,
}

// Model returns the registry for an API version ("v5" or "v3").
func Model(name string) (*launchcast.Registry, bool) {
	r, ok := models[name]
	return r, ok
}

// ModelNames lists the known API versions.
func ModelNames() []string {
	out := make([]string, 0, len(models))
	for k := range models {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
