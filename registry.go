package launchcast

import (
	"fmt"
	"sort"
)

// Registry is an immutable mapping from schema name to Object or Enum
// descriptor. It has no mutation API; build it once at startup.
type Registry struct {
	name    string
	schemas map[string]Descriptor
}

// NewRegistry validates and copies the entries. Every entry must be an
// *Object or an Enum, and every Ref reachable from any entry must resolve.
func NewRegistry(name string, entries map[string]Descriptor) (*Registry, error) {
	r := &Registry{name: name, schemas: make(map[string]Descriptor, len(entries))}
	for k, d := range entries {
		switch d.(type) {
		case *Object, Enum:
		default:
			return nil, fmt.Errorf("launchcast: registry %s: entry %q must be an object or enum, got %s", name, k, kindName(d))
		}
		r.schemas[k] = d
	}
	for _, k := range r.Names() {
		if err := r.checkRefs(r.schemas[k], k); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error. Intended for package-level
// tables.
func MustRegistry(name string, entries map[string]Descriptor) *Registry {
	r, err := NewRegistry(name, entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// Lookup returns the named entry.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.schemas[name]
	return d, ok
}

// Names returns the entry names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// resolve follows a reference. A dangling reference is a programming error.
func (r *Registry) resolve(ref Ref) Descriptor {
	d, ok := r.schemas[ref.Name]
	if !ok {
		panic(fmt.Sprintf("launchcast: registry %s: unresolved reference %q", r.name, ref.Name))
	}
	return d
}

func (r *Registry) checkRefs(d Descriptor, owner string) error {
	switch t := d.(type) {
	case nil:
		return fmt.Errorf("launchcast: registry %s: nil descriptor in %q", r.name, owner)
	case Ref:
		if _, ok := r.schemas[t.Name]; !ok {
			return fmt.Errorf("launchcast: registry %s: %q references unknown schema %q", r.name, owner, t.Name)
		}
	case Array:
		return r.checkRefs(t.Items, owner)
	case Union:
		for _, m := range t.Members {
			if err := r.checkRefs(m, owner); err != nil {
				return err
			}
		}
	case *Object:
		for _, f := range t.fields {
			if err := r.checkRefs(f.Type, owner); err != nil {
				return err
			}
		}
		if t.additional != nil {
			return r.checkRefs(t.additional, owner)
		}
	}
	return nil
}

func kindName(d Descriptor) string {
	if d == nil {
		return "nil"
	}
	switch d.Kind() {
	case KindPrimitive:
		return "primitive"
	case KindNull:
		return "null"
	case KindAny:
		return "any"
	case KindRef:
		return "ref"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}
