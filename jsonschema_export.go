package launchcast

import (
	"fmt"

	js "github.com/reoring/launchcast/jsonschema"
)

// JSONSchema projects the registry into a JSON Schema document rooted at the
// entry called root. Every entry is emitted under $defs; properties use the
// external keys.
func (r *Registry) JSONSchema(root string) (*js.Schema, error) {
	if _, ok := r.Lookup(root); !ok {
		return nil, fmt.Errorf("%w: registry %s has no %q", ErrUnknownSchema, r.name, root)
	}
	defs := make(map[string]*js.Schema, len(r.schemas))
	for _, name := range r.Names() {
		s := toJSONSchema(r.schemas[name])
		s.Title = name
		defs[name] = s
	}
	return &js.Schema{Schema: js.Draft, Ref: "#/$defs/" + root, Defs: defs}, nil
}

func toJSONSchema(d Descriptor) *js.Schema {
	switch t := d.(type) {
	case Any:
		return &js.Schema{}
	case Null:
		return &js.Schema{Type: "null"}
	case Primitive:
		return &js.Schema{Type: t.Type.String()}
	case Ref:
		return &js.Schema{Ref: "#/$defs/" + t.Name}
	case Enum:
		vals := make([]any, len(t.Values))
		for i, v := range t.Values {
			vals[i] = v
		}
		return &js.Schema{Type: "string", Enum: vals}
	case Array:
		return &js.Schema{Type: "array", Items: toJSONSchema(t.Items)}
	case Union:
		out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(t.Members))}
		for _, m := range t.Members {
			out.AnyOf = append(out.AnyOf, toJSONSchema(m))
		}
		return out
	case Date:
		return &js.Schema{AnyOf: []*js.Schema{{Type: "string", Format: "date-time"}, {Type: "null"}}}
	case *Object:
		out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(t.fields))}
		for _, f := range t.fields {
			out.Properties[f.External] = toJSONSchema(f.Type)
			if !acceptsMissing(f.Type) {
				out.Required = append(out.Required, f.External)
			}
		}
		if t.additional == nil {
			out.AdditionalProperties = false
		} else if _, ok := t.additional.(Any); ok {
			out.AdditionalProperties = true
		} else {
			out.AdditionalProperties = toJSONSchema(t.additional)
		}
		return out
	default:
		return &js.Schema{}
	}
}

// acceptsMissing reports whether an absent object field validates against d.
func acceptsMissing(d Descriptor) bool {
	switch t := d.(type) {
	case Null, Any, Date:
		return true
	case Union:
		for _, m := range t.Members {
			if acceptsMissing(m) {
				return true
			}
		}
	}
	return false
}
