package filter

import "casetrack/backend/models"

// Field describes one filterable column of a list view. Values holds
// enumerated suggestions for UI autocomplete; it plays no part in evaluation.
type Field struct {
	Name   string           `json:"name"`
	Kind   models.ValueKind `json:"kind"`
	Values []string         `json:"values,omitempty"`
}

// FieldRegistry is the caller-supplied set of fields that exist on a record
// type. The codec validates decoded conditions against it; the engine itself
// never consults it during evaluation.
type FieldRegistry struct {
	fields map[string]Field
	order  []string
}

// NewFieldRegistry builds a registry from the given fields, preserving
// declaration order for display.
func NewFieldRegistry(fields ...Field) *FieldRegistry {
	r := &FieldRegistry{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if _, exists := r.fields[f.Name]; !exists {
			r.order = append(r.order, f.Name)
		}
		r.fields[f.Name] = f
	}
	return r
}

// Has reports whether a field with the given name is registered.
func (r *FieldRegistry) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Lookup returns the field with the given name.
func (r *FieldRegistry) Lookup(name string) (Field, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// Fields returns all registered fields in declaration order.
func (r *FieldRegistry) Fields() []Field {
	out := make([]Field, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// SetValues replaces the autocomplete values of a registered field. Unknown
// names are ignored.
func (r *FieldRegistry) SetValues(name string, values []string) {
	f, ok := r.fields[name]
	if !ok {
		return
	}
	f.Values = values
	r.fields[name] = f
}
