package view

import "sort"

// View bundles the template identifier that should be rendered with the named
// variables passed to the template engine. A View is owned by the request that
// produced it and is not safe for concurrent mutation.
type View struct {
	template  string
	variables map[string]any
}

// New creates a view for the given template identifier.
func New(template string) *View {
	return &View{
		template:  template,
		variables: make(map[string]any),
	}
}

// Template returns the current template identifier.
func (v *View) Template() string {
	if v == nil {
		return ""
	}
	return v.template
}

// SetTemplate replaces the template identifier verbatim.
func (v *View) SetTemplate(template string) {
	if v == nil {
		return
	}
	v.template = template
}

// SetVariable stores value under name, replacing any previous value.
func (v *View) SetVariable(name string, value any) *View {
	if v == nil {
		return nil
	}
	if v.variables == nil {
		v.variables = make(map[string]any)
	}
	v.variables[name] = value
	return v
}

// AppendVariable appends values to the list stored under name. A missing
// variable becomes a new list; a scalar already stored under name becomes the
// first element of the list. The stored list is always a fresh []any, so a
// slice seeded by the caller is never written through.
func (v *View) AppendVariable(name string, values ...any) *View {
	if v == nil {
		return nil
	}
	if v.variables == nil {
		v.variables = make(map[string]any)
	}

	var list []any
	switch existing := v.variables[name].(type) {
	case nil:
		list = make([]any, 0, len(values))
	case []any:
		list = make([]any, 0, len(existing)+len(values))
		list = append(list, existing...)
	case []string:
		list = make([]any, 0, len(existing)+len(values))
		for _, item := range existing {
			list = append(list, item)
		}
	default:
		list = make([]any, 0, len(values)+1)
		list = append(list, existing)
	}
	v.variables[name] = append(list, values...)
	return v
}

// Variable returns the value stored under name.
func (v *View) Variable(name string) (any, bool) {
	if v == nil || v.variables == nil {
		return nil, false
	}
	value, ok := v.variables[name]
	return value, ok
}

// Strings returns the string elements of the list stored under name, skipping
// anything that is not a string.
func (v *View) Strings(name string) []string {
	value, ok := v.Variable(name)
	if !ok {
		return nil
	}
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Variables returns a shallow copy of the variable map suitable for use as a
// template context.
func (v *View) Variables() map[string]any {
	if v == nil || len(v.variables) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(v.variables))
	for key, value := range v.variables {
		out[key] = value
	}
	return out
}

// Names returns the sorted variable names.
func (v *View) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, 0, len(v.variables))
	for name := range v.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
