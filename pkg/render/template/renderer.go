package template

import (
	"io"
)

// TemplateRenderer resolves a template identifier and renders it with data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// ResourceLookup reports whether a template identifier resolves to a template
// resource without rendering it.
type ResourceLookup interface {
	Exists(name string) (bool, error)
}

// Engine is a TemplateRenderer that can also answer existence probes.
type Engine interface {
	TemplateRenderer
	ResourceLookup
}
