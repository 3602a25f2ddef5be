package app

import (
	"io/fs"

	"github.com/goliatone/go-adminview/internal/logging"
	"github.com/goliatone/go-adminview/internal/metrics"
	"github.com/goliatone/go-adminview/pkg/plugin"
	"github.com/goliatone/go-adminview/plugins/enhancement"
	"github.com/goliatone/go-adminview/plugins/newadmin"
)

// ModuleSpec names a plugin factory so its config section can be found.
type ModuleSpec struct {
	Name    string
	Factory plugin.Factory
}

// DefaultModules installs newadmin before enhancement so the enhancement
// prefix rule sees already namespaced templates and leaves them alone.
func DefaultModules() []ModuleSpec {
	return []ModuleSpec{
		{Name: newadmin.Name, Factory: newadmin.New},
		{Name: enhancement.Name, Factory: enhancement.New},
	}
}

// Option customizes Boot.
type Option func(*options)

type options struct {
	modules   []ModuleSpec
	logger    *logging.Logger
	metrics   *metrics.Metrics
	templates []fs.FS
	static    []fs.FS
}

// WithModules replaces the default module list. Order is decorator order.
func WithModules(modules ...ModuleSpec) Option {
	return func(o *options) {
		o.modules = append([]ModuleSpec{}, modules...)
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTemplates adds a template source searched after the configured
// template directory and before the embedded defaults.
func WithTemplates(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.templates = append(o.templates, fsys)
		}
	}
}

// WithStatic adds a static file source searched before the embedded
// stylesheets.
func WithStatic(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.static = append(o.static, fsys)
		}
	}
}
