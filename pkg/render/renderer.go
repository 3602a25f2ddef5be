package render

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-adminview/internal/logging"
	"github.com/goliatone/go-adminview/pkg/render/template"
	"github.com/goliatone/go-adminview/pkg/view"
)

// Observer receives render pipeline events. Implementations must be safe for
// concurrent use.
type Observer interface {
	Decorated(original, final string)
	Rendered(template string, elapsed time.Duration, err error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDecorators sets the registry whose decorators run before every render.
func WithDecorators(registry *Registry) Option {
	return func(r *Renderer) {
		r.decorators = registry
	}
}

// WithLogger sets the logger used for render tracing.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithObserver sets the metrics observer.
func WithObserver(observer Observer) Option {
	return func(r *Renderer) {
		r.observer = observer
	}
}

// WithContentType overrides the response content type.
func WithContentType(contentType string) Option {
	return func(r *Renderer) {
		if contentType != "" {
			r.contentType = contentType
		}
	}
}

// Renderer turns views into HTML responses: it runs every registered decorator
// exactly once, then resolves the resulting template identifier through the
// template engine.
type Renderer struct {
	engine      template.TemplateRenderer
	decorators  *Registry
	logger      *logging.Logger
	observer    Observer
	contentType string
	now         func() time.Time
}

// New constructs a Renderer around engine.
func New(engine template.TemplateRenderer, options ...Option) (*Renderer, error) {
	if engine == nil {
		return nil, errors.New("render: template engine is required")
	}
	r := &Renderer{
		engine:      engine,
		contentType: "text/html; charset=utf-8",
		now:         time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.decorators == nil {
		r.decorators = NewRegistry()
	}
	return r, nil
}

// Decorators exposes the decorator registry.
func (r *Renderer) Decorators() *Registry {
	return r.decorators
}

// Decorate runs the registered decorators over v.
func (r *Renderer) Decorate(req *http.Request, v *view.View) {
	original := v.Template()
	r.decorators.Decorator().Decorate(req, v)
	final := v.Template()

	if r.observer != nil {
		r.observer.Decorated(original, final)
	}
	if original != final {
		r.logger.Debug("view template rewritten", "from", original, "to", final)
	}
}

// Render decorates v and writes the rendered template to w. Nothing is
// written when template resolution fails; the error is returned so the host
// can choose the error page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, v *view.View) error {
	if v == nil {
		return errors.New("render: view is required")
	}
	start := r.now()

	r.Decorate(req, v)

	var buf bytes.Buffer
	_, err := r.engine.RenderTemplate(v.Template(), v.Variables(), &buf)
	if r.observer != nil {
		r.observer.Rendered(v.Template(), r.now().Sub(start), err)
	}
	if err != nil {
		return fmt.Errorf("render: template %q: %w", v.Template(), err)
	}

	w.Header().Set("Content-Type", r.contentType)
	w.WriteHeader(http.StatusOK)
	if req != nil && req.Method == http.MethodHead {
		return nil
	}
	_, err = w.Write(buf.Bytes())
	return err
}
