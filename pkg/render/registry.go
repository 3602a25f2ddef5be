package render

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/goliatone/go-adminview/pkg/view"
)

// Registry stores view decorators by name. Decorators run in registration
// order, which matters when several plugins rewrite the same template.
type Registry struct {
	mu         sync.RWMutex
	names      []string
	decorators map[string]view.Decorator
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		decorators: make(map[string]view.Decorator),
	}
}

// Register adds a decorator under name. Duplicate names return an error.
func (r *Registry) Register(name string, decorator view.Decorator) error {
	if decorator == nil {
		return fmt.Errorf("render: decorator is required")
	}
	if name == "" {
		return fmt.Errorf("render: decorator name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decorators[name]; exists {
		return fmt.Errorf("render: decorator %q already registered", name)
	}

	r.decorators[name] = decorator
	r.names = append(r.names, name)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, decorator view.Decorator) {
	if err := r.Register(name, decorator); err != nil {
		panic(err)
	}
}

// Get retrieves a decorator by name.
func (r *Registry) Get(name string) (view.Decorator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decorator, ok := r.decorators[name]
	if !ok {
		return nil, fmt.Errorf("render: decorator %q not found", name)
	}
	return decorator, nil
}

// List returns decorator names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.names...)
}

// Has reports whether a decorator is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.decorators[name]
	return ok
}

// Decorator returns a decorator that runs a snapshot of the registered
// decorators in order.
func (r *Registry) Decorator() view.Decorator {
	r.mu.RLock()
	list := make([]view.Decorator, 0, len(r.names))
	for _, name := range r.names {
		list = append(list, r.decorators[name])
	}
	r.mu.RUnlock()

	return view.DecoratorFunc(func(req *http.Request, v *view.View) {
		for _, d := range list {
			d.Decorate(req, v)
		}
	})
}
