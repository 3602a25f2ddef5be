// Package plugin defines the record an admin module hands to the host: its
// controllers and the view decorator it contributes.
package plugin

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-adminview/pkg/controller"
	"github.com/goliatone/go-adminview/pkg/decorate"
	"github.com/goliatone/go-adminview/pkg/menu"
	"github.com/goliatone/go-adminview/pkg/view"
)

// Deps are the host capabilities a module may use.
type Deps struct {
	Menus menu.Manager
	// Decorator options are applied after the module's own defaults.
	Decorator []decorate.OptionFn
}

// Module is the data-only registration of one admin plugin.
type Module struct {
	Name        string
	Controllers []controller.Controller
	Decorator   view.Decorator
}

// Validate checks the module name and its controllers.
func (m Module) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("plugin: module name is required")
	}
	for _, c := range m.Controllers {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("plugin: module %q: %w", m.Name, err)
		}
	}
	return nil
}

// Factory builds a Module from host dependencies.
type Factory func(deps Deps) (Module, error)

// Install registers every module's controllers and decorator. Modules are
// installed in order, which is also the decorator order.
func Install(controllers *controller.Registry, decorators Decorators, modules ...Module) error {
	for _, m := range modules {
		if err := m.Validate(); err != nil {
			return err
		}
		if controllers != nil {
			if err := controllers.Register(m.Controllers...); err != nil {
				return fmt.Errorf("plugin: module %q: %w", m.Name, err)
			}
		}
		if decorators != nil && m.Decorator != nil {
			if err := decorators.Register(m.Name, m.Decorator); err != nil {
				return fmt.Errorf("plugin: module %q: %w", m.Name, err)
			}
		}
	}
	return nil
}

// Decorators is the subset of render.Registry used by Install.
type Decorators interface {
	Register(name string, decorator view.Decorator) error
}
