// Package newadmin is the new admin UI plugin. It contributes no controllers;
// its decorator moves every template except the shared menu page under the
// newadmin namespace.
package newadmin

import (
	"github.com/goliatone/go-adminview/pkg/decorate"
	"github.com/goliatone/go-adminview/pkg/plugin"
)

const Name = "newadmin"

// DecoratorOptions returns the plugin's decoration policy.
func DecoratorOptions() []decorate.OptionFn {
	return []decorate.OptionFn{
		decorate.WithMode(decorate.ModeExcludeRewrite),
		decorate.WithPrefix(decorate.DefaultPrefix),
		decorate.WithExclusions(decorate.DefaultExclusions...),
	}
}

// New builds the module.
func New(deps plugin.Deps) (plugin.Module, error) {
	opts := append(DecoratorOptions(), deps.Decorator...)
	return plugin.Module{
		Name:      Name,
		Decorator: decorate.New(opts...),
	}, nil
}

var _ plugin.Factory = New
