// Package enhancement is the admin enhancement plugin: a module index page,
// the settings feature, and a decorator that moves role templates under the
// newadmin namespace while injecting the abaculus stylesheets.
package enhancement

import (
	"github.com/goliatone/go-adminview/pkg/controller"
	"github.com/goliatone/go-adminview/pkg/decorate"
	"github.com/goliatone/go-adminview/pkg/plugin"
)

const (
	Name = "enhancement"

	// MenuModule is the menu manager module listed by the index page.
	MenuModule = "enhancement_admin"

	FeatureSettings = "settings_management"

	SettingsTemplate = "settings/general"
)

// DefaultStylesheets are injected into every decorated view.
var DefaultStylesheets = []string{"/css/abaculus/index.css", "/css/theme.css"}

// DecoratorOptions returns the plugin's decoration policy.
func DecoratorOptions() []decorate.OptionFn {
	return []decorate.OptionFn{
		decorate.WithMode(decorate.ModePrefixRewrite),
		decorate.WithPrefix(decorate.DefaultPrefix),
		decorate.WithMatchPrefix(decorate.DefaultMatchPrefix),
		decorate.WithStylesheets(DefaultStylesheets...),
	}
}

// Controllers returns the plugin's controller records.
func Controllers(deps plugin.Deps) []controller.Controller {
	return []controller.Controller{
		{
			Name:          "enhancement.index",
			Feature:       MenuModule,
			Authenticated: true,
			Routes:        []controller.Route{controller.ModuleIndex(deps.Menus, MenuModule)},
		},
		{
			Name:          "enhancement.settings",
			Feature:       FeatureSettings,
			Authenticated: true,
			Routes:        []controller.Route{controller.Page("/settings", SettingsTemplate)},
		},
	}
}

// New builds the module.
func New(deps plugin.Deps) (plugin.Module, error) {
	opts := append(DecoratorOptions(), deps.Decorator...)
	return plugin.Module{
		Name:        Name,
		Controllers: Controllers(deps),
		Decorator:   decorate.New(opts...),
	}, nil
}

var _ plugin.Factory = New
