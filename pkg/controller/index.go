package controller

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-adminview/pkg/menu"
	"github.com/goliatone/go-adminview/pkg/view"
)

// ModuleIndexTemplate is the template rendered by ModuleIndex.
const ModuleIndexTemplate = "default-menus"

// ModuleIndex returns the GET route listing a module's menus. It renders
// ModuleIndexTemplate with "moduleName" and "menus" variables and answers 404
// when the module registered no menus.
func ModuleIndex(menus menu.Manager, moduleName string) Route {
	return Route{
		Method:  http.MethodGet,
		Path:    "/modules/" + moduleName,
		Summary: "Module index for " + moduleName,
		Handler: func(*http.Request) (*view.View, error) {
			if menus == nil {
				return nil, NotFound(errors.New("controller: no menu manager"))
			}
			items := menus.Menus(moduleName)
			if len(items) == 0 {
				return nil, NotFound(errors.New("controller: module has no menus"))
			}
			return view.New(ModuleIndexTemplate).
				SetVariable("moduleName", moduleName).
				SetVariable("menus", items), nil
		},
	}
}

// Page returns a GET route that renders template with no extra variables.
func Page(path, template string) Route {
	return Route{
		Method:  http.MethodGet,
		Path:    path,
		Summary: "Render " + template,
		Handler: func(*http.Request) (*view.View, error) {
			return view.New(template), nil
		},
	}
}
