package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/goliatone/go-adminview/pkg/view"
)

// Handler builds the view for a request. Returning a nil view with a nil
// error responds 204.
type Handler func(r *http.Request) (*view.View, error)

// Route binds a handler to a method and path relative to the mount base path.
// Paths use httprouter syntax (":name", "*rest").
type Route struct {
	Method  string
	Path    string
	Summary string
	Handler Handler
}

// Controller is the registration record for one admin controller.
type Controller struct {
	Name          string
	Feature       string
	Authenticated bool
	Routes        []Route
}

// Validate checks the controller record is mountable.
func (c Controller) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("controller: name is required")
	}
	for i, route := range c.Routes {
		if route.Handler == nil {
			return fmt.Errorf("controller: %s: route %d has no handler", c.Name, i)
		}
		if !strings.HasPrefix(route.Path, "/") {
			return fmt.Errorf("controller: %s: route path %q must start with /", c.Name, route.Path)
		}
		switch route.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return fmt.Errorf("controller: %s: unsupported method %q", c.Name, route.Method)
		}
	}
	return nil
}

// Param returns the named path parameter captured by the router.
func Param(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// MountPath joins basePath and routePath into a router pattern.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "/" {
		return basePath
	}
	return basePath + routePath
}
