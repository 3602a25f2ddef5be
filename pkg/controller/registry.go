package controller

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/julienschmidt/httprouter"

	"github.com/goliatone/go-adminview/internal/logging"
	"github.com/goliatone/go-adminview/pkg/view"
)

// ViewRenderer writes a view as the response.
type ViewRenderer interface {
	Render(w http.ResponseWriter, r *http.Request, v *view.View) error
}

// MountOptions configures how registered controllers are attached to a router.
type MountOptions struct {
	BasePath     string
	Renderer     ViewRenderer
	Guard        GuardFunc
	// FeatureGuard, when set, builds the guard for each authenticated
	// controller from its feature and takes precedence over Guard.
	FeatureGuard func(feature string) GuardFunc
	Logger       *logging.Logger
	// OnDenied is called with the controller feature when the guard rejects
	// a request.
	OnDenied func(feature string)
}

// Registry collects controller records in registration order.
type Registry struct {
	mu          sync.RWMutex
	controllers []Controller
	names       map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register validates and adds controllers. Names must be unique.
func (r *Registry) Register(controllers ...Controller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range controllers {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, exists := r.names[c.Name]; exists {
			return fmt.Errorf("controller: %q already registered", c.Name)
		}
		r.names[c.Name] = struct{}{}
		r.controllers = append(r.controllers, c)
	}
	return nil
}

// Controllers returns the registered controllers in registration order.
func (r *Registry) Controllers() []Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Controller(nil), r.controllers...)
}

// Features returns the sorted, de-duplicated feature tags.
func (r *Registry) Features() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, c := range r.controllers {
		if c.Feature == "" {
			continue
		}
		if _, ok := seen[c.Feature]; ok {
			continue
		}
		seen[c.Feature] = struct{}{}
		out = append(out, c.Feature)
	}
	sort.Strings(out)
	return out
}

// Mount attaches every route to router and returns the mounted patterns as
// "METHOD /path".
func (r *Registry) Mount(router *httprouter.Router, opts MountOptions) ([]string, error) {
	if router == nil {
		return nil, errors.New("controller: missing router")
	}
	if opts.Renderer == nil {
		return nil, errors.New("controller: missing view renderer")
	}

	var mounted []string
	for _, c := range r.Controllers() {
		guard := opts.Guard
		if c.Authenticated && opts.FeatureGuard != nil {
			guard = opts.FeatureGuard(c.Feature)
		}
		if c.Authenticated && len(c.Routes) > 0 && guard == nil {
			return nil, fmt.Errorf("controller: %s requires authentication but no guard is configured", c.Name)
		}
		for _, route := range c.Routes {
			pattern := MountPath(opts.BasePath, route.Path)
			router.Handler(route.Method, pattern, handlerFor(c, route, guard, opts))
			mounted = append(mounted, route.Method+" "+pattern)
			opts.Logger.Debug("route mounted", "controller", c.Name, "method", route.Method, "path", pattern)
		}
	}
	return mounted, nil
}

func handlerFor(c Controller, route Route, guard GuardFunc, opts MountOptions) http.Handler {
	logger := opts.Logger.WithFields(map[string]any{
		"controller": c.Name,
		"feature":    c.Feature,
	})
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if c.Authenticated {
			if err := guard(req); err != nil {
				if opts.OnDenied != nil {
					opts.OnDenied(c.Feature)
				}
				logger.Debug("request denied", "path", req.URL.Path, "reason", err.Error())
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		v, err := route.Handler(req)
		if err != nil {
			code := statusOf(err, http.StatusInternalServerError)
			if code >= http.StatusInternalServerError {
				logger.Error(err, "controller failed", "path", req.URL.Path)
			}
			writeError(w, err, http.StatusInternalServerError)
			return
		}
		if v == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := opts.Renderer.Render(w, req, v); err != nil {
			logger.Error(err, "render failed", "path", req.URL.Path, "template", v.Template())
			writeError(w, err, http.StatusInternalServerError)
		}
	})
}
