// Package app wires the admin host: configuration in, HTTP handler out.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/goliatone/go-adminview/internal/config"
	"github.com/goliatone/go-adminview/internal/logging"
	"github.com/goliatone/go-adminview/internal/metrics"
	"github.com/goliatone/go-adminview/pkg/assets"
	"github.com/goliatone/go-adminview/pkg/auth"
	"github.com/goliatone/go-adminview/pkg/controller"
	"github.com/goliatone/go-adminview/pkg/decorate"
	"github.com/goliatone/go-adminview/pkg/menu"
	"github.com/goliatone/go-adminview/pkg/plugin"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template/gotemplate"
)

// DefaultBasePath prefixes controller routes when the config sets none.
const DefaultBasePath = "/admin"

// MetricsPath serves prometheus metrics when enabled.
const MetricsPath = "/metrics"

// App is a booted admin host.
type App struct {
	cfg         config.Config
	logger      *logging.Logger
	metrics     *metrics.Metrics
	auth        *auth.Authenticator
	menus       *menu.Registry
	controllers *controller.Registry
	renderer    *render.Renderer
	routes      []string
	handler     http.Handler
}

// Boot builds every host component from cfg and mounts the modules.
func Boot(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := &options{modules: DefaultModules()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	if o.metrics == nil {
		o.metrics = metrics.New()
	}

	a := &App{
		cfg:         *cfg,
		logger:      o.logger,
		metrics:     o.metrics,
		menus:       menu.NewRegistry(),
		controllers: controller.NewRegistry(),
	}

	engine, err := newEngine(cfg.Server.TemplateDir, o.templates)
	if err != nil {
		return nil, err
	}

	if err := loadMenus(a.menus, cfg.Menus); err != nil {
		return nil, err
	}

	a.auth, err = auth.New(auth.Config{
		Secret:     cfg.Auth.Secret,
		Issuer:     cfg.Auth.Issuer,
		CookieName: cfg.Auth.Cookie,
		TTL:        cfg.Auth.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	decorators := render.NewRegistry()
	modules, err := a.buildModules(o.modules, engine)
	if err != nil {
		return nil, err
	}
	if err := plugin.Install(a.controllers, decorators, modules...); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a.renderer, err = render.New(engine,
		render.WithDecorators(decorators),
		render.WithLogger(a.logger),
		render.WithObserver(a.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	basePath := cfg.Server.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	router := httprouter.New()
	a.routes, err = a.controllers.Mount(router, controller.MountOptions{
		BasePath:     basePath,
		Renderer:     a.renderer,
		FeatureGuard: a.auth.FeatureGuard,
		Logger:       a.logger,
		OnDenied:     a.metrics.Denied,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if cfg.Server.Metrics {
		router.Handler(http.MethodGet, MetricsPath, a.metrics.Handler())
	}

	static := layeredFS(append([]fs.FS{}, o.static...))
	if dir := cfg.Server.StaticDir; dir != "" && isDir(dir) {
		static = append(static, os.DirFS(dir))
	}
	static = append(static, assets.StaticFS())
	router.NotFound = http.FileServerFS(static)

	a.handler = accessLog(a.logger, router)

	a.logger.Info("admin host booted",
		"modules", len(modules),
		"routes", len(a.routes),
		"decorators", decorators.List(),
		"features", a.controllers.Features(),
	)
	return a, nil
}

func (a *App) buildModules(specs []ModuleSpec, lookup *gotemplate.Engine) ([]plugin.Module, error) {
	modules := make([]plugin.Module, 0, len(specs))
	for _, spec := range specs {
		if spec.Factory == nil {
			return nil, fmt.Errorf("app: module %q has no factory", spec.Name)
		}
		pc := a.cfg.Plugins[spec.Name]
		if pc.Disabled {
			a.logger.Info("module disabled", "module", spec.Name)
			continue
		}
		overrides, err := decoratorOptions(pc, lookup)
		if err != nil {
			return nil, fmt.Errorf("app: module %q: %w", spec.Name, err)
		}
		m, err := spec.Factory(plugin.Deps{Menus: a.menus, Decorator: overrides})
		if err != nil {
			return nil, fmt.Errorf("app: module %q: %w", spec.Name, err)
		}
		if ignoredStylesheets(m, pc) {
			a.logger.Warn("stylesheets ignored by decorator mode",
				"module", spec.Name,
				"mode", string(decorate.ModeExcludeRewrite),
			)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// ignoredStylesheets reports configured stylesheets that the module's
// compiled decorator will never inject.
func ignoredStylesheets(m plugin.Module, pc config.Plugin) bool {
	if len(pc.Stylesheets) == 0 && pc.Theme == nil {
		return false
	}
	rule, ok := m.Decorator.(*decorate.Rule)
	return ok && rule.Mode() == decorate.ModeExcludeRewrite
}

func newEngine(templateDir string, extra []fs.FS) (*gotemplate.Engine, error) {
	var opts []gotemplate.Option
	if templateDir != "" && isDir(templateDir) {
		opts = append(opts, gotemplate.WithFS(os.DirFS(templateDir)))
	}
	for _, fsys := range extra {
		opts = append(opts, gotemplate.WithFS(fsys))
	}
	opts = append(opts, gotemplate.WithFS(assets.TemplatesFS()))
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("app: template engine: %w", err)
	}
	return engine, nil
}

func loadMenus(registry *menu.Registry, menus map[string][]config.MenuItem) error {
	for module, items := range menus {
		converted := make([]menu.Item, 0, len(items))
		for _, item := range items {
			converted = append(converted, menuItem(item))
		}
		if err := registry.Add(module, converted...); err != nil {
			return fmt.Errorf("app: menus %q: %w", module, err)
		}
	}
	return nil
}

func menuItem(item config.MenuItem) menu.Item {
	out := menu.Item{
		Name:    item.Name,
		Label:   item.Label,
		Path:    item.Path,
		Icon:    item.Icon,
		Feature: item.Feature,
		Order:   item.Order,
	}
	for _, child := range item.Children {
		out.Children = append(out.Children, menuItem(child))
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Routes returns the mounted controller routes as "METHOD /path".
func (a *App) Routes() []string { return append([]string(nil), a.routes...) }

// Controllers returns the controller registry.
func (a *App) Controllers() *controller.Registry { return a.controllers }

// Authenticator returns the token authenticator.
func (a *App) Authenticator() *auth.Authenticator { return a.auth }

// Run listens on the configured address until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", a.cfg.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("admin host listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.logger.Info("admin host shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app: serve: %w", err)
	}
	return nil
}
