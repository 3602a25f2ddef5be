package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julienschmidt/httprouter"

	"github.com/goliatone/go-adminview/pkg/menu"
	"github.com/goliatone/go-adminview/pkg/view"
)

type stubRenderer struct {
	views []*view.View
	err   error
}

func (s *stubRenderer) Render(w http.ResponseWriter, _ *http.Request, v *view.View) error {
	if s.err != nil {
		return s.err
	}
	s.views = append(s.views, v)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, v.Template())
	return nil
}

func allowAll(*http.Request) error { return nil }

func denyAll(*http.Request) error {
	return StatusError{Code: http.StatusUnauthorized}
}

func TestMountPath_JoinsBasePath(t *testing.T) {
	cases := []struct{ base, route, want string }{
		{"/admin", "/settings", "/admin/settings"},
		{"admin", "settings", "/admin/settings"},
		{"/admin/", "/", "/admin"},
		{"", "/x", "/x"},
		{"/", "", "/"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base, tc.route); got != tc.want {
			t.Fatalf("MountPath(%q, %q): want %q, got %q", tc.base, tc.route, tc.want, got)
		}
	}
}

func TestRegistry_RegisterValidates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Controller{}); err == nil {
		t.Fatalf("expected missing name error")
	}
	if err := r.Register(Controller{Name: "x", Routes: []Route{{Method: http.MethodGet, Path: "/x"}}}); err == nil {
		t.Fatalf("expected missing handler error")
	}
	if err := r.Register(Controller{Name: "x", Routes: []Route{Page("x", "t")}}); err == nil {
		t.Fatalf("expected relative path error")
	}
	bad := Page("/x", "t")
	bad.Method = "TRACE"
	if err := r.Register(Controller{Name: "x", Routes: []Route{bad}}); err == nil {
		t.Fatalf("expected method error")
	}
	if err := r.Register(Controller{Name: "settings", Feature: "settings_management", Authenticated: true}); err != nil {
		t.Fatalf("route-less controller should register: %v", err)
	}
	if err := r.Register(Controller{Name: "settings"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestRegistry_Features(t *testing.T) {
	r := NewRegistry()
	err := r.Register(
		Controller{Name: "a", Feature: "settings_management"},
		Controller{Name: "b", Feature: "enhancement_admin"},
		Controller{Name: "c", Feature: "settings_management"},
		Controller{Name: "d"},
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	want := []string{"enhancement_admin", "settings_management"}
	if diff := cmp.Diff(want, r.Features()); diff != "" {
		t.Fatalf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_MountRendersViews(t *testing.T) {
	menus := menu.NewRegistry()
	if err := menus.Add("enhancement_admin", menu.Item{Name: "settings", Path: "/admin/settings"}); err != nil {
		t.Fatalf("add menus: %v", err)
	}

	r := NewRegistry()
	err := r.Register(
		Controller{
			Name:          "enhancement.index",
			Feature:       "enhancement_admin",
			Authenticated: true,
			Routes:        []Route{ModuleIndex(menus, "enhancement_admin")},
		},
		Controller{
			Name:   "users",
			Routes: []Route{{Method: http.MethodGet, Path: "/users/:id", Handler: func(req *http.Request) (*view.View, error) {
				return view.New("users/show").SetVariable("id", Param(req, "id")), nil
			}}},
		},
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer := &stubRenderer{}
	router := httprouter.New()
	mounted, err := r.Mount(router, MountOptions{BasePath: "/admin", Renderer: renderer, Guard: allowAll})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	wantMounted := []string{"GET /admin/modules/enhancement_admin", "GET /admin/users/:id"}
	if diff := cmp.Diff(wantMounted, mounted); diff != "" {
		t.Fatalf("mounted mismatch (-want +got):\n%s", diff)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/modules/enhancement_admin", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != ModuleIndexTemplate {
		t.Fatalf("unexpected index response: %d %q", rec.Code, rec.Body.String())
	}
	name, _ := renderer.views[0].Variable("moduleName")
	if name != "enhancement_admin" {
		t.Fatalf("unexpected module name %v", name)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users/42", nil))
	id, _ := renderer.views[1].Variable("id")
	if rec.Code != http.StatusOK || id != "42" {
		t.Fatalf("unexpected users response: %d id=%v", rec.Code, id)
	}
}

func TestRegistry_MountGuardRejects(t *testing.T) {
	var denied []string
	r := NewRegistry()
	if err := r.Register(Controller{
		Name:          "settings",
		Feature:       "settings_management",
		Authenticated: true,
		Routes:        []Route{Page("/settings", "settings/general")},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	router := httprouter.New()
	_, err := r.Mount(router, MountOptions{
		Renderer: &stubRenderer{},
		Guard:    denyAll,
		OnDenied: func(feature string) { denied = append(denied, feature) },
	})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if diff := cmp.Diff([]string{"settings_management"}, denied); diff != "" {
		t.Fatalf("denied mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_MountFeatureGuard(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(
		Controller{Name: "index", Feature: "enhancement_admin", Authenticated: true, Routes: []Route{Page("/index", "index")}},
		Controller{Name: "settings", Feature: "settings_management", Authenticated: true, Routes: []Route{Page("/settings", "settings")}},
	); err != nil {
		t.Fatalf("register: %v", err)
	}

	var asked []string
	router := httprouter.New()
	_, err := r.Mount(router, MountOptions{
		Renderer: &stubRenderer{},
		FeatureGuard: func(feature string) GuardFunc {
			asked = append(asked, feature)
			if feature == "settings_management" {
				return func(*http.Request) error { return StatusError{Code: http.StatusForbidden} }
			}
			return allowAll
		},
	})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if diff := cmp.Diff([]string{"enhancement_admin", "settings_management"}, asked); diff != "" {
		t.Fatalf("feature guards mismatch (-want +got):\n%s", diff)
	}

	for path, want := range map[string]int{"/index": http.StatusOK, "/settings": http.StatusForbidden} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestRegistry_MountRequiresGuardForAuthenticatedRoutes(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Controller{Name: "s", Authenticated: true, Routes: []Route{Page("/s", "s")}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Mount(httprouter.New(), MountOptions{Renderer: &stubRenderer{}}); err == nil {
		t.Fatalf("expected missing guard error")
	}
	if _, err := r.Mount(nil, MountOptions{Renderer: &stubRenderer{}}); err == nil {
		t.Fatalf("expected missing router error")
	}
	if _, err := r.Mount(httprouter.New(), MountOptions{Guard: allowAll}); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestRegistry_ErrorResponses(t *testing.T) {
	r := NewRegistry()
	err := r.Register(Controller{Name: "x", Routes: []Route{
		{Method: http.MethodGet, Path: "/missing", Handler: func(*http.Request) (*view.View, error) {
			return nil, NotFound(errors.New("gone"))
		}},
		{Method: http.MethodGet, Path: "/boom", Handler: func(*http.Request) (*view.View, error) {
			return nil, errors.New("boom")
		}},
		{Method: http.MethodPost, Path: "/empty", Handler: func(*http.Request) (*view.View, error) {
			return nil, nil
		}},
	}})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	router := httprouter.New()
	if _, err := r.Mount(router, MountOptions{Renderer: &stubRenderer{}}); err != nil {
		t.Fatalf("mount: %v", err)
	}

	cases := map[string]int{
		http.MethodGet + " /missing": http.StatusNotFound,
		http.MethodGet + " /boom":    http.StatusInternalServerError,
		http.MethodPost + " /empty":  http.StatusNoContent,
	}
	for key, want := range cases {
		var method, path string
		fmt.Sscanf(key, "%s %s", &method, &path)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: want %d, got %d", key, want, rec.Code)
		}
	}
}

func TestRegistry_RenderFailureIs500(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Controller{Name: "x", Routes: []Route{Page("/x", "x")}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	router := httprouter.New()
	if _, err := r.Mount(router, MountOptions{Renderer: &stubRenderer{err: errors.New("no template")}}); err != nil {
		t.Fatalf("mount: %v", err)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestModuleIndex_NoMenusIs404(t *testing.T) {
	route := ModuleIndex(menu.NewRegistry(), "empty")
	_, err := route.Handler(httptest.NewRequest(http.MethodGet, "/", nil))
	var httpErr HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404 error, got %v", err)
	}
	if _, err := ModuleIndex(nil, "x").Handler(nil); err == nil {
		t.Fatalf("expected error without menu manager")
	}
}

func TestStatusError(t *testing.T) {
	err := StatusError{}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("unexpected default code %d", err.StatusCode())
	}
	if err.Error() != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("unexpected message %q", err.Error())
	}
	cause := errors.New("cause")
	wrapped := StatusError{Code: 418, Err: cause}
	if !errors.Is(wrapped, cause) || wrapped.Error() != "cause" {
		t.Fatalf("unexpected wrapped error %v", wrapped)
	}
}
