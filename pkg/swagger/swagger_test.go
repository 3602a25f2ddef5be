package swagger

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminview/pkg/controller"
	"github.com/goliatone/go-adminview/pkg/view"
)

func page(*http.Request) (*view.View, error) { return view.New("page"), nil }

func testControllers() []controller.Controller {
	return []controller.Controller{
		{
			Name:          "enhancement.index",
			Feature:       "enhancement_admin",
			Authenticated: true,
			Routes: []controller.Route{
				{Method: http.MethodGet, Path: "/modules/enhancement_admin", Summary: "Module index", Handler: page},
			},
		},
		{
			Name:    "enhancement.settings",
			Feature: "settings_management",
		},
		{
			Name: "public.roles",
			Routes: []controller.Route{
				{Method: http.MethodGet, Path: "/roles/:id", Handler: page},
				{Method: http.MethodDelete, Path: "/roles/:id", Handler: page},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	doc, err := Generate(Info{Title: "Admin", BasePath: "/admin"}, testControllers())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := []string{"/admin/modules/enhancement_admin", "/admin/roles/{id}"}
	if diff := cmp.Diff(want, Paths(doc)); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	index := doc.Paths.Value("/admin/modules/enhancement_admin").Get
	if index == nil {
		t.Fatalf("expected GET operation on module index")
	}
	if index.OperationID != "get_enhancement_index" || index.Summary != "Module index" {
		t.Fatalf("unexpected operation: %s %q", index.OperationID, index.Summary)
	}
	if diff := cmp.Diff([]string{"enhancement_admin"}, index.Tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if index.Security == nil || len(*index.Security) != 1 {
		t.Fatalf("expected bearer security on authenticated route")
	}
	if index.Responses.Status(http.StatusUnauthorized) == nil {
		t.Fatalf("expected 401 response on authenticated route")
	}

	roles := doc.Paths.Value("/admin/roles/{id}")
	if roles.Get == nil || roles.Delete == nil {
		t.Fatalf("expected GET and DELETE on roles path")
	}
	if roles.Get.Security != nil {
		t.Fatalf("expected no security on public route")
	}
	if len(roles.Get.Parameters) != 1 || roles.Get.Parameters[0].Value.Name != "id" {
		t.Fatalf("expected id path parameter, got %+v", roles.Get.Parameters)
	}
	if roles.Get.OperationID == roles.Delete.OperationID {
		t.Fatalf("expected unique operation ids")
	}
}

func TestGenerate_RejectsDuplicateOperations(t *testing.T) {
	controllers := []controller.Controller{
		{Name: "a", Routes: []controller.Route{{Method: http.MethodGet, Path: "/x", Handler: page}}},
		{Name: "b", Routes: []controller.Route{{Method: http.MethodGet, Path: "/x", Handler: page}}},
	}
	if _, err := Generate(Info{}, controllers); err == nil {
		t.Fatalf("expected duplicate operation error")
	}
}

func TestWriteFile(t *testing.T) {
	doc, err := Generate(Info{BasePath: "/admin"}, testControllers())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", DefaultOutput)
	written, err := WriteFile(doc, path)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if written != path {
		t.Fatalf("expected %s, got %s", path, written)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded struct {
		OpenAPI string         `json:"openapi"`
		Info    map[string]any `json:"info"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.OpenAPI != "3.0.3" || decoded.Info["title"] != "Admin API" {
		t.Fatalf("unexpected header: %+v", decoded)
	}
	if _, ok := decoded.Paths["/admin/roles/{id}"]; !ok {
		t.Fatalf("expected roles path in output")
	}
}
