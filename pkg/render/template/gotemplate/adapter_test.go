package gotemplate_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-adminview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-adminview/pkg/testsupport"
)

func templatesFS() fstest.MapFS {
	return testsupport.Templates(map[string]string{
		"layout.html":     `{% for href in styleFiles %}<link rel="stylesheet" href="{{ href }}">{% endfor %}{% block body %}{% endblock %}`,
		"users/list.html": `{% extends "layout.html" %}{% block body %}<h1>{{ title }}</h1>{% endblock %}`,
		"use-global.html": `env={{ settings.env }}`,
		"use-filter.html": `{{ name|adminview_shout }}`,
		"menus.html":      `{% for item in menus %}{{ item.label }}:{{ item.path }};{% endfor %}`,
	})
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesAndReturns(t *testing.T) {
	engine := newEngine(t)

	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("users/list", map[string]any{
			"title":      "Users",
			"styleFiles": []any{"/css/a.css", "/css/b.css"},
		}, w)
	})

	want := `<link rel="stylesheet" href="/css/a.css"><link rel="stylesheet" href="/css/b.css"><h1>Users</h1>`
	if got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
	if written != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("adminview_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("adminview_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_StructValuesUseJSONNames(t *testing.T) {
	type item struct {
		Label string `json:"label"`
		Path  string `json:"path"`
	}
	engine := newEngine(t)

	got, err := engine.RenderTemplate("menus", map[string]any{
		"menus": []item{{Label: "Users", Path: "/admin/users"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Users:/admin/users;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_Exists(t *testing.T) {
	engine := newEngine(t)

	cases := map[string]bool{
		"users/list":      true,
		"users/list.html": true,
		"/users/list":     true,
		"users/missing":   false,
		"newadmin/users":  false,
		"../users/list":   true,
	}
	for name, want := range cases {
		got, err := engine.Exists(name)
		if err != nil {
			t.Fatalf("exists %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("exists %q: want %v, got %v", name, want, got)
		}
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestWithExtension(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(fstest.MapFS{"index.tpl": &fstest.MapFile{Data: []byte("ok")}}),
		gotemplate.WithExtension("tpl"),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if engine.Extension() != ".tpl" {
		t.Fatalf("unexpected extension %q", engine.Extension())
	}
	got, err := engine.RenderTemplate("index", nil)
	if err != nil || got != "ok" {
		t.Fatalf("render: %q %v", got, err)
	}
}

func TestWithBaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "newadmin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "newadmin", "page.html"), []byte("disk {{ name }}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	found, err := engine.Exists("newadmin/page")
	if err != nil || !found {
		t.Fatalf("expected disk template to exist: %v %v", found, err)
	}
	got, err := engine.RenderTemplate("newadmin/page", map[string]any{"name": "ok"})
	if err != nil || got != "disk ok" {
		t.Fatalf("render: %q %v", got, err)
	}

	if _, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join(dir, "missing"))); err == nil {
		t.Fatalf("expected error for missing base dir")
	}
}

func TestEngine_ExtendsResolvesFromTemplateRoot(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(testsupport.Templates(map[string]string{
		"layout.html":      `<main>{% block body %}{% endblock %}</main>`,
		"a/layout.html":    `{% extends "layout.html" %}{% block body %}<section>{% block content %}{% endblock %}</section>{% endblock %}`,
		"a/b/page.html":    `{% extends "a/layout.html" %}{% block content %}{{ title }}{% endblock %}`,
		"a/b/include.html": `{% include "a/b/part.html" %}`,
		"a/b/part.html":    `part`,
	})))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("a/b/page", map[string]any{"title": "nested"})
	if err != nil {
		t.Fatalf("render nested: %v", err)
	}
	if want := `<main><section>nested</section></main>`; got != want {
		t.Fatalf("nested mismatch\nwant: %q\n got: %q", want, got)
	}

	got, err = engine.RenderTemplate("/a/b/include", nil)
	if err != nil {
		t.Fatalf("render include: %v", err)
	}
	if got != "part" {
		t.Fatalf("include mismatch: %q", got)
	}
}

func TestEngine_ExtendsAcrossSources(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "newadmin", "settings"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := `{% extends "newadmin/layout.html" %}{% block content %}disk{% endblock %}`
	if err := os.WriteFile(filepath.Join(dir, "newadmin", "settings", "general.html"), []byte(page), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	embedded := testsupport.Templates(map[string]string{
		"layout.html":          `[{% block body %}{% endblock %}]`,
		"newadmin/layout.html": `{% extends "layout.html" %}{% block body %}<div>{% block content %}{% endblock %}</div>{% endblock %}`,
	})

	for name, opt := range map[string]gotemplate.Option{
		"base dir": gotemplate.WithBaseDir(dir),
		"dir fs":   gotemplate.WithFS(os.DirFS(dir)),
	} {
		t.Run(name, func(t *testing.T) {
			engine, err := gotemplate.New(opt, gotemplate.WithFS(embedded))
			if err != nil {
				t.Fatalf("new engine: %v", err)
			}
			got, err := engine.RenderTemplate("newadmin/settings/general", nil)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if want := `[<div>disk</div>]`; got != want {
				t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
			}
		})
	}
}
