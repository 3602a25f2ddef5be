package decorate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func testManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "abaculus",
		Version: "1.0.0",
		Assets: theme.Assets{
			Prefix: "/css/abaculus",
			Files: map[string]string{
				"admin.index": "index.css",
				"admin.theme": "/css/theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Assets: theme.Assets{
					Files: map[string]string{
						"admin.index": "index.dark.css",
					},
				},
			},
		},
	}
}

func TestThemeStylesheets_ResolvesBaseAssets(t *testing.T) {
	selector, err := NewManifestSelector("abaculus", "", testManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	got, err := ThemeStylesheets(selector, "", "", "admin.index", "admin.theme")
	if err != nil {
		t.Fatalf("theme stylesheets: %v", err)
	}
	want := []string{"/css/abaculus/index.css", "/css/theme.css"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeStylesheets_VariantOverrides(t *testing.T) {
	selector, err := NewManifestSelector("abaculus", "dark", testManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	got, err := ThemeStylesheets(selector, "abaculus", "", "admin.index")
	if err != nil {
		t.Fatalf("theme stylesheets: %v", err)
	}
	if diff := cmp.Diff([]string{"/css/abaculus/index.dark.css"}, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeStylesheets_Errors(t *testing.T) {
	selector, err := NewManifestSelector("abaculus", "", testManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if _, err := ThemeStylesheets(selector, "", "", "missing"); err == nil {
		t.Fatalf("expected missing asset error")
	}
	if _, err := ThemeStylesheets(selector, "other", "", "admin.index"); err == nil {
		t.Fatalf("expected missing theme error")
	}
	if _, err := ThemeStylesheets(selector, "", "light", "admin.index"); err == nil {
		t.Fatalf("expected missing variant error")
	}
	if _, err := ThemeStylesheets(nil, "", ""); err == nil {
		t.Fatalf("expected nil selector error")
	}
}

func TestWithThemeStylesheets_FeedsRule(t *testing.T) {
	selector, err := NewManifestSelector("abaculus", "", testManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	opt, err := WithThemeStylesheets(selector, "", "", "admin.index", "admin.theme")
	if err != nil {
		t.Fatalf("with theme stylesheets: %v", err)
	}

	rule := New(WithMode(ModePrefixRewrite), opt)
	want := []string{"/css/abaculus/index.css", "/css/theme.css"}
	if diff := cmp.Diff(want, rule.Stylesheets()); diff != "" {
		t.Fatalf("rule stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestManifestSelector_RejectsDuplicates(t *testing.T) {
	if _, err := NewManifestSelector("", "", testManifest(), testManifest()); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := NewManifestSelector("", "", &theme.Manifest{}); err == nil {
		t.Fatalf("expected unnamed manifest error")
	}
}
