package decorate

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ThemeStylesheets resolves asset keys against a go-theme selection and
// returns their URLs in key order. Variant assets override the base manifest
// files and prefix.
func ThemeStylesheets(selector theme.ThemeSelector, name, variant string, keys ...string) ([]string, error) {
	if selector == nil {
		return nil, fmt.Errorf("decorate: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("decorate: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("decorate: theme %q has no manifest", name)
	}

	prefix, files := mergedAssets(selection.Manifest, selection.Variant)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return nil, fmt.Errorf("decorate: theme %q has no asset %q", selection.Theme, key)
		}
		out = append(out, assetURL(prefix, file))
	}
	return out, nil
}

// WithThemeStylesheets resolves keys through selector and uses them as the
// rule's stylesheet list. Resolution happens once, at option time.
func WithThemeStylesheets(selector theme.ThemeSelector, name, variant string, keys ...string) (OptionFn, error) {
	paths, err := ThemeStylesheets(selector, name, variant, keys...)
	if err != nil {
		return nil, err
	}
	return WithStylesheets(paths...), nil
}

func mergedAssets(manifest *theme.Manifest, variant string) (string, map[string]string) {
	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, file := range manifest.Assets.Files {
		files[key] = file
	}
	if v, ok := manifest.Variants[variant]; ok {
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		for key, file := range v.Assets.Files {
			files[key] = file
		}
	}
	return prefix, files
}

func assetURL(prefix, file string) string {
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	if prefix == "" {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

// ManifestSelector is an in-memory theme.ThemeSelector over a fixed set of
// manifests. Empty names fall back to the configured defaults.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector builds a selector. Duplicate or unnamed manifests are
// rejected.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("decorate: theme manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("decorate: theme %q already registered", manifest.Name)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Themes returns the sorted registered theme names.
func (s *ManifestSelector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.defaultTheme
	}
	if variant == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("decorate: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("decorate: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}
