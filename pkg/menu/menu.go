package menu

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Item is one entry in a module menu.
type Item struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Path     string `json:"path"`
	Icon     string `json:"icon,omitempty"`
	Feature  string `json:"feature,omitempty"`
	Order    int    `json:"order"`
	Children []Item `json:"children,omitempty"`
}

// Manager is the capability controllers use to read module menus.
type Manager interface {
	Menus(module string) []Item
}

// Registry is an in-memory Manager keyed by module name.
type Registry struct {
	mu      sync.RWMutex
	modules map[string][]Item
}

var _ Manager = (*Registry)(nil)

// NewRegistry creates an empty menu registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string][]Item)}
}

// Add sanitizes items and appends them to module's menu. Item names must be
// unique within a module.
func (r *Registry) Add(module string, items ...Item) error {
	module = strings.TrimSpace(module)
	if module == "" {
		return fmt.Errorf("menu: module name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.modules[module]
	seen := make(map[string]struct{}, len(existing)+len(items))
	for _, item := range existing {
		seen[item.Name] = struct{}{}
	}
	for _, item := range items {
		clean, err := normalize(item)
		if err != nil {
			return fmt.Errorf("menu: module %q: %w", module, err)
		}
		if _, dup := seen[clean.Name]; dup {
			return fmt.Errorf("menu: module %q: item %q already registered", module, clean.Name)
		}
		seen[clean.Name] = struct{}{}
		existing = append(existing, clean)
	}
	sortItems(existing)
	r.modules[module] = existing
	return nil
}

// Menus returns a copy of module's menu, ordered by Order then Name.
func (r *Registry) Menus(module string) []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.modules[module]
	if len(items) == 0 {
		return nil
	}
	return cloneItems(items)
}

// Modules returns the sorted module names that registered menus.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filter returns items whose Feature is empty or allowed.
func Filter(items []Item, allowed func(feature string) bool) []Item {
	if allowed == nil || len(items) == 0 {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Feature != "" && !allowed(item.Feature) {
			continue
		}
		item.Children = Filter(item.Children, allowed)
		out = append(out, item)
	}
	return out
}

func normalize(item Item) (Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return Item{}, fmt.Errorf("item name is required")
	}
	item.Label = sanitizeLabel(item.Label)
	if item.Label == "" {
		item.Label = item.Name
	}
	item.Icon = sanitizeIcon(item.Icon)
	item.Path = strings.TrimSpace(item.Path)

	children := make([]Item, 0, len(item.Children))
	for _, child := range item.Children {
		clean, err := normalize(child)
		if err != nil {
			return Item{}, fmt.Errorf("item %q: %w", item.Name, err)
		}
		children = append(children, clean)
	}
	sortItems(children)
	if len(children) == 0 {
		children = nil
	}
	item.Children = children
	return item, nil
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].Name < items[j].Name
	})
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		if len(item.Children) > 0 {
			item.Children = cloneItems(item.Children)
		}
		out[i] = item
	}
	return out
}
