package app

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminview/internal/config"
	"github.com/goliatone/go-adminview/pkg/decorate"
)

// decoratorOptions converts a plugin config section into decorator options
// applied over the plugin defaults. Empty values keep the defaults.
func decoratorOptions(pc config.Plugin, lookup decorate.ResourceLookup) ([]decorate.OptionFn, error) {
	var opts []decorate.OptionFn
	if pc.Mode != "" {
		mode, err := decorate.ParseMode(pc.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, decorate.WithMode(mode))
	}
	if pc.Prefix != "" {
		opts = append(opts, decorate.WithPrefix(pc.Prefix))
	}
	if pc.Exclusions != nil {
		opts = append(opts, decorate.WithExclusions(pc.Exclusions...))
	}
	if pc.MatchPrefix != "" {
		opts = append(opts, decorate.WithMatchPrefix(pc.MatchPrefix))
	}
	if len(pc.Stylesheets) > 0 {
		opts = append(opts, decorate.WithStylesheets(pc.Stylesheets...))
	}
	if pc.StyleVariable != "" {
		opts = append(opts, decorate.WithStyleVariable(pc.StyleVariable))
	}
	if pc.Probe.Enabled {
		opts = append(opts, decorate.WithProbe(lookup))
		if pc.Probe.Namespace != "" {
			opts = append(opts, decorate.WithProbeNamespace(pc.Probe.Namespace))
		}
		if pc.Probe.Wrapper != "" || pc.Probe.OriginalVariable != "" {
			opts = append(opts, decorate.WithWrapperTemplate(pc.Probe.Wrapper, pc.Probe.OriginalVariable))
		}
	}
	if pc.Theme != nil {
		opt, err := themeOption(pc.Theme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func themeOption(t *config.Theme) (decorate.OptionFn, error) {
	manifest := &theme.Manifest{
		Name: t.Name,
		Assets: theme.Assets{
			Prefix: t.Prefix,
			Files:  t.Files,
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, v := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Assets: theme.Assets{Prefix: v.Prefix, Files: v.Files},
			}
		}
	}
	selector, err := decorate.NewManifestSelector(t.Name, t.Variant, manifest)
	if err != nil {
		return nil, fmt.Errorf("app: theme %q: %w", t.Name, err)
	}
	return decorate.WithThemeStylesheets(selector, t.Name, t.Variant, t.Keys...)
}
