package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-adminview/internal/config"
	"github.com/goliatone/go-adminview/pkg/decorate"
)

// Modes lists the selectable decorator modes in prompt order.
var Modes = []decorate.Mode{
	decorate.ModeExcludeRewrite,
	decorate.ModeAssetOnly,
	decorate.ModePrefixRewrite,
}

// Scaffold asks for the values of a starter configuration. Blank secrets are
// replaced with a random one.
func Scaffold(ctx context.Context, d Driver, modules []string) (*config.Config, error) {
	if d == nil {
		return nil, errors.New("prompt: driver is required")
	}
	cfg := config.Defaults()

	addr, err := d.Input(ctx, InputConfig{
		Message:   "Listen address",
		Default:   cfg.Server.Addr,
		Validator: required("listen address"),
	})
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = strings.TrimSpace(addr)

	basePath, err := d.Input(ctx, InputConfig{
		Message: "Admin base path",
		Default: "/admin",
		Validator: func(s string) error {
			if !strings.HasPrefix(strings.TrimSpace(s), "/") {
				return errors.New("base path must start with /")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	cfg.Server.BasePath = strings.TrimSpace(basePath)

	secret, err := d.Password(ctx, InputConfig{
		Message: "JWT secret (leave blank to generate)",
		Validator: func(s string) error {
			if s != "" && len(s) < 8 {
				return errors.New("secret must be at least 8 characters")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if secret == "" {
		secret = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	cfg.Auth.Secret = secret

	if len(modules) > 0 {
		selected, err := d.MultiSelect(ctx, SelectConfig{
			Message:  "Modules to customize",
			Options:  modules,
			Defaults: nil,
		})
		if err != nil {
			return nil, err
		}
		for _, idx := range selected {
			name := modules[idx]
			pc, err := scaffoldPlugin(ctx, d, name)
			if err != nil {
				return nil, err
			}
			if cfg.Plugins == nil {
				cfg.Plugins = make(map[string]config.Plugin)
			}
			cfg.Plugins[name] = pc
		}
	}

	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func scaffoldPlugin(ctx context.Context, d Driver, name string) (config.Plugin, error) {
	var pc config.Plugin

	options := make([]string, len(Modes))
	for i, m := range Modes {
		options[i] = string(m)
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message: fmt.Sprintf("[%s] decorator mode", name),
		Options: options,
	})
	if err != nil {
		return pc, err
	}
	if idx < 0 || idx >= len(Modes) {
		return pc, fmt.Errorf("prompt: invalid mode selection %d", idx)
	}
	mode := Modes[idx]
	pc.Mode = string(mode)

	prefix, err := d.Input(ctx, InputConfig{
		Message: fmt.Sprintf("[%s] template prefix", name),
		Default: decorate.DefaultPrefix,
	})
	if err != nil {
		return pc, err
	}
	pc.Prefix = prefix

	if mode == decorate.ModeExcludeRewrite {
		return pc, nil
	}

	styles, err := d.Input(ctx, InputConfig{
		Message: fmt.Sprintf("[%s] stylesheets (comma separated)", name),
		Help:    "Appended in order to the styleFiles view variable.",
	})
	if err != nil {
		return pc, err
	}
	pc.Stylesheets = splitList(styles)

	switch mode {
	case decorate.ModePrefixRewrite:
		match, err := d.Input(ctx, InputConfig{
			Message: fmt.Sprintf("[%s] rewrite templates starting with", name),
			Default: decorate.DefaultMatchPrefix,
		})
		if err != nil {
			return pc, err
		}
		pc.MatchPrefix = match
	case decorate.ModeAssetOnly:
		probe, err := d.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("[%s] swap to namespaced templates when they exist?", name),
		})
		if err != nil {
			return pc, err
		}
		pc.Probe.Enabled = probe
	}
	return pc, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
