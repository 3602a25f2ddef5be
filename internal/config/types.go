package config

import "time"

// Config is the full admin host configuration.
type Config struct {
	Server  Server                `yaml:"server"`
	Auth    Auth                  `yaml:"auth"`
	Log     Log                   `yaml:"log"`
	Menus   map[string][]MenuItem `yaml:"menus,omitempty" validate:"dive,dive"`
	Plugins map[string]Plugin     `yaml:"plugins,omitempty" validate:"dive"`
}

// Server configures the HTTP listener and the template/static roots.
type Server struct {
	Addr            string        `yaml:"addr" validate:"required"`
	BasePath        string        `yaml:"base_path" validate:"omitempty,startswith=/"`
	TemplateDir     string        `yaml:"template_dir"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	Metrics         bool          `yaml:"metrics"`
}

// Auth configures the token guard for authenticated controllers.
type Auth struct {
	Secret string        `yaml:"secret" validate:"required,min=8"`
	Issuer string        `yaml:"issuer"`
	Cookie string        `yaml:"cookie"`
	TTL    time.Duration `yaml:"ttl" validate:"gte=0"`
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Human bool   `yaml:"human"`
}

// MenuItem is a menu entry registered under a module.
type MenuItem struct {
	Name     string     `yaml:"name" validate:"required"`
	Label    string     `yaml:"label"`
	Path     string     `yaml:"path" validate:"required"`
	Icon     string     `yaml:"icon"`
	Feature  string     `yaml:"feature"`
	Order    int        `yaml:"order"`
	Children []MenuItem `yaml:"children,omitempty" validate:"dive"`
}

// Plugin holds per-plugin decorator overrides. Zero values keep the plugin's
// built-in policy.
type Plugin struct {
	Disabled      bool     `yaml:"disabled"`
	Mode          string   `yaml:"mode" validate:"omitempty,decorate_mode"`
	Prefix        string   `yaml:"prefix"`
	Exclusions    []string `yaml:"exclusions,omitempty"`
	MatchPrefix   string   `yaml:"match_prefix"`
	Stylesheets   []string `yaml:"stylesheets,omitempty" validate:"dive,required"`
	StyleVariable string   `yaml:"style_variable"`
	Probe         Probe    `yaml:"probe"`
	Theme         *Theme   `yaml:"theme,omitempty"`
}

// Probe configures the template existence probe.
type Probe struct {
	Enabled          bool   `yaml:"enabled"`
	Namespace        string `yaml:"namespace"`
	Wrapper          string `yaml:"wrapper"`
	OriginalVariable string `yaml:"original_variable"`
}

// Theme describes an inline theme manifest whose assets supply stylesheets.
type Theme struct {
	Name     string                  `yaml:"name" validate:"required"`
	Variant  string                  `yaml:"variant"`
	Prefix   string                  `yaml:"prefix"`
	Files    map[string]string       `yaml:"files" validate:"required,min=1"`
	Variants map[string]ThemeVariant `yaml:"variants,omitempty"`
	Keys     []string                `yaml:"keys" validate:"required,min=1,dive,required"`
}

// ThemeVariant overrides theme assets for one variant.
type ThemeVariant struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// Defaults returns the configuration used before any source is applied.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":9090",
			TemplateDir:     "templates",
			StaticDir:       "static",
			ShutdownTimeout: 10 * time.Second,
			Metrics:         true,
		},
		Auth: Auth{
			Issuer: "adminview",
			Cookie: "admin_token",
			TTL:    12 * time.Hour,
		},
		Log: Log{Level: "info"},
	}
}
