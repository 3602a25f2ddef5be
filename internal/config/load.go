// Package config loads and validates the admin host configuration from
// layered YAML sources.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSources are read in order; later files override earlier keys.
var DefaultSources = []string{"config.yaml", "setup.yaml"}

const (
	EnvAddr      = "ADMINVIEW_ADDR"
	EnvJWTSecret = "ADMINVIEW_JWT_SECRET"
)

// Source is one configuration input.
type Source struct {
	Path     string
	Optional bool
}

// Loader reads sources from a filesystem and applies environment overrides.
type Loader struct {
	fsys   fs.FS
	getenv func(string) string
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithFS reads sources from fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		if fsys != nil {
			l.fsys = fsys
		}
	}
}

// WithEnv replaces os.Getenv.
func WithEnv(getenv func(string) string) LoaderOption {
	return func(l *Loader) {
		if getenv != nil {
			l.getenv = getenv
		}
	}
}

// NewLoader builds a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{getenv: os.Getenv}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Sources converts paths to sources. When paths is empty DefaultSources are
// returned as optional sources; explicit paths are required.
func Sources(paths ...string) []Source {
	if len(paths) == 0 {
		out := make([]Source, 0, len(DefaultSources))
		for _, p := range DefaultSources {
			out = append(out, Source{Path: p, Optional: true})
		}
		return out
	}
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, Source{Path: p})
	}
	return out
}

// Load applies sources over Defaults, then environment overrides, then
// validates the result.
func (l *Loader) Load(sources ...Source) (*Config, error) {
	cfg := Defaults()
	for _, src := range sources {
		data, err := l.read(src.Path)
		if err != nil {
			if src.Optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &ParseError{Path: src.Path, Err: err}
		}
		if err := decode(data, &cfg); err != nil {
			return nil, &ParseError{Path: src.Path, Line: extractLine(err), Err: err}
		}
	}
	l.applyEnv(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the given paths, or the default sources when none are given,
// from the OS filesystem.
func Load(paths ...string) (*Config, error) {
	return NewLoader().Load(Sources(paths...)...)
}

func (l *Loader) read(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, strings.TrimPrefix(path, "/"))
	}
	return os.ReadFile(path)
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v := strings.TrimSpace(l.getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := l.getenv(EnvJWTSecret); v != "" {
		cfg.Auth.Secret = v
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config: nil configuration")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return buf.Bytes(), nil
}
