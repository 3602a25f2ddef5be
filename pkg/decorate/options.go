package decorate

import (
	"fmt"
	"strings"
)

// Mode selects which decoration policy a Rule applies.
type Mode string

const (
	ModeExcludeRewrite Mode = "exclude-rewrite"
	ModeAssetOnly      Mode = "asset-only"
	ModePrefixRewrite  Mode = "prefix-rewrite"
)

const (
	DefaultPrefix           = "newadmin/"
	DefaultMatchPrefix      = "admins/roles"
	DefaultStyleVariable    = "styleFiles"
	DefaultWrapperTemplate  = "newadmin/wrapper"
	DefaultOriginalVariable = "originalTemplate"
)

// DefaultExclusions lists templates ModeExcludeRewrite leaves untouched.
var DefaultExclusions = []string{"default-menus"}

// ParseMode converts a config value into a Mode. Matching ignores case and
// surrounding whitespace; underscores are accepted in place of dashes.
func ParseMode(raw string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	switch Mode(normalized) {
	case ModeExcludeRewrite, ModeAssetOnly, ModePrefixRewrite:
		return Mode(normalized), nil
	case "":
		return ModeExcludeRewrite, nil
	}
	return "", fmt.Errorf("decorate: unknown mode %q", raw)
}

// ProbeOptions configures the optional template existence probe used by
// ModeAssetOnly. The probe is disabled unless Enabled is set and a Lookup is
// provided.
type ProbeOptions struct {
	Enabled          bool
	Lookup           ResourceLookup
	Namespace        string
	Wrapper          string
	OriginalVariable string
}

// Options configures a Rule.
type Options struct {
	Mode          Mode
	Prefix        string
	Exclusions    []string
	MatchPrefix   string
	Stylesheets   []string
	StyleVariable string
	Probe         ProbeOptions
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the options used when no overrides are supplied.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeExcludeRewrite,
		Prefix:        DefaultPrefix,
		Exclusions:    append([]string{}, DefaultExclusions...),
		MatchPrefix:   DefaultMatchPrefix,
		StyleVariable: DefaultStyleVariable,
		Probe: ProbeOptions{
			Wrapper:          DefaultWrapperTemplate,
			OriginalVariable: DefaultOriginalVariable,
		},
	}
}

// NewOptions applies fns over DefaultOptions and fills blanks. A nil
// Exclusions slice falls back to DefaultExclusions while an empty one disables
// exclusions.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Mode == "" {
		opts.Mode = ModeExcludeRewrite
	}
	if opts.StyleVariable == "" {
		opts.StyleVariable = DefaultStyleVariable
	}
	if opts.Exclusions == nil {
		opts.Exclusions = append([]string{}, DefaultExclusions...)
	} else {
		opts.Exclusions = append([]string{}, opts.Exclusions...)
	}
	if opts.Stylesheets != nil {
		opts.Stylesheets = append([]string{}, opts.Stylesheets...)
	}
	if opts.Probe.Namespace == "" {
		opts.Probe.Namespace = opts.Prefix
	}
	if opts.Probe.Wrapper == "" {
		opts.Probe.Wrapper = DefaultWrapperTemplate
	}
	if opts.Probe.OriginalVariable == "" {
		opts.Probe.OriginalVariable = DefaultOriginalVariable
	}
	return opts
}

func WithMode(mode Mode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Mode = mode
	}
}

// WithPrefix sets the namespace prefix inserted in front of rewritten
// templates. The value is used verbatim.
func WithPrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Prefix = prefix
	}
}

func WithExclusions(templates ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Exclusions = append([]string{}, templates...)
	}
}

func WithMatchPrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MatchPrefix = prefix
	}
}

// WithStylesheets sets the ordered stylesheet list appended to every view.
func WithStylesheets(paths ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Stylesheets = append([]string{}, paths...)
	}
}

func WithStyleVariable(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.StyleVariable = name
	}
}

// WithProbe enables the template existence probe backed by lookup.
func WithProbe(lookup ResourceLookup) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Probe.Enabled = true
		o.Probe.Lookup = lookup
	}
}

func WithProbeNamespace(namespace string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Probe.Namespace = namespace
	}
}

func WithWrapperTemplate(template, originalVariable string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Probe.Wrapper = template
		o.Probe.OriginalVariable = originalVariable
	}
}
