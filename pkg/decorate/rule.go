package decorate

import (
	"net/http"

	"github.com/goliatone/go-adminview/pkg/view"
)

// Rule applies a compiled decoration policy to views.
type Rule struct {
	mode    Mode
	styles  StylePolicy
	rewrite RewritePolicy
	probe   *ProbeOptions
}

var _ view.Decorator = (*Rule)(nil)

// New compiles a Rule from default options plus overrides.
func New(fns ...OptionFn) *Rule {
	return NewWithOptions(NewOptions(fns...))
}

// NewWithOptions compiles a Rule from a pre-built Options value. Callers are
// expected to pass an Options value produced by NewOptions so defaults apply.
func NewWithOptions(opts Options) *Rule {
	opts = NewOptions(func(o *Options) { *o = opts })

	rule := &Rule{mode: opts.Mode}
	switch opts.Mode {
	case ModeExcludeRewrite:
		rule.rewrite = RewritePolicy{
			Kind:   MatchExclude,
			Values: opts.Exclusions,
			Prefix: opts.Prefix,
		}
	case ModeAssetOnly:
		rule.styles = StylePolicy{Variable: opts.StyleVariable, Files: opts.Stylesheets}
		if opts.Probe.Enabled && opts.Probe.Lookup != nil {
			probe := opts.Probe
			rule.probe = &probe
		}
	case ModePrefixRewrite:
		rule.styles = StylePolicy{Variable: opts.StyleVariable, Files: opts.Stylesheets}
		rule.rewrite = RewritePolicy{
			Kind:   MatchPrefix,
			Values: []string{opts.MatchPrefix},
			Prefix: opts.Prefix,
		}
	}
	return rule
}

// Mode reports the compiled mode.
func (r *Rule) Mode() Mode {
	if r == nil {
		return ""
	}
	return r.mode
}

// Stylesheets returns a copy of the stylesheet list the rule appends.
func (r *Rule) Stylesheets() []string {
	if r == nil || r.styles.empty() {
		return nil
	}
	return append([]string{}, r.styles.Files...)
}

// Decorate appends the configured stylesheets and then rewrites the template
// identifier based on its value on entry. It never fails.
func (r *Rule) Decorate(_ *http.Request, v *view.View) {
	if r == nil || v == nil {
		return
	}
	original := v.Template()

	if !r.styles.empty() {
		values := make([]any, len(r.styles.Files))
		for i, file := range r.styles.Files {
			values[i] = file
		}
		v.AppendVariable(r.styles.Variable, values...)
	}

	if rewritten, ok := r.rewrite.Apply(original); ok {
		v.SetTemplate(rewritten)
		return
	}

	if r.probe != nil {
		r.swap(v, original)
	}
}

func (r *Rule) swap(v *view.View, original string) {
	candidate := r.probe.Namespace + original
	if exists(r.probe.Lookup, candidate) {
		v.SetTemplate(candidate)
		return
	}
	v.SetTemplate(r.probe.Wrapper)
	v.SetVariable(r.probe.OriginalVariable, original)
}
