package decorate

import "strings"

// MatchKind names the literal predicate a RewritePolicy applies.
type MatchKind string

const (
	MatchNever   MatchKind = ""
	MatchPrefix  MatchKind = "prefix"
	MatchEqual   MatchKind = "equal"
	MatchExclude MatchKind = "exclude"
)

// RewritePolicy decides whether a template identifier is rewritten and how.
// Values holds the prefix (MatchPrefix), the accepted literals (MatchEqual) or
// the excluded literals (MatchExclude).
type RewritePolicy struct {
	Kind   MatchKind
	Values []string
	Prefix string
}

// Matches reports whether template satisfies the policy predicate.
func (p RewritePolicy) Matches(template string) bool {
	switch p.Kind {
	case MatchPrefix:
		for _, value := range p.Values {
			if strings.HasPrefix(template, value) {
				return true
			}
		}
		return false
	case MatchEqual:
		return contains(p.Values, template)
	case MatchExclude:
		return !contains(p.Values, template)
	}
	return false
}

// Apply returns the rewritten template and whether a rewrite happened.
func (p RewritePolicy) Apply(template string) (string, bool) {
	if !p.Matches(template) {
		return template, false
	}
	return p.Prefix + template, true
}

// StylePolicy lists stylesheet paths appended, in order, to Variable.
type StylePolicy struct {
	Variable string
	Files    []string
}

func (p StylePolicy) empty() bool {
	return len(p.Files) == 0
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
