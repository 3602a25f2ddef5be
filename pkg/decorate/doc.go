// Package decorate implements the view decoration rule applied to admin views
// before template resolution.
//
// A Rule appends stylesheet references to a list-valued view variable and
// rewrites the template identifier under a namespace prefix. Three modes are
// supported:
//
//   - ModeExcludeRewrite prefixes every template that is not in an exclusion
//     set (for example "default-menus").
//   - ModeAssetOnly only appends stylesheets. An optional probe swaps to a
//     namespaced template when it exists, otherwise to a wrapper template that
//     receives the original identifier.
//   - ModePrefixRewrite appends stylesheets and prefixes templates that start
//     with a match prefix (for example "admins/roles").
//
// Stylesheets are appended before the rewrite decision, and the rewrite always
// sees the template identifier the view carried on entry. Matching is a literal
// prefix, equality, or set-membership test. A Rule is immutable after New and
// can be shared across requests.
package decorate
