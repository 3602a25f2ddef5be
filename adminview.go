// Package adminview decorates server-rendered admin views: it appends
// stylesheet references and rewrites template identifiers into the newadmin
// namespace. The plugins and host wiring live under plugins/ and pkg/app.
package adminview

import (
	"github.com/goliatone/go-adminview/pkg/decorate"
	"github.com/goliatone/go-adminview/pkg/view"
)

type (
	View      = view.View
	Decorator = view.Decorator
	Rule      = decorate.Rule
	Mode      = decorate.Mode
	Options   = decorate.Options
	OptionFn  = decorate.OptionFn
)

const (
	ModeExcludeRewrite = decorate.ModeExcludeRewrite
	ModeAssetOnly      = decorate.ModeAssetOnly
	ModePrefixRewrite  = decorate.ModePrefixRewrite
)

// NewView creates a view for template.
func NewView(template string) *View {
	return view.New(template)
}

// NewDecorator builds a decoration rule. With no options it prefixes every
// template except "default-menus" with "newadmin/".
func NewDecorator(fns ...OptionFn) *Rule {
	return decorate.New(fns...)
}
