// Package assets embeds the default admin templates and stylesheets.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html templates/settings/*.html templates/newadmin/*.html templates/newadmin/settings/*.html
var embeddedTemplates embed.FS

//go:embed static/css/*.css static/css/abaculus/*.css
var embeddedStatic embed.FS

// TemplatesFS exposes the embedded template bundle rooted at the template
// directory, so identifiers like "newadmin/wrapper" resolve directly.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// StaticFS exposes the embedded stylesheets rooted so that "css/theme.css"
// is served at "/css/theme.css".
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return embeddedStatic
	}
	return sub
}
