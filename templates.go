package adminview

import (
	"io/fs"

	"github.com/goliatone/go-adminview/pkg/assets"
)

// EmbeddedTemplates exposes the built-in admin templates so hosts can layer
// their own directory on top without importing the assets package directly.
func EmbeddedTemplates() fs.FS {
	return assets.TemplatesFS()
}

// EmbeddedStatic exposes the built-in stylesheets referenced by the default
// decorator policies.
func EmbeddedStatic() fs.FS {
	return assets.StaticFS()
}
