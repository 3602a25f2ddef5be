package gotemplate

import (
	"io"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// rootLoader anchors every template name at the template root. pongo2 loaders
// resolve extends/include names against the including template's directory;
// admin templates always name their parents from the root
// ("newadmin/layout.html"), so the base is ignored. Names stay logical until
// Get, where the wrapped loader maps them to its own storage.
type rootLoader struct {
	inner pongo2.TemplateLoader
}

func newRootLoader(inner pongo2.TemplateLoader) pongo2.TemplateLoader {
	return rootLoader{inner: inner}
}

func (l rootLoader) Abs(_, name string) string {
	return rootName(name)
}

func (l rootLoader) Get(name string) (io.Reader, error) {
	return l.inner.Get(l.inner.Abs("", rootName(name)))
}

// rootName cleans name against the root, so ".." never climbs above it.
func rootName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
