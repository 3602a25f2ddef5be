package decorate

import (
	"errors"
	"io/fs"
	"strings"
)

// ResourceLookup reports whether a template resource exists. It is queried
// read-only; errors are treated as "does not exist".
type ResourceLookup interface {
	Exists(name string) (bool, error)
}

// LookupFunc adapts a function into a ResourceLookup.
type LookupFunc func(name string) (bool, error)

// Exists calls the underlying function.
func (fn LookupFunc) Exists(name string) (bool, error) {
	return fn(name)
}

// FSLookup checks template existence against an fs.FS, appending Extension to
// names that do not already carry it.
type FSLookup struct {
	FS        fs.FS
	Extension string
}

// Exists stats name in the filesystem. Directories do not count as templates.
func (l FSLookup) Exists(name string) (bool, error) {
	if l.FS == nil {
		return false, errors.New("decorate: lookup filesystem is nil")
	}
	path := strings.TrimPrefix(name, "/")
	if l.Extension != "" && !strings.HasSuffix(path, l.Extension) {
		path += l.Extension
	}
	if !fs.ValidPath(path) {
		return false, nil
	}
	info, err := fs.Stat(l.FS, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// exists runs a single lookup attempt. Errors and panics both degrade to false.
func exists(lookup ResourceLookup, name string) (found bool) {
	if lookup == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			found = false
		}
	}()
	ok, err := lookup.Exists(name)
	if err != nil {
		return false
	}
	return ok
}
