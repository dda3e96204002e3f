package view

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-view/pkg/resolve"
)

// Loader reads the source of a resolved template path. A missing template
// must be reported with an error that matches fs.ErrNotExist.
type Loader interface {
	Load(path string) ([]byte, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(path string) ([]byte, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) ([]byte, error) {
	return f(path)
}

// DirLoader reads templates from the operating system filesystem. Relative
// paths are taken relative to Root when it is set.
type DirLoader struct {
	Root string
}

// Load reads the file at path.
func (l DirLoader) Load(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("view: template path is required")
	}
	full := path
	if l.Root != "" && !resolve.IsAbs(path) {
		full = filepath.Join(l.Root, path)
	}
	return os.ReadFile(full)
}

// FSLoader reads templates from an fs.FS. A leading slash is dropped since
// fs.FS paths are always unrooted.
type FSLoader struct {
	FS fs.FS
}

// Load reads the file at path.
func (l FSLoader) Load(path string) ([]byte, error) {
	if l.FS == nil {
		return nil, errors.New("view: filesystem is not configured")
	}
	name := strings.TrimPrefix(pathpkg.Clean("/"+path), "/")
	if name == "" {
		return nil, errors.New("view: template path is required")
	}
	return fs.ReadFile(l.FS, name)
}

// pongoLoader lets pongo2 tags such as include, extends and import read
// through the same Loader the engine uses for top-level templates. Names
// given to those tags are template references and resolve like the refs of
// sub-renders. The already loaded top-level source is served from memory.
type pongoLoader struct {
	loader  Loader
	resolve func(ref string) string
	root    string
	source  []byte
}

var _ pongo2.TemplateLoader = (*pongoLoader)(nil)

// Abs resolves name as a reference. pongo2 passes an empty base for paths
// that are already resolved.
func (p *pongoLoader) Abs(base, name string) string {
	if base == "" || p.resolve == nil {
		return name
	}
	return p.resolve(name)
}

func (p *pongoLoader) Get(path string) (io.Reader, error) {
	if path == p.root && p.source != nil {
		return bytes.NewReader(p.source), nil
	}
	data, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
