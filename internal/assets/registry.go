// Package assets tracks the art files a mod references.
package assets

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/viant/afs"

	"dom-compiler/internal/textutil"
)

// ExistsFunc reports whether a referenced path exists.
type ExistsFunc func(path string) bool

// FileExists checks paths relative to root on the local filesystem.
func FileExists(root string) ExistsFunc {
	fs := afs.New()
	return func(path string) bool {
		location := path
		if !filepath.IsAbs(location) {
			location = filepath.Join(root, path)
		}
		if abs, err := filepath.Abs(location); err == nil {
			location = abs
		}
		ok, err := fs.Exists(context.Background(), location)
		return err == nil && ok
	}
}

// Registry is the deduplicated set of referenced asset paths.
type Registry struct {
	exists  ExistsFunc
	seen    map[string]struct{}
	paths   []string
	missing []string
}

func NewRegistry(exists ExistsFunc) *Registry {
	return &Registry{
		exists: exists,
		seen:   make(map[string]struct{}),
	}
}

// Add registers path, referenced from line. The first reference to a path
// that does not exist is logged; the path is registered regardless.
func (r *Registry) Add(path, line string) {
	if _, ok := r.seen[path]; ok {
		return
	}
	r.seen[path] = struct{}{}
	r.paths = append(r.paths, path)

	if r.exists != nil && !r.exists(path) {
		r.missing = append(r.missing, path)
		log.Warn().
			Str("asset", path).
			Str("line", textutil.Truncate(line, 80)).
			Msg("Referenced asset not found")
	}
}

// Paths returns every registered path in first-reference order.
func (r *Registry) Paths() []string {
	return append([]string(nil), r.paths...)
}

// Missing returns the registered paths that did not exist when added.
func (r *Registry) Missing() []string {
	return append([]string(nil), r.missing...)
}

func (r *Registry) Len() int { return len(r.paths) }
