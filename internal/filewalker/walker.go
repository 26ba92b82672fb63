package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultExtension is the extension of mod source files.
const DefaultExtension = ".dme"

// Walker discovers mod source files under a directory tree.
type Walker struct {
	ext string
	// skip holds absolute paths that are never returned, such as the
	// output file.
	skip map[string]bool
}

// NewWalker creates a Walker for files with extension ext (case-insensitive).
func NewWalker(ext string) *Walker {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Walker{ext: strings.ToLower(ext), skip: make(map[string]bool)}
}

// Skip excludes path from discovery.
func (w *Walker) Skip(path string) *Walker {
	if abs, err := filepath.Abs(path); err == nil {
		w.skip[abs] = true
	}
	return w
}

// Walk returns every matching file under root in lexical order, the order
// in which they are compiled.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != w.ext || w.skip[path] {
			return nil
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(files)).Str("root", root).Msg("Discovered source files")
	return files, nil
}
