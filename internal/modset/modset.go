// Package modset compiles parsed mod sources into one merged mod file.
package modset

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"dom-compiler/internal/assets"
	"dom-compiler/internal/config"
	"dom-compiler/internal/entry"
	"dom-compiler/internal/macro"
	"dom-compiler/internal/parser"
	"dom-compiler/internal/resolve"
)

// ModSet accumulates the entries and assets of every source file of one
// compilation run. Files must be parsed one at a time; resolution and
// sorting only start once all files are in.
type ModSet struct {
	entries  *entry.Collection
	assets   *assets.Registry
	resolver *resolve.Resolver
	parser   *parser.Parser
	files    int
}

// New creates an empty set. exists checks referenced asset paths; nil
// disables the check.
func New(offsets config.Offsets, exists assets.ExistsFunc) *ModSet {
	resolver := resolve.New(offsets)
	registry := assets.NewRegistry(exists)
	return &ModSet{
		entries:  entry.NewCollection(),
		assets:   registry,
		resolver: resolver,
		parser:   parser.New(macro.NewExpander(resolver), registry),
	}
}

// Parse adds every record of the file at path. A malformed file adds
// nothing.
func (m *ModSet) Parse(path string) error {
	entries, err := m.parser.Parse(path, m.files)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	m.add(entries)
	return nil
}

// ParseReader adds every record read from r, recorded under name.
func (m *ModSet) ParseReader(r io.Reader, name string) error {
	entries, err := m.parser.ParseReader(r, entry.Origin{Path: name, Index: m.files})
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	m.add(entries)
	return nil
}

func (m *ModSet) add(entries []*entry.Entry) {
	for _, e := range entries {
		m.entries.Add(e)
	}
	m.files++
}

// ResolveAndSort rewrites every relative id and orders the sortable
// categories.
func (m *ModSet) ResolveAndSort() error {
	if err := m.resolver.Collection(m.entries); err != nil {
		return err
	}
	Sort(m.entries)
	log.Debug().Int("entries", m.entries.Len()).Int("files", m.files).Msg("Resolved and sorted entries")
	return nil
}

// Write serializes all entries to w.
func (m *ModSet) Write(w io.Writer) error {
	return Write(w, m.entries)
}

func (m *ModSet) Entries() *entry.Collection { return m.entries }

// Assets returns the deduplicated asset paths referenced by all files.
func (m *ModSet) Assets() []string { return m.assets.Paths() }

// MissingAssets returns referenced asset paths that did not exist.
func (m *ModSet) MissingAssets() []string { return m.assets.Missing() }

// Files is the number of files parsed so far.
func (m *ModSet) Files() int { return m.files }
