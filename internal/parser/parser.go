// Package parser assembles records from mod source files.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"dom-compiler/internal/entry"
)

// Expander lowers shorthand lines inside records.
type Expander interface {
	Expand(line string) (lines []string, ok bool, err error)
}

// AssetSink receives every asset path a record references.
type AssetSink interface {
	Add(path, line string)
}

// Parser turns source files into entries. It is not safe for concurrent use
// because the asset sink is shared.
type Parser struct {
	expander Expander
	assets   AssetSink
}

func New(expander Expander, assets AssetSink) *Parser {
	return &Parser{expander: expander, assets: assets}
}

// Parse reads every record of the file at path. No entries are returned
// when the file is malformed.
func (p *Parser) Parse(path string, index int) ([]*entry.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	entries, err := p.ParseReader(file, entry.Origin{Path: path, Index: index})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Int("entries", len(entries)).Msg("Parsed source file")
	return entries, nil
}

// ParseReader reads every record from r.
func (p *Parser) ParseReader(r io.Reader, origin entry.Origin) ([]*entry.Entry, error) {
	sc := NewScanner(r)
	var entries []*entry.Entry
	for {
		line, ok := sc.Next()
		if !ok {
			break
		}
		if !recordStart.MatchString(line) {
			continue
		}
		e, err := p.record(sc, line, origin)
		if err != nil {
			return nil, p.locate(err, origin)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", origin.Path, err)
	}
	return entries, nil
}

func (p *Parser) locate(err error, origin entry.Origin) error {
	var perr *Error
	if errors.As(err, &perr) && perr.Path == "" {
		perr.Path = origin.Path
	}
	return err
}

// record assembles the record opened by first.
func (p *Parser) record(sc *Scanner, first string, origin entry.Origin) (*entry.Entry, error) {
	start := sc.Line()
	opening, err := sc.Complete(first)
	if err != nil {
		return nil, err
	}

	e := &entry.Entry{
		Category: Classify(Directive(opening)),
		Lines:    []string{opening},
		Origin:   origin,
	}
	p.captureAssets(opening)
	if !e.Category.Continued() {
		return e, nil
	}

	if m := declaredID.FindStringSubmatch(opening); m != nil && !strings.HasPrefix(m[1], "--") {
		e.DeclaredID = m[1]
	}

	for {
		line, ok := sc.Next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, &Error{Line: start, Err: fmt.Errorf("%w: %s", ErrUnterminatedRecord, opening)}
		}

		expanded, ok, err := p.expander.Expand(line)
		if err != nil {
			return nil, &Error{Line: sc.Line(), Err: err}
		}
		if ok {
			e.Lines = append(e.Lines, expanded...)
			continue
		}

		logical, err := sc.Complete(line)
		if err != nil {
			return nil, err
		}
		if recordStart.MatchString(logical) {
			e.Lines = append(e.Lines, logical)
			p.captureAssets(logical)
		}
		if recordEnd.MatchString(logical) {
			return e, nil
		}
	}
}

func (p *Parser) captureAssets(line string) {
	for _, path := range AssetPaths(line) {
		p.assets.Add(path, line)
	}
}
