// Package report writes a YAML summary of a compilation run.
package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dom-compiler/internal/config"
	"dom-compiler/internal/entry"
	"dom-compiler/internal/textutil"
)

type Report struct {
	Output        string         `yaml:"output,omitempty"`
	Digest        string         `yaml:"sha256,omitempty"`
	Files         int            `yaml:"files"`
	Offsets       config.Offsets `yaml:"offsets"`
	Entries       map[string]int `yaml:"entries"`
	Assets        []string       `yaml:"assets,omitempty"`
	MissingAssets []string       `yaml:"missing_assets,omitempty"`
}

// Source is what a report is built from.
type Source interface {
	Entries() *entry.Collection
	Assets() []string
	MissingAssets() []string
	Files() int
}

// New summarizes src. output is the compiled file content, nil for a dry run.
func New(src Source, offsets config.Offsets, outputPath string, output []byte) *Report {
	r := &Report{
		Output:        outputPath,
		Files:         src.Files(),
		Offsets:       offsets,
		Entries:       make(map[string]int),
		Assets:        src.Assets(),
		MissingAssets: src.MissingAssets(),
	}
	if output != nil {
		r.Digest = textutil.Hash(output)
	}
	for _, cat := range entry.Categories() {
		if n := len(src.Entries().Get(cat)); n > 0 {
			r.Entries[cat.String()] = n
		}
	}
	return r
}

func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// WriteFile writes the report as YAML to path.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
