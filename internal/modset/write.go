package modset

import (
	"bufio"
	"fmt"
	"io"

	"dom-compiler/internal/entry"
)

// Write emits the buckets of c in category order. Every category but Meta
// gets a "-- Name" header, and entries outside Meta and General are
// followed by a blank line.
func Write(w io.Writer, c *entry.Collection) error {
	bw := bufio.NewWriter(w)
	for _, cat := range entry.Categories() {
		if cat != entry.Meta {
			fmt.Fprintf(bw, "-- %s\n", cat)
		}
		for _, e := range c.Get(cat) {
			for _, line := range e.Lines {
				bw.WriteString(line)
				bw.WriteByte('\n')
			}
			if cat != entry.General && cat != entry.Meta {
				bw.WriteByte('\n')
			}
		}
		if cat == entry.Meta {
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write mod file: %w", err)
	}
	return nil
}
