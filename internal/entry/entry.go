package entry

import "strings"

// Origin identifies where an entry was read from.
type Origin struct {
	Path  string
	Index int
}

// Entry is one record: an opening directive line, its body and terminator.
type Entry struct {
	Category Category
	// DeclaredID is the raw id token from the opening line ("$3", "1204"),
	// empty when the directive carries none.
	DeclaredID string
	// ID is the absolute id, set by resolution when DeclaredID is numeric.
	ID     int
	HasID  bool
	Lines  []string
	Origin Origin
}

// IsNew reports whether the entry declares something new rather than
// selecting an existing declaration.
func (e *Entry) IsNew() bool {
	return len(e.Lines) > 0 && strings.HasPrefix(e.Lines[0], "#new")
}
