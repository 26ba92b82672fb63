// Package resolve rewrites relative ids ("$n") into absolute ids.
package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dom-compiler/internal/config"
	"dom-compiler/internal/entry"
)

// RelativeMarker prefixes relative id tokens.
const RelativeMarker = "$"

// ErrUnresolvable is returned for a relative id that has no target id space.
var ErrUnresolvable = errors.New("unresolvable relative id")

// leftover finds a relative id directly after a directive that no family
// claimed.
var leftover = regexp.MustCompile(`^#\S+\s+(\$\S+)`)

type Resolver struct {
	offsets config.Offsets
}

func New(offsets config.Offsets) *Resolver {
	return &Resolver{offsets: offsets}
}

// Token returns the absolute id for token in target's id space. Tokens
// without the relative marker are absolute already and are only parsed.
func (r *Resolver) Token(token string, target entry.Category) (int, error) {
	if !strings.HasPrefix(token, RelativeMarker) {
		id, err := strconv.Atoi(token)
		if err != nil {
			return 0, fmt.Errorf("parse id %q: %w", token, err)
		}
		return id, nil
	}
	n, err := strconv.Atoi(token[len(RelativeMarker):])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUnresolvable, token)
	}
	base, ok := r.offsets.Base(target)
	if !ok {
		return 0, fmt.Errorf("%w: %q has no %s id space", ErrUnresolvable, token, target)
	}
	// Event codes are negative and count down.
	if target == entry.Event {
		return base - n, nil
	}
	return base + n, nil
}

// Line rewrites every relative id in line, for a line of an entry of
// category own.
func (r *Resolver) Line(line string, own entry.Category) (string, error) {
	if !strings.Contains(line, RelativeMarker) {
		return line, nil
	}
	var err error
	for _, f := range Families {
		line, err = replaceGroup(line, f.pattern, func(token string) (string, error) {
			id, err := r.Token(token, f.target(own))
			if err != nil {
				return "", fmt.Errorf("%s directive: %w", f.Name, err)
			}
			return strconv.Itoa(id), nil
		})
		if err != nil {
			return "", err
		}
	}
	if m := leftover.FindStringSubmatch(line); m != nil {
		return "", fmt.Errorf("%w: %q in %q matches no directive family", ErrUnresolvable, m[1], line)
	}
	return line, nil
}

// Entry rewrites all lines of e in place and sets its absolute id.
func (r *Resolver) Entry(e *entry.Entry) error {
	for i, line := range e.Lines {
		resolved, err := r.Line(line, e.Category)
		if err != nil {
			return err
		}
		e.Lines[i] = resolved
	}

	e.ID, e.HasID = 0, false
	switch {
	case e.DeclaredID == "":
	case strings.HasPrefix(e.DeclaredID, RelativeMarker):
		id, err := r.Token(e.DeclaredID, OwnTarget(e.Category))
		if err != nil {
			return err
		}
		e.ID, e.HasID = id, true
	default:
		// Named selections ("#selectmonster "Knight"") carry no number.
		if id, err := strconv.Atoi(e.DeclaredID); err == nil {
			e.ID, e.HasID = id, true
		}
	}
	return nil
}

// Collection resolves every entry of c.
func (r *Resolver) Collection(c *entry.Collection) error {
	return c.Each(func(e *entry.Entry) error {
		if err := r.Entry(e); err != nil {
			return fmt.Errorf("resolve %s entry %q (%s): %w", e.Category, firstLine(e), e.Origin.Path, err)
		}
		return nil
	})
}

func firstLine(e *entry.Entry) string {
	if len(e.Lines) == 0 {
		return ""
	}
	return e.Lines[0]
}

// replaceGroup replaces capture group 1 of every match of re in s.
func replaceGroup(s string, re *regexp.Regexp, fn func(string) (string, error)) (string, error) {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s, nil
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		repl, err := fn(s[start:end])
		if err != nil {
			return "", err
		}
		b.WriteString(s[last:start])
		b.WriteString(repl)
		last = end
	}
	b.WriteString(s[last:])
	return b.String(), nil
}
