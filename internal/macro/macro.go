// Package macro lowers author shorthand directives into the primitive
// directives the game reads.
package macro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dom-compiler/internal/entry"
)

// ErrInvalidToken reports a shorthand directive with unusable arguments.
var ErrInvalidToken = errors.New("invalid shorthand argument")

// Directive is one directive line split into name and arguments. Name has
// no leading '#'.
type Directive struct {
	Name string
	Args []string
}

func (d Directive) String() string {
	if len(d.Args) == 0 {
		return "#" + d.Name
	}
	return "#" + d.Name + " " + strings.Join(d.Args, " ")
}

// ParseDirective splits a directive line. Leading '#' characters are
// dropped and arguments stop at a "--" comment.
func ParseDirective(line string) (Directive, bool) {
	trimmed := strings.TrimLeft(line, "#")
	if len(trimmed) == len(line) || len(line)-len(trimmed) > 2 {
		return Directive{}, false
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return Directive{}, false
	}
	d := Directive{Name: fields[0]}
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "--") {
			break
		}
		d.Args = append(d.Args, f)
	}
	return d, true
}

// IDResolver turns an id token into an absolute id for a category.
type IDResolver interface {
	Token(token string, target entry.Category) (int, error)
}

// summons maps summon-style shorthand to the effect code it lowers to and
// the category its id argument lives in.
var summons = map[string]struct {
	effect int
	target entry.Category
}{
	"globalenchantment":     {10081, entry.EnchantmentNumber},
	"combatsummon":          {1, entry.Monster},
	"ritualsummon":          {10001, entry.Monster},
	"ritualsummoncommander": {10021, entry.Monster},
}

var pathDirectives = map[string]bool{
	"magicskill":     true,
	"magicboost":     true,
	"gems":           true,
	"mainpath":       true,
	"mainlevel":      true,
	"secondarypath":  true,
	"secondarylevel": true,
	"magic":          true,
}

// Expander rewrites shorthand lines. It holds no state between calls.
type Expander struct {
	ids IDResolver
}

func NewExpander(ids IDResolver) *Expander {
	return &Expander{ids: ids}
}

// Expand returns the primitive lines for a shorthand line. ok is false when
// line is not shorthand and must be kept as written.
func (x *Expander) Expand(line string) (lines []string, ok bool, err error) {
	d, isDirective := ParseDirective(line)
	if !isDirective {
		return nil, false, nil
	}
	out, ok, err := x.Lower(d)
	if err != nil || !ok {
		return nil, ok, err
	}
	lines = make([]string, len(out))
	for i, o := range out {
		lines[i] = o.String()
	}
	return lines, true, nil
}

// Lower expands one directive. Output directives are never expanded again.
func (x *Expander) Lower(d Directive) ([]Directive, bool, error) {
	key := strings.ToLower(strings.ReplaceAll(d.Name, "-", ""))
	if s, found := summons[key]; found {
		return x.summon(d, s.effect, s.target)
	}
	if pathDirectives[key] {
		return magicPaths(d)
	}
	if key == "custommagic" {
		return customMagic(d)
	}
	return nil, false, nil
}

func (x *Expander) summon(d Directive, effect int, target entry.Category) ([]Directive, bool, error) {
	if len(d.Args) != 1 {
		return nil, false, fmt.Errorf("%w: #%s takes one id, got %d arguments", ErrInvalidToken, d.Name, len(d.Args))
	}
	id, err := x.ids.Token(d.Args[0], target)
	if err != nil {
		return nil, false, fmt.Errorf("expand #%s: %w", d.Name, err)
	}
	return []Directive{
		{Name: "effect", Args: []string{strconv.Itoa(effect)}},
		{Name: "damage", Args: []string{strconv.Itoa(id)}},
	}, true, nil
}

func magicPaths(d Directive) ([]Directive, bool, error) {
	if len(d.Args) == 0 || isNumeric(d.Args[0]) {
		return nil, false, nil
	}
	counts, ok := MagicPaths(d.Args[0])
	if !ok {
		return nil, false, nil
	}
	name := canonicalName(d.Name)
	out := make([]Directive, 0, len(counts))
	for _, c := range counts {
		out = append(out, Directive{
			Name: name,
			Args: []string{strconv.Itoa(c.School), strconv.Itoa(c.Count)},
		})
	}
	return out, true, nil
}

func customMagic(d Directive) ([]Directive, bool, error) {
	if len(d.Args) == 0 || isNumeric(d.Args[0]) {
		return nil, false, nil
	}
	mask, ok := CustomMagicMask(d.Args[0])
	if !ok {
		return nil, false, nil
	}
	if len(d.Args) < 2 {
		return nil, false, fmt.Errorf("%w: #%s %s has no chance", ErrInvalidToken, d.Name, d.Args[0])
	}
	args := append([]string{strconv.Itoa(mask)}, d.Args[1:]...)
	return []Directive{{Name: canonicalName(d.Name), Args: args}}, true, nil
}

// canonicalName drops the dashes some authors put in shorthand names.
func canonicalName(name string) string {
	return strings.ReplaceAll(name, "-", "")
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
