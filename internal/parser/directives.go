package parser

import (
	"regexp"

	"dom-compiler/internal/entry"
)

var (
	// recordStart matches any directive line.
	recordStart = regexp.MustCompile(`^#\w.+`)
	// command is the first directive token of a line.
	command = regexp.MustCompile(`#\S+`)
	// recordEnd matches the record terminator.
	recordEnd = regexp.MustCompile(`^#end`)
	// declaredID is the first argument of the opening directive.
	declaredID = regexp.MustCompile(`^#\w\S*\s+(\S+)`)
	// assetPath is a quoted file argument of a sprite, icon or flag directive.
	assetPath = regexp.MustCompile(`#(?:x?spr\d?|icon|flag)\s*"([^"]+)"`)
)

// directiveCategories maps opening directives to the bucket their record
// belongs to. Anything else is General.
var directiveCategories = map[string]entry.Category{
	"#modname":        entry.Meta,
	"#description":    entry.Meta,
	"#version":        entry.Meta,
	"#domversion":     entry.Meta,
	"#icon":           entry.Meta,
	"#selectsound":    entry.Sound,
	"#selectweapon":   entry.Weapon,
	"#newweapon":      entry.Weapon,
	"#selectarmor":    entry.Armor,
	"#newarmor":       entry.Armor,
	"#selectmonster":  entry.Monster,
	"#newmonster":     entry.Monster,
	"#selectnametype": entry.Name,
	"#selectbless":    entry.Blessing,
	"#selectsite":     entry.Site,
	"#newsite":        entry.Site,
	"#selectnation":   entry.Nation,
	"#newnation":      entry.Nation,
	"#selectspell":    entry.Spell,
	"#newspell":       entry.Spell,
	"#selectitem":     entry.Item,
	"#newitem":        entry.Item,
	"#selectpoptype":  entry.Poptype,
	"#newmerc":        entry.Mercenary,
	"#newevent":       entry.Event,
	"#newtemplate":    entry.Ai,
}

// Classify returns the category of a record opened by directive.
func Classify(directive string) entry.Category {
	if c, ok := directiveCategories[directive]; ok {
		return c
	}
	return entry.General
}

// Directive returns the directive token of a line, or "".
func Directive(line string) string {
	return command.FindString(line)
}

// AssetPaths returns the quoted asset paths referenced by line.
func AssetPaths(line string) []string {
	var out []string
	for _, m := range assetPath.FindAllStringSubmatch(line, -1) {
		out = append(out, m[1])
	}
	return out
}
