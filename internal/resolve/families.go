package resolve

import (
	"regexp"
	"strings"

	"dom-compiler/internal/entry"
)

// Family is a set of directive names whose relative id argument belongs to
// one category.
type Family struct {
	Name string
	// Own families resolve against the category of the enclosing entry.
	Own    bool
	Target entry.Category
	// Directives are regexp fragments matched against the whole directive
	// name, without the leading '#'.
	Directives []string

	pattern *regexp.Regexp
}

func (f *Family) compile() {
	f.pattern = regexp.MustCompile(`#(?:` + strings.Join(f.Directives, "|") + `)\s+(\$\S+)`)
}

// Families are tried in order against every line; a token is rewritten by
// the first family that matches it.
var Families = []*Family{
	{
		Name:       "declaration",
		Own:        true,
		Directives: []string{`(?:new|select|copy)\S+`},
	},
	{
		Name:       "weapon",
		Target:     entry.Weapon,
		Directives: []string{`secondaryeffect\S*`, `danceweapon`, `weapon`},
	},
	{
		Name:       "armor",
		Target:     entry.Armor,
		Directives: []string{`armor`},
	},
	{
		Name:   "monster",
		Target: entry.Monster,
		Directives: []string{
			`monpresentrec`, `damage`, `ownsmonrec`, `\S*shape\S*`, `twiceborn`, `lich`,
			`animated`, `\S*sum\S*`, `templetrainer`, `slaver`, `assassin`, `\S*mnr\S*`,
			`\S*mon\S*`, `\S*com\S*`, `\S*unit\S*`, `\S*rec\S*`, `\S*scout\S*`,
			`\S*hero\S*`, `\S*god\S*`, `guardspirit`, `\S*transform\S*`,
		},
	},
	{
		Name:       "site",
		Target:     entry.Site,
		Directives: []string{`\S*site\S*`},
	},
	{
		Name:       "spell",
		Target:     entry.Spell,
		Directives: []string{`\S*spell\S*`},
	},
	{
		Name:       "nation",
		Target:     entry.Nation,
		Directives: []string{`nat`, `restricted`, `\S*nation\S*`, `newtemplate`},
	},
	{
		Name:       "enchantment",
		Target:     entry.EnchantmentNumber,
		Directives: []string{`\S*ench\S*`},
	},
	{
		Name:       "event code",
		Target:     entry.Event,
		Directives: []string{`\S*code\S*`},
	},
}

func init() {
	for _, f := range Families {
		f.compile()
	}
}

// target returns the category a token matched by f resolves against inside
// an entry of category own.
func (f *Family) target(own entry.Category) entry.Category {
	if f.Own {
		return OwnTarget(own)
	}
	return f.Target
}

// OwnTarget is the id space of an entry's own declarations. AI templates
// are numbered in the nation space.
func OwnTarget(c entry.Category) entry.Category {
	if c == entry.Ai {
		return entry.Nation
	}
	return c
}

// FamilyOf returns the family that would rewrite a relative id following
// directive (with its '#'), or nil.
func FamilyOf(directive string) *Family {
	probe := directive + " $0"
	for _, f := range Families {
		if f.pattern.MatchString(probe) {
			return f
		}
	}
	return nil
}
