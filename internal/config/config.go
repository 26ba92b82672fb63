package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. They double as long flag names and, upper-cased with an
// DOMC_ prefix, as environment variable names.
const (
	KeyWeaponIndex      = "start-weapon-index"
	KeyArmorIndex       = "start-armor-index"
	KeyMonsterIndex     = "start-monster-index"
	KeySpellIndex       = "start-spell-index"
	KeyNationIndex      = "start-nation-index"
	KeySiteIndex        = "start-site-index"
	KeyEnchantmentIndex = "start-enchnbr-index"
	KeyEventCodeIndex   = "start-eventcode-index"

	KeyExtension = "extension"
	KeyWorkers   = "workers"
	KeyClean     = "clean"
	KeyReport    = "report"
	KeyVerbose   = "verbose"
)

// Aliases maps the short flag spellings to their keys.
var Aliases = map[string]string{
	"windex":  KeyWeaponIndex,
	"aindex":  KeyArmorIndex,
	"mindex":  KeyMonsterIndex,
	"spindex": KeySpellIndex,
	"sindex":  KeySpellIndex,
	"nindex":  KeyNationIndex,
	"siindex": KeySiteIndex,
	"enindex": KeyEnchantmentIndex,
	"ecindex": KeyEventCodeIndex,
	"eindex":  KeyEventCodeIndex,
}

const envPrefix = "DOMC"

type Config struct {
	Offsets   Offsets
	Extension string
	Workers   int
	Clean     bool
	Report    string
	Verbose   bool
}

// Load layers defaults, a .env file, DOMC_* environment variables and the
// given flags (highest precedence). flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultOffsets()
	v.SetDefault(KeyWeaponIndex, defaults.Weapon)
	v.SetDefault(KeyArmorIndex, defaults.Armor)
	v.SetDefault(KeyMonsterIndex, defaults.Monster)
	v.SetDefault(KeySpellIndex, defaults.Spell)
	v.SetDefault(KeyNationIndex, defaults.Nation)
	v.SetDefault(KeySiteIndex, defaults.Site)
	v.SetDefault(KeyEnchantmentIndex, defaults.EnchantmentNumber)
	v.SetDefault(KeyEventCodeIndex, defaults.EventCode)
	v.SetDefault(KeyExtension, ".dme")
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyClean, false)
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyVerbose, false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		Offsets: Offsets{
			Weapon:            v.GetInt(KeyWeaponIndex),
			Armor:             v.GetInt(KeyArmorIndex),
			Monster:           v.GetInt(KeyMonsterIndex),
			Spell:             v.GetInt(KeySpellIndex),
			Nation:            v.GetInt(KeyNationIndex),
			Site:              v.GetInt(KeySiteIndex),
			EnchantmentNumber: v.GetInt(KeyEnchantmentIndex),
			EventCode:         v.GetInt(KeyEventCodeIndex),
		},
		Extension: v.GetString(KeyExtension),
		Workers:   v.GetInt(KeyWorkers),
		Clean:     v.GetBool(KeyClean),
		Report:    v.GetString(KeyReport),
		Verbose:   v.GetBool(KeyVerbose),
	}

	if err := cfg.Offsets.Validate(); err != nil {
		return nil, fmt.Errorf("validate offsets: %w", err)
	}
	return cfg, nil
}

// RegisterFlags declares every setting on fs. The short aliases need
// NormalizeFlag installed as well.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultOffsets()
	fs.Int(KeyWeaponIndex, d.Weapon, "base id for relative weapon ids (1000-3999)")
	fs.Int(KeyArmorIndex, d.Armor, "base id for relative armor ids (300-999)")
	fs.Int(KeyMonsterIndex, d.Monster, "base id for relative monster ids (5000-8999)")
	fs.Int(KeySpellIndex, d.Spell, "base id for relative spell ids (1300-3999)")
	fs.Int(KeyNationIndex, d.Nation, "base id for relative nation ids (150-499)")
	fs.Int(KeySiteIndex, d.Site, "base id for relative site ids (1700-3999)")
	fs.Int(KeyEnchantmentIndex, d.EnchantmentNumber, "base for relative enchantment numbers (200-9999)")
	fs.Int(KeyEventCodeIndex, d.EventCode, "base for relative event codes, counting down (-5000 to -300)")
	fs.String(KeyExtension, ".dme", "extension of source files")
	fs.Int(KeyWorkers, 4, "concurrent asset copies")
	fs.Bool(KeyClean, false, "empty the output directory before writing")
	fs.String(KeyReport, "", "write a YAML build report to this path")
	fs.BoolP(KeyVerbose, "v", false, "debug logging")
}

// NormalizeFlag maps the short spellings in Aliases to their keys. Install
// it with SetNormalizeFunc before parsing.
func NormalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if key, ok := Aliases[name]; ok {
		name = key
	}
	return pflag.NormalizedName(name)
}
