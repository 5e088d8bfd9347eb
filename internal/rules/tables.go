// Package rules loads the static classification tables the engine
// depends on: arena weapon, mythic, and monster set name patterns,
// role archetype sets, class and set abbreviations, valid gear
// combinations, and the tracked buff/debuff templates.
//
// The tables are configuration, not code. A default copy ships
// embedded in the binary; operators can override it with a YAML file
// on disk. A table that fails to load is fatal: the engine would
// silently misclassify every item without it.
package rules

import (
	_ "embed"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
)

//go:embed tables.yaml
var embeddedTables []byte

// EffectTemplate describes one tracked raid buff or debuff.
type EffectTemplate struct {
	Name     string             `yaml:"name"`
	Category eso.EffectCategory `yaml:"category"`

	// AbilityIDs are the upstream identifiers whose reported uptimes
	// are candidates for this effect. The displayed value is the
	// maximum across them.
	AbilityIDs []int `yaml:"ability_ids"`

	// FixedAbilityID, when set, is the only identifier consulted.
	// AbilityIDs is ignored. This exists for exactly one effect whose
	// secondary IDs report misleading values.
	FixedAbilityID int `yaml:"fixed_ability_id,omitempty"`

	// Conditional effects are only shown when some player's resolved
	// gear contains TriggerSet at TriggerPieces or more pieces.
	Conditional   bool   `yaml:"conditional,omitempty"`
	TriggerSet    string `yaml:"trigger_set,omitempty"`
	TriggerPieces int    `yaml:"trigger_pieces,omitempty"`

	// AnnotateOnMythic names a one piece mythic that inflates this
	// effect's raid-wide uptime. When any player wears it the
	// displayed value is flagged, not altered.
	AnnotateOnMythic string `yaml:"annotate_on_mythic,omitempty"`
}

// Tables holds every static lookup the engine consumes. Immutable
// after Load.
type Tables struct {
	ArenaWeapons     []string          `yaml:"arena_weapons"`
	Mythics          []string          `yaml:"mythics"`
	MonsterSets      []string          `yaml:"monster_sets"`
	TankArchetypes   []string          `yaml:"tank_archetypes"`
	HealerArchetypes []string          `yaml:"healer_archetypes"`
	ClassAbbrev      map[string]string `yaml:"class_abbreviations"`
	SetAbbrev        map[string]string `yaml:"set_abbreviations"`

	// ValidCombinations enumerates the per-set piece counts that sum
	// to a deliberate loadout. Maintained by hand, never inferred.
	ValidCombinations [][]int `yaml:"valid_combinations"`

	Effects []EffectTemplate `yaml:"effects"`
}

// Load parses the embedded default tables.
func Load() (*Tables, error) {
	return parse(embeddedTables, "embedded")
}

// LoadFile parses an operator-supplied override file.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "reading classification tables").
			WithMeta("path", path)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "parsing classification tables").
			WithMeta("source", source)
	}
	if err := t.validate(); err != nil {
		return nil, errors.Wrapf(err, "validating classification tables from %s", source)
	}
	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.ArenaWeapons) == 0 {
		return errors.Internal("arena_weapons table is empty")
	}
	if len(t.Mythics) == 0 {
		return errors.Internal("mythics table is empty")
	}
	if len(t.MonsterSets) == 0 {
		return errors.Internal("monster_sets table is empty")
	}
	if len(t.ValidCombinations) == 0 {
		return errors.Internal("valid_combinations table is empty")
	}
	for _, e := range t.Effects {
		if e.Name == "" {
			return errors.Internal("effect template with empty name")
		}
		if e.Category != eso.EffectBuff && e.Category != eso.EffectDebuff {
			return errors.Internalf("effect %q has unknown category %q", e.Name, e.Category)
		}
		if len(e.AbilityIDs) == 0 && e.FixedAbilityID == 0 {
			return errors.Internalf("effect %q has no ability ids", e.Name)
		}
		if e.Conditional && (e.TriggerSet == "" || e.TriggerPieces < 1) {
			return errors.Internalf("conditional effect %q missing trigger", e.Name)
		}
	}
	return nil
}

// matchAny reports whether name contains any of the patterns,
// case-insensitively. The tables store lowercase substrings so that
// "Perfected Maelstrom Inferno Staff" matches the "maelstrom" entry.
func matchAny(name string, patterns []string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsArenaWeapon reports whether the name matches an arena weapon pattern.
func (t *Tables) IsArenaWeapon(name string) bool { return matchAny(name, t.ArenaWeapons) }

// IsMythic reports whether the name matches a one piece mythic item.
func (t *Tables) IsMythic(name string) bool { return matchAny(name, t.Mythics) }

// IsMonsterSet reports whether the name matches a two piece monster set.
func (t *Tables) IsMonsterSet(name string) bool { return matchAny(name, t.MonsterSets) }

// IsTankArchetype reports whether the set name is tank archetype gear.
func (t *Tables) IsTankArchetype(name string) bool { return matchAny(name, t.TankArchetypes) }

// IsHealerArchetype reports whether the set name is healer archetype gear.
func (t *Tables) IsHealerArchetype(name string) bool { return matchAny(name, t.HealerArchetypes) }

// AbbreviateClass returns the short display form for a game class, or
// the input unchanged when no mapping exists.
func (t *Tables) AbbreviateClass(className string) string {
	if short, ok := t.ClassAbbrev[className]; ok {
		return short
	}
	return className
}

// IsValidCombination reports whether the sorted-descending piece
// counts match one of the enumerated deliberate loadouts.
func (t *Tables) IsValidCombination(counts []int) bool {
	for _, combo := range t.ValidCombinations {
		if equalInts(combo, counts) {
			return true
		}
	}
	return false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
