// Package eso defines the core data model for encounter build analysis:
// equipped items, resolved gear sets, player builds, and tracked raid
// effects.
package eso

import "time"

// Role is a player's combat role within an encounter.
type Role string

// Player roles.
const (
	RoleTank   Role = "Tank"
	RoleHealer Role = "Healer"
	RoleDamage Role = "DPS"
)

// Difficulty is an encounter difficulty tier.
type Difficulty string

// Encounter difficulties.
const (
	DifficultyNormal          Difficulty = "Normal"
	DifficultyVeteran         Difficulty = "Veteran"
	DifficultyVeteranHardMode Difficulty = "Veteran Hard Mode"
)

// Slot is an equipment slot. The fetch collaborator normalizes upstream
// slot identifiers into this enumeration, mapping any two-handed weapon
// (greatswords, bows, staves) to SlotTwoHand.
type Slot string

// Equipment slots. Twelve inventory slots; a two-handed weapon occupies
// SlotTwoHand and counts as two set pieces.
const (
	SlotHead      Slot = "head"
	SlotShoulders Slot = "shoulders"
	SlotChest     Slot = "chest"
	SlotHands     Slot = "hands"
	SlotWaist     Slot = "waist"
	SlotLegs      Slot = "legs"
	SlotFeet      Slot = "feet"
	SlotNeck      Slot = "neck"
	SlotRing1     Slot = "ring1"
	SlotRing2     Slot = "ring2"
	SlotMainHand  Slot = "mainHand"
	SlotOffHand   Slot = "offHand"
	SlotTwoHand   Slot = "twoHand"
	SlotUnknown   Slot = "unknown"
)

// TwoHanded reports whether the slot holds a two-handed weapon.
func (s Slot) TwoHanded() bool {
	return s == SlotTwoHand
}

// Category classifies an equipped item's set for counting purposes.
type Category string

// Item categories, in classification priority order.
const (
	CategoryUnclassifiable Category = "Unclassifiable"
	CategoryArenaWeapon    Category = "ArenaWeapon"
	CategoryMythic         Category = "Mythic"
	CategoryMonsterSet     Category = "MonsterSet"
	CategoryOrdinarySet    Category = "OrdinarySet"
)

// MaxPieces returns the full-set size for the category.
func (c Category) MaxPieces() int {
	switch c {
	case CategoryMythic:
		return 1
	case CategoryArenaWeapon, CategoryMonsterSet:
		return 2
	default:
		return 5
	}
}

// EquippedItem is one item instance on one player, as surfaced by the
// fetch collaborator. Constructed once per fight per player and never
// mutated.
type EquippedItem struct {
	Slot        Slot
	SetID       string
	SetName     string
	IsPerfected bool

	// IsShield is set from the upstream item type for off-hand items.
	// Shields are tank evidence for role classification.
	IsShield bool
}

// GearSet is a resolved, de-duplicated equipment bundle for one player.
// Perfected and non-perfected pieces of the same conceptual set are merged
// into a single entry; Name never carries the "Perfected " prefix.
type GearSet struct {
	Name         string
	PieceCount   int
	IsPerfected  bool
	MaxPieces    int
	IsIncomplete bool
	Category     Category

	// Abbreviation is the short display form, stamped from the
	// abbreviation registry. Falls back to Name for unknown sets.
	Abbreviation string
}

// MetricKind identifies the metric an ability highlight was ranked by.
type MetricKind string

// Ability highlight metrics.
const (
	MetricCastCount      MetricKind = "castCount"
	MetricHealingPercent MetricKind = "healingPercent"
	MetricDamagePercent  MetricKind = "damagePercent"
)

// AbilityHighlight is one entry of a player's top-ability list, already
// ranked and truncated by the cast-data collaborator.
type AbilityHighlight struct {
	Name   string
	Metric float64
	Kind   MetricKind
}

// PlayerBuild is one player within one encounter. Builds are owned by
// their enclosing EncounterResult and never shared across encounters.
type PlayerBuild struct {
	Handle            string
	ClassName         string
	Role              Role
	GearSets          []GearSet
	AbilityHighlights []AbilityHighlight
	NoGearData        bool
	NoCastData        bool
}

// HasSet reports whether the player wears at least pieces of the named
// set. Name matching ignores the perfected prefix because resolved set
// names are already normalized.
func (p *PlayerBuild) HasSet(name string, pieces int) bool {
	for _, gs := range p.GearSets {
		if gs.Name == name && gs.PieceCount >= pieces {
			return true
		}
	}
	return false
}

// EffectCategory distinguishes raid buffs from raid debuffs.
type EffectCategory string

// Effect categories.
const (
	EffectBuff   EffectCategory = "Buff"
	EffectDebuff EffectCategory = "Debuff"
)

// BuffDebuffUptime is one tracked raid effect for one encounter.
// UptimePercent is 0-100; formatters render one decimal place.
// Annotated warns that the number may not reflect full-raid uptime
// (single-target buffs inflated by a one-piece ring mythic).
type BuffDebuffUptime struct {
	Name          string
	Category      EffectCategory
	UptimePercent float64
	IsConditional bool
	Annotated     bool
}

// EncounterResult is one boss fight with its roster and tracked effects.
type EncounterResult struct {
	Name           string
	Difficulty     Difficulty
	Kill           bool
	BossPercentage float64
	Players        []PlayerBuild
	Effects        []BuffDebuffUptime
}

// Killed reports whether the encounter should be presented as a kill.
// Boss health at or below 0.1% is treated as a kill even when the kill
// flag is missing upstream.
func (e *EncounterResult) Killed() bool {
	return e.Kill || e.BossPercentage <= 0.1
}

// PlayersByRole returns the roster subset with the given role, in roster
// order.
func (e *EncounterResult) PlayersByRole(role Role) []PlayerBuild {
	var out []PlayerBuild
	for _, p := range e.Players {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// ReportSummary is the analyzed form of one uploaded combat log.
type ReportSummary struct {
	LogCode     string
	LogURL      string
	Title       string
	GuildName   string
	StartedAt   time.Time
	Encounters  []EncounterResult
	GeneratedAt time.Time
}
