package esologs

import (
	"strconv"
	"strings"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

// Upstream numeric slot indices for combatant gear.
var slotByIndex = map[int]eso.Slot{
	0:  eso.SlotHead,
	1:  eso.SlotChest,
	2:  eso.SlotShoulders,
	3:  eso.SlotWaist,
	4:  eso.SlotHands,
	5:  eso.SlotLegs,
	6:  eso.SlotFeet,
	7:  eso.SlotNeck,
	8:  eso.SlotRing1,
	9:  eso.SlotRing2,
	10: eso.SlotMainHand,
	11: eso.SlotOffHand,
	// Backup bar weapons share the front bar slot semantics.
	12: eso.SlotMainHand,
	13: eso.SlotOffHand,
}

// twoHandedIndicators match weapon names that occupy both hands and
// count as two set pieces.
var twoHandedIndicators = []string{
	"greatsword", "maul", "battle axe", "battleaxe", "two handed",
	"staff", "inferno staff", "ice staff", "lightning staff",
	"restoration staff", "destruction staff", "bow",
}

const perfectedPrefix = "Perfected "

// trashKeywords mark pulls that carry a difficulty value upstream but
// are not boss encounters.
var trashKeywords = []string{
	"unknown", "trash", "add", "acolyte", "atronach", "lurker",
	"slasher", "iridescent", "sandroach", "mirrorworm",
}

// Shortest fight worth reporting; anything quicker is a trash pull.
const minBossFightMillis = 30_000

// ConvertGear maps upstream gear items to equipped items. Items
// without a set name come through with it empty and classify as
// unclassifiable downstream.
func ConvertGear(items []GearItem, tables *rules.Tables) []eso.EquippedItem {
	out := make([]eso.EquippedItem, 0, len(items))
	for _, item := range items {
		slot := slotByIndex[item.Slot]
		if slot == "" {
			slot = eso.SlotUnknown
		}

		lowerName := strings.ToLower(item.Name)
		if slot == eso.SlotMainHand && isTwoHanded(lowerName) {
			slot = eso.SlotTwoHand
		}

		// Arena weapons and mythics carry the set identity in the item
		// name, not the set name. An ordinary set's staff keeps its set
		// name so it still counts toward the five piece bonus.
		setName := item.SetName
		if slot == eso.SlotTwoHand && item.Name != "" &&
			(tables.IsArenaWeapon(item.Name) || tables.IsMythic(item.Name)) {
			setName = item.Name
		}

		out = append(out, eso.EquippedItem{
			Slot:        slot,
			SetID:       setIDString(item.SetID),
			SetName:     setName,
			IsPerfected: strings.HasPrefix(setName, perfectedPrefix),
			IsShield:    slot == eso.SlotOffHand && strings.Contains(lowerName, "shield"),
		})
	}
	return out
}

func isTwoHanded(lowerName string) bool {
	for _, indicator := range twoHandedIndicators {
		if strings.Contains(lowerName, indicator) {
			return true
		}
	}
	return false
}

func setIDString(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

// ConvertDifficulty maps the upstream difficulty code.
func ConvertDifficulty(code int) eso.Difficulty {
	switch code {
	case 122:
		return eso.DifficultyVeteranHardMode
	case 121:
		return eso.DifficultyVeteran
	default:
		return eso.DifficultyNormal
	}
}

// NormalizeHandle produces the display handle for a roster entry. The
// account display name wins over the character name; either way the
// result carries a single @ prefix, and the upstream's "@nil"
// anonymous marker reads as "@anonymous".
func NormalizeHandle(name, displayName string) string {
	handle := displayName
	if handle == "" {
		handle = name
	}
	if handle == "" {
		return "@anonymous"
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	if handle == "@nil" {
		return "@anonymous"
	}
	return handle
}

// BossFights filters a report's pulls down to reportable boss
// encounters: a difficulty value upstream, no trash keyword in the
// name, and at least thirty seconds long.
func BossFights(fights []Fight) []Fight {
	var out []Fight
	for _, f := range fights {
		if f.Difficulty == nil {
			continue
		}
		if f.Duration() < minBossFightMillis {
			continue
		}
		if containsTrashKeyword(f.Name) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func containsTrashKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range trashKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
