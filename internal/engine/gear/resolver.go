package gear

import (
	"sort"
	"strings"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

const perfectedPrefix = "Perfected "

// ResolverConfig holds the dependencies for the gear set resolver.
type ResolverConfig struct {
	Classifier *Classifier
	Tables     *rules.Tables
}

// Validate ensures all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Classifier == nil {
		vb.RequiredField("Classifier")
	}
	if c.Tables == nil {
		vb.RequiredField("Tables")
	}

	return vb.Build()
}

// Resolver groups a player's equipped items into named gear sets.
type Resolver struct {
	classifier *Classifier
	tables     *rules.Tables
}

// NewResolver creates a gear set resolver.
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Resolver{
		classifier: cfg.Classifier,
		tables:     cfg.Tables,
	}, nil
}

// Resolution is the resolved view of one player's equipment.
type Resolution struct {
	// Sets is ordered: ordinary sets by descending piece count (ties
	// by first-seen order), then monster sets, then mythic items.
	Sets []eso.GearSet

	// NoGearData is set when no item produced a classifiable set,
	// including the zero-items case. It marks an upstream data gap,
	// not a player error.
	NoGearData bool

	// ShieldEquipped reports an off-hand shield, used as tank
	// evidence by role classification.
	ShieldEquipped bool
}

// group accumulates pieces of one conceptual set while resolving.
type group struct {
	name         string
	category     eso.Category
	pieceCount   int
	allPerfected bool
	firstSeen    int
}

// Resolve groups items into gear sets. Perfected and non-perfected
// pieces of the same set merge into one entry whose name drops the
// prefix; the merged entry is perfected only when every piece was.
// Two-handed arena weapons contribute two pieces from one inventory
// slot. Unclassifiable items are dropped silently.
func (r *Resolver) Resolve(items []eso.EquippedItem) Resolution {
	groups := make(map[string]*group)
	order := 0
	var res Resolution

	for _, item := range items {
		if item.Slot == eso.SlotOffHand && item.IsShield {
			res.ShieldEquipped = true
		}

		category := r.classifier.Classify(item)
		if category == eso.CategoryUnclassifiable {
			continue
		}

		name := normalizeName(item.SetName)
		key := string(category) + "/" + name

		g, ok := groups[key]
		if !ok {
			g = &group{
				name:         name,
				category:     category,
				allPerfected: true,
				firstSeen:    order,
			}
			groups[key] = g
			order++
		}

		switch category {
		case eso.CategoryArenaWeapon:
			// One two-handed weapon completes the two piece bonus.
			// A second copy on the other bar adds nothing.
			if g.pieceCount < 2 {
				g.pieceCount = 2
			}
		default:
			g.pieceCount++
		}
		if !item.IsPerfected {
			g.allPerfected = false
		}
	}

	if len(groups) == 0 {
		res.NoGearData = true
		return res
	}

	res.Sets = r.assemble(groups)
	return res
}

// assemble orders the groups and applies the incompleteness rule.
func (r *Resolver) assemble(groups map[string]*group) []eso.GearSet {
	var ordinary, monster, mythic []*group
	for _, g := range groups {
		switch g.category {
		case eso.CategoryOrdinarySet, eso.CategoryArenaWeapon:
			ordinary = append(ordinary, g)
		case eso.CategoryMonsterSet:
			monster = append(monster, g)
		case eso.CategoryMythic:
			mythic = append(mythic, g)
		}
	}

	sort.Slice(ordinary, func(i, j int) bool {
		if ordinary[i].pieceCount != ordinary[j].pieceCount {
			return ordinary[i].pieceCount > ordinary[j].pieceCount
		}
		return ordinary[i].firstSeen < ordinary[j].firstSeen
	})
	sort.Slice(monster, func(i, j int) bool { return monster[i].firstSeen < monster[j].firstSeen })
	sort.Slice(mythic, func(i, j int) bool { return mythic[i].firstSeen < mythic[j].firstSeen })

	// Incompleteness is judged against the whole loadout, not each
	// set alone: a deliberate 5+5+2 leaves no set flagged while an
	// accidental 3 piece scrap of an intended 5 piece set is flagged.
	// Mythics are standalone one piece items and stay out of the
	// combination check.
	incomplete := !r.tables.IsValidCombination(loadoutCounts(ordinary, monster))

	sets := make([]eso.GearSet, 0, len(groups))
	for _, g := range ordinary {
		gs := toGearSet(g)
		if incomplete && g.category == eso.CategoryOrdinarySet && g.pieceCount < gs.MaxPieces {
			gs.IsIncomplete = true
		}
		sets = append(sets, gs)
	}
	for _, g := range monster {
		sets = append(sets, toGearSet(g))
	}
	for _, g := range mythic {
		sets = append(sets, toGearSet(g))
	}
	return sets
}

func loadoutCounts(ordinary, monster []*group) []int {
	counts := make([]int, 0, len(ordinary)+len(monster))
	for _, g := range ordinary {
		counts = append(counts, g.pieceCount)
	}
	for _, g := range monster {
		counts = append(counts, g.pieceCount)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	return counts
}

func toGearSet(g *group) eso.GearSet {
	return eso.GearSet{
		Name:        g.name,
		PieceCount:  g.pieceCount,
		IsPerfected: g.allPerfected,
		MaxPieces:   g.category.MaxPieces(),
		Category:    g.category,
	}
}

// normalizeName strips the literal perfected prefix so both variants
// of a set share one identity. The match is case-sensitive and exact.
func normalizeName(name string) string {
	return strings.TrimPrefix(name, perfectedPrefix)
}
