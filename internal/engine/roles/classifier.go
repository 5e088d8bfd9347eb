// Package roles infers a player's combat role from resolved gear and
// ability cast evidence.
package roles

import (
	"github.com/brainsnorkel/eso-builds/internal/engine/gear"
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

// Config holds the dependencies for the role classifier.
type Config struct {
	Tables *rules.Tables
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Tables == nil {
		vb.RequiredField("Tables")
	}

	return vb.Build()
}

// Classifier assigns Tank, Healer, or Damage from gear archetypes and
// top-ability evidence.
type Classifier struct {
	tables *rules.Tables
}

// New creates a role classifier.
func New(cfg *Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Classifier{tables: cfg.Tables}, nil
}

// Classify derives the role for one player. The tie-break policy is
// deliberate and load-bearing: healer gear alone is not enough (support
// damage builds wear healing sets), so Healer additionally requires
// dominant healing cast evidence; Tank is decided on gear or an
// equipped shield with no ability evidence consulted.
func (c *Classifier) Classify(resolution gear.Resolution, highlights []eso.AbilityHighlight) eso.Role {
	if c.hasHealerGear(resolution.Sets) && healingDominates(highlights) {
		return eso.RoleHealer
	}
	if c.hasTankGear(resolution.Sets) || resolution.ShieldEquipped {
		return eso.RoleTank
	}
	return eso.RoleDamage
}

func (c *Classifier) hasHealerGear(sets []eso.GearSet) bool {
	for _, gs := range sets {
		if gs.Category == eso.CategoryOrdinarySet && c.tables.IsHealerArchetype(gs.Name) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasTankGear(sets []eso.GearSet) bool {
	for _, gs := range sets {
		if c.tables.IsTankArchetype(gs.Name) {
			return true
		}
	}
	return false
}

// healingDominates requires strictly more healing entries than damage
// entries among the top abilities.
func healingDominates(highlights []eso.AbilityHighlight) bool {
	healing, damage := 0, 0
	for _, h := range highlights {
		switch h.Kind {
		case eso.MetricHealingPercent:
			healing++
		case eso.MetricDamagePercent:
			damage++
		}
	}
	return healing > damage
}
