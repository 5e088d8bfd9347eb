// Package effects decides which tracked raid buffs and debuffs appear
// in an encounter's report and what uptime each one displays.
package effects

import (
	"strings"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

// Config holds the dependencies for the effect selector.
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

// Selector is a pure function of its per-encounter inputs; nothing
// persists between calls.
type Selector struct {
	templates []rules.EffectTemplate
}

// New creates an effect selector from the tracked effect templates.
func New(cfg *Config) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Selector{templates: cfg.Tables.Effects}, nil
}

// Select chooses the effects to report for one encounter. Always-shown
// effects pass through; conditional effects are included only when some
// player's resolved gear carries the trigger set at its required piece
// count. Included effects with no uptime sample display 0.0 rather than
// being dropped.
func (s *Selector) Select(rosterGear [][]eso.GearSet, samples map[int]float64) []eso.BuffDebuffUptime {
	out := make([]eso.BuffDebuffUptime, 0, len(s.templates))

	for _, tmpl := range s.templates {
		if tmpl.Conditional && !rosterWears(rosterGear, tmpl.TriggerSet, tmpl.TriggerPieces) {
			continue
		}

		out = append(out, eso.BuffDebuffUptime{
			Name:          tmpl.Name,
			Category:      tmpl.Category,
			UptimePercent: uptimeFor(tmpl, samples),
			IsConditional: tmpl.Conditional,
			Annotated: tmpl.AnnotateOnMythic != "" &&
				rosterWears(rosterGear, tmpl.AnnotateOnMythic, 1),
		})
	}

	return out
}

// uptimeFor picks the displayed value. The usual rule is the maximum
// across the template's ability IDs; a template with a fixed ID uses
// that single sample and nothing else.
func uptimeFor(tmpl rules.EffectTemplate, samples map[int]float64) float64 {
	if tmpl.FixedAbilityID != 0 {
		return samples[tmpl.FixedAbilityID]
	}

	best := 0.0
	for _, id := range tmpl.AbilityIDs {
		if v, ok := samples[id]; ok && v > best {
			best = v
		}
	}
	return best
}

// rosterWears reports whether any player's resolved gear contains the
// named set at the required piece count. Matching is a case-insensitive
// substring test so perfected and regional name variants still trigger.
func rosterWears(rosterGear [][]eso.GearSet, setName string, pieces int) bool {
	needle := strings.ToLower(setName)
	for _, sets := range rosterGear {
		for _, gs := range sets {
			if gs.PieceCount >= pieces && strings.Contains(strings.ToLower(gs.Name), needle) {
				return true
			}
		}
	}
	return false
}
