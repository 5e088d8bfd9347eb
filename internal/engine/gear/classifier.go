// Package gear turns raw per-player equipped-item records into resolved
// gear sets: items are tagged with an equipment category, grouped by
// normalized set name, counted with two-handed weapon weighting, and
// checked against the known full-loadout combinations.
package gear

import (
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

// ClassifierConfig holds the dependencies for the category classifier.
type ClassifierConfig struct {
	Tables *rules.Tables
}

// Validate ensures all required dependencies are provided
func (c *ClassifierConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Tables == nil {
		vb.RequiredField("Tables")
	}

	return vb.Build()
}

// Classifier tags equipped items with their counting category. It is a
// pure function over the static tables supplied at construction.
type Classifier struct {
	tables *rules.Tables
}

// NewClassifier creates a category classifier.
func NewClassifier(cfg *ClassifierConfig) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Classifier{tables: cfg.Tables}, nil
}

// Classify returns the counting category for one item. Rules apply in
// priority order; an unknown set name deliberately falls through to
// OrdinarySet so new game content still counts, with the miss surfaced
// later through the abbreviation registry's unknown-name report.
func (c *Classifier) Classify(item eso.EquippedItem) eso.Category {
	if item.SetName == "" {
		return eso.CategoryUnclassifiable
	}
	if item.Slot.TwoHanded() && c.tables.IsArenaWeapon(item.SetName) {
		return eso.CategoryArenaWeapon
	}
	if c.tables.IsMythic(item.SetName) {
		return eso.CategoryMythic
	}
	if c.tables.IsMonsterSet(item.SetName) {
		return eso.CategoryMonsterSet
	}
	return eso.CategoryOrdinarySet
}
