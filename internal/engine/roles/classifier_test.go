package roles_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/brainsnorkel/eso-builds/internal/engine/gear"
	"github.com/brainsnorkel/eso-builds/internal/engine/roles"
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

type ClassifierTestSuite struct {
	suite.Suite
	classifier *roles.Classifier
}

func (s *ClassifierTestSuite) SetupTest() {
	tables, err := rules.Load()
	s.Require().NoError(err)

	s.classifier, err = roles.New(&roles.Config{Tables: tables})
	s.Require().NoError(err)
}

func ordinarySet(name string, pieces int) eso.GearSet {
	return eso.GearSet{
		Name:       name,
		PieceCount: pieces,
		MaxPieces:  5,
		Category:   eso.CategoryOrdinarySet,
	}
}

func healingCasts() []eso.AbilityHighlight {
	return []eso.AbilityHighlight{
		{Name: "Combat Prayer", Metric: 32.1, Kind: eso.MetricHealingPercent},
		{Name: "Illustrious Healing", Metric: 21.9, Kind: eso.MetricHealingPercent},
		{Name: "Force Pulse", Metric: 8.4, Kind: eso.MetricDamagePercent},
	}
}

func damageCasts() []eso.AbilityHighlight {
	return []eso.AbilityHighlight{
		{Name: "Fatecarver", Metric: 41.0, Kind: eso.MetricDamagePercent},
		{Name: "Cephaliarch's Flail", Metric: 17.2, Kind: eso.MetricDamagePercent},
	}
}

func (s *ClassifierTestSuite) TestHealerNeedsGearAndCasts() {
	healerGear := gear.Resolution{Sets: []eso.GearSet{
		ordinarySet("Spell Power Cure", 5),
		ordinarySet("Jorvuld's Guidance", 5),
	}}

	s.Equal(eso.RoleHealer, s.classifier.Classify(healerGear, healingCasts()))

	// Healing gear with damage-dominated casts is support damage.
	s.Equal(eso.RoleDamage, s.classifier.Classify(healerGear, damageCasts()))

	// Healing casts without healer gear stay damage.
	dpsGear := gear.Resolution{Sets: []eso.GearSet{ordinarySet("Coral Riptide", 5)}}
	s.Equal(eso.RoleDamage, s.classifier.Classify(dpsGear, healingCasts()))
}

func (s *ClassifierTestSuite) TestTankFromGear() {
	tankGear := gear.Resolution{Sets: []eso.GearSet{
		ordinarySet("Pearlescent Ward", 5),
		ordinarySet("Saxhleel Champion", 5),
	}}

	// Gear decides Tank regardless of cast evidence.
	s.Equal(eso.RoleTank, s.classifier.Classify(tankGear, damageCasts()))
	s.Equal(eso.RoleTank, s.classifier.Classify(tankGear, nil))
}

func (s *ClassifierTestSuite) TestTankFromShield() {
	res := gear.Resolution{
		Sets:           []eso.GearSet{ordinarySet("Coral Riptide", 5)},
		ShieldEquipped: true,
	}
	s.Equal(eso.RoleTank, s.classifier.Classify(res, damageCasts()))
}

func (s *ClassifierTestSuite) TestHealerBeatsTankGear() {
	// A healer wearing one tank archetype set still classifies as
	// healer when healing casts dominate.
	res := gear.Resolution{Sets: []eso.GearSet{
		ordinarySet("Spell Power Cure", 5),
		ordinarySet("Powerful Assault", 5),
	}}
	s.Equal(eso.RoleHealer, s.classifier.Classify(res, healingCasts()))
}

func (s *ClassifierTestSuite) TestNoEvidenceDefaultsToDamage() {
	s.Equal(eso.RoleDamage, s.classifier.Classify(gear.Resolution{NoGearData: true}, nil))
}

func (s *ClassifierTestSuite) TestDeterministic() {
	res := gear.Resolution{Sets: []eso.GearSet{ordinarySet("Spell Power Cure", 5)}}
	casts := healingCasts()
	first := s.classifier.Classify(res, casts)
	for i := 0; i < 5; i++ {
		s.Equal(first, s.classifier.Classify(res, casts))
	}
}

func TestClassifierTestSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}
