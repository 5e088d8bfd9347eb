package esologs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/brainsnorkel/eso-builds/internal/clients/esologs"
	"github.com/brainsnorkel/eso-builds/internal/engine/gear"
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

type ConvertTestSuite struct {
	suite.Suite

	tables *rules.Tables
}

func (s *ConvertTestSuite) SetupTest() {
	tables, err := rules.Load()
	s.Require().NoError(err)
	s.tables = tables
}

func (s *ConvertTestSuite) TestCombatantInfoObjectShape() {
	payload := `{"combatantInfo": {"gear": [{"id": 1, "slot": 0, "name": "Hat", "setID": 12, "setName": "Pillar of Nirn"}]}}`

	var detail esologs.PlayerDetail
	s.Require().NoError(json.Unmarshal([]byte(payload), &detail))
	s.True(detail.CombatantInfo.Present)
	s.Require().Len(detail.CombatantInfo.Gear, 1)
	s.Equal("Pillar of Nirn", detail.CombatantInfo.Gear[0].SetName)
}

func (s *ConvertTestSuite) TestCombatantInfoListShape() {
	// The upstream sends an empty array when per-player info is
	// unavailable. That is a data gap, not a decode error.
	payload := `{"combatantInfo": []}`

	var detail esologs.PlayerDetail
	s.Require().NoError(json.Unmarshal([]byte(payload), &detail))
	s.False(detail.CombatantInfo.Present)
	s.Empty(detail.CombatantInfo.Gear)
}

func (s *ConvertTestSuite) TestCombatantInfoNull() {
	payload := `{"combatantInfo": null}`

	var detail esologs.PlayerDetail
	s.Require().NoError(json.Unmarshal([]byte(payload), &detail))
	s.False(detail.CombatantInfo.Present)
}

func (s *ConvertTestSuite) TestConvertGearSlotsAndPerfected() {
	items := []esologs.GearItem{
		{Slot: 0, Name: "Hat of the Savior", SetID: 1, SetName: "Perfected Ansuul's Torment"},
		{Slot: 10, Name: "Dagger of Flame", SetID: 2, SetName: "Coral Riptide"},
		{Slot: 11, Name: "Tower Shield", SetID: 2, SetName: "Coral Riptide"},
		{Slot: 99, Name: "Oddity", SetID: 3, SetName: "Mystery"},
	}

	converted := esologs.ConvertGear(items, s.tables)
	s.Require().Len(converted, 4)

	s.Equal(eso.SlotHead, converted[0].Slot)
	s.True(converted[0].IsPerfected)

	s.Equal(eso.SlotMainHand, converted[1].Slot)
	s.False(converted[1].IsShield)

	s.Equal(eso.SlotOffHand, converted[2].Slot)
	s.True(converted[2].IsShield)

	s.Equal(eso.SlotUnknown, converted[3].Slot)
}

func (s *ConvertTestSuite) TestConvertGearTwoHandedWeapon() {
	items := []esologs.GearItem{
		{Slot: 10, Name: "Perfected Maelstrom Inferno Staff", SetID: 4, SetName: "Maelstrom Arena"},
	}

	converted := esologs.ConvertGear(items, s.tables)
	s.Require().Len(converted, 1)
	s.Equal(eso.SlotTwoHand, converted[0].Slot)
	// Arena weapons carry the set identity in the item name.
	s.Equal("Perfected Maelstrom Inferno Staff", converted[0].SetName)
	s.True(converted[0].IsPerfected)
}

func (s *ConvertTestSuite) TestConvertGearOrdinarySetStaffKeepsSetName() {
	items := []esologs.GearItem{
		{Slot: 10, Name: "Inferno Staff of the Coral Riptide", SetID: 2, SetName: "Coral Riptide"},
	}

	converted := esologs.ConvertGear(items, s.tables)
	s.Require().Len(converted, 1)
	s.Equal(eso.SlotTwoHand, converted[0].Slot)
	s.Equal("Coral Riptide", converted[0].SetName)
}

func (s *ConvertTestSuite) TestConvertGearBodyPlusStaffResolvesFivePiece() {
	items := []esologs.GearItem{
		{Slot: 1, Name: "Cuirass of the Coral Riptide", SetID: 2, SetName: "Coral Riptide"},
		{Slot: 4, Name: "Gauntlets of the Coral Riptide", SetID: 2, SetName: "Coral Riptide"},
		{Slot: 5, Name: "Greaves of the Coral Riptide", SetID: 2, SetName: "Coral Riptide"},
		{Slot: 6, Name: "Sabatons of the Coral Riptide", SetID: 2, SetName: "Coral Riptide"},
		{Slot: 10, Name: "Inferno Staff of the Coral Riptide", SetID: 2, SetName: "Coral Riptide"},
	}

	classifier, err := gear.NewClassifier(&gear.ClassifierConfig{Tables: s.tables})
	s.Require().NoError(err)
	resolver, err := gear.NewResolver(&gear.ResolverConfig{
		Classifier: classifier,
		Tables:     s.tables,
	})
	s.Require().NoError(err)

	res := resolver.Resolve(esologs.ConvertGear(items, s.tables))
	s.Require().Len(res.Sets, 1)
	s.Equal("Coral Riptide", res.Sets[0].Name)
	s.Equal(5, res.Sets[0].PieceCount)
	s.False(res.Sets[0].IsIncomplete)
}

func (s *ConvertTestSuite) TestConvertDifficulty() {
	s.Equal(eso.DifficultyNormal, esologs.ConvertDifficulty(120))
	s.Equal(eso.DifficultyVeteran, esologs.ConvertDifficulty(121))
	s.Equal(eso.DifficultyVeteranHardMode, esologs.ConvertDifficulty(122))
	s.Equal(eso.DifficultyNormal, esologs.ConvertDifficulty(0))
}

func (s *ConvertTestSuite) TestNormalizeHandle() {
	s.Equal("@Brainsnorkel", esologs.NormalizeHandle("Character", "@Brainsnorkel"))
	s.Equal("@Brainsnorkel", esologs.NormalizeHandle("Character", "Brainsnorkel"))
	s.Equal("@Character", esologs.NormalizeHandle("Character", ""))
	s.Equal("@anonymous", esologs.NormalizeHandle("", ""))
	s.Equal("@anonymous", esologs.NormalizeHandle("nil", ""))
}

func (s *ConvertTestSuite) TestBossFights() {
	vet := 121
	fights := []esologs.Fight{
		{ID: 1, Name: "Hall of Fleshcraft Trash", Difficulty: &vet, StartTime: 0, EndTime: 120_000},
		{ID: 2, Name: "Shade of Xoryn", Difficulty: &vet, StartTime: 0, EndTime: 240_000},
		{ID: 3, Name: "Quick Pull", Difficulty: &vet, StartTime: 0, EndTime: 10_000},
		{ID: 4, Name: "Wandering Minders", StartTime: 0, EndTime: 300_000},
	}

	bosses := esologs.BossFights(fights)
	s.Require().Len(bosses, 1)
	s.Equal(2, bosses[0].ID)
}

func TestConvertTestSuite(t *testing.T) {
	suite.Run(t, new(ConvertTestSuite))
}
