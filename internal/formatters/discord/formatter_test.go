package discord_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/formatters/discord"
)

type FormatterTestSuite struct {
	suite.Suite

	formatter *discord.Formatter
	summary   *eso.ReportSummary
}

func (s *FormatterTestSuite) SetupTest() {
	s.formatter = discord.NewFormatter()
	s.summary = &eso.ReportSummary{
		LogCode:   "a1B2c3D4",
		LogURL:    "https://www.esologs.com/reports/a1B2c3D4",
		Title:     "Sanity's Edge Farm",
		GuildName: "Brainsnorkel",
		StartedAt: time.Date(2026, 8, 14, 19, 30, 0, 0, time.UTC),
		Encounters: []eso.EncounterResult{
			{
				Name:           "Ansuul the Tormentor",
				Difficulty:     eso.DifficultyVeteranHardMode,
				Kill:           false,
				BossPercentage: 12.4,
				Effects: []eso.BuffDebuffUptime{
					{Name: "Major Courage", Category: eso.EffectBuff, UptimePercent: 84.25, Annotated: true},
					{Name: "Crusher", Category: eso.EffectDebuff, UptimePercent: 51.0},
				},
				Players: []eso.PlayerBuild{
					{
						Handle:    "@tanklord",
						ClassName: "DK",
						Role:      eso.RoleTank,
						GearSets: []eso.GearSet{
							{Name: "Pearlescent Ward", Abbreviation: "Pearlescent", PieceCount: 5},
							{Name: "Tremorscale", Abbreviation: "Tremorscale", PieceCount: 2},
						},
					},
					{
						Handle:     "@zap",
						ClassName:  "Sorc",
						Role:       eso.RoleDamage,
						NoGearData: true,
					},
				},
			},
		},
	}
}

func (s *FormatterTestSuite) TestHeaderSuppressesLinkEmbed() {
	doc := s.formatter.Format(s.summary)

	s.Contains(doc, "## **Sanity's Edge Farm**")
	s.Contains(doc, "🔗 Log: <https://www.esologs.com/reports/a1B2c3D4>")
}

func (s *FormatterTestSuite) TestWipeStatus() {
	doc := s.formatter.Format(s.summary)

	s.Contains(doc, "### ⚔️ **Ansuul the Tormentor** (Veteran Hard Mode) - ❌ WIPE (12.4%)")
}

func (s *FormatterTestSuite) TestEffectsRenderAsLists() {
	doc := s.formatter.Format(s.summary)

	s.Contains(doc, "Buffs: Major Courage 84.2%*")
	s.Contains(doc, "Debuffs: Crusher 51.0%")
}

func (s *FormatterTestSuite) TestHandlesAreEscaped() {
	doc := s.formatter.Format(s.summary)

	s.Contains(doc, "`@tanklord`: DK - 5pc Pearlescent, 2pc Tremorscale")
	s.Contains(doc, "`@zap`: Sorc - No gear data")
}

func (s *FormatterTestSuite) TestSplitContentShortPassesThrough() {
	chunks := discord.SplitContent("short message", 1900)

	s.Equal([]string{"short message"}, chunks)
}

func (s *FormatterTestSuite) TestSplitContentBreaksOnLines() {
	content := strings.Repeat("aaaa\n", 10)

	chunks := discord.SplitContent(content, 12)

	s.Len(chunks, 5)
	for _, chunk := range chunks {
		s.LessOrEqual(len(chunk), 12)
		s.Equal("aaaa\naaaa", chunk)
	}
}

func (s *FormatterTestSuite) TestSplitContentHardSplitsLongLine() {
	chunks := discord.SplitContent(strings.Repeat("x", 25), 10)

	s.Equal([]string{"xxxxxxxxxx", "xxxxxxxxxx", "xxxxx"}, chunks)
}

func TestFormatterTestSuite(t *testing.T) {
	suite.Run(t, new(FormatterTestSuite))
}
