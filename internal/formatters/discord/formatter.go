// Package discord renders analyzed report summaries as Discord chat
// markup and posts them through an incoming webhook.
package discord

import (
	"fmt"
	"strings"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/formatters/markdown"
)

// MessageLimit is the largest chunk the webhook will post per message.
// Discord caps messages at 2000 characters; the margin leaves room for
// embed framing.
const MessageLimit = 1900

// Formatter renders eso.ReportSummary values as Discord markup.
// Discord tables are unreadable on mobile, so gear and effects render
// as compact one-line lists instead of markdown tables.
type Formatter struct{}

// NewFormatter creates a Discord formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders the complete chat-markup document for one report.
func (f *Formatter) Format(summary *eso.ReportSummary) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("## **%s**", summary.Title), "")
	// Angle brackets suppress Discord's automatic link embed.
	lines = append(lines, fmt.Sprintf("🔗 Log: <%s>", summary.LogURL))
	if summary.GuildName != "" {
		lines = append(lines, fmt.Sprintf("🏰 Guild: %s", summary.GuildName))
	}
	if !summary.StartedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("📅 Date: %s", summary.StartedAt.UTC().Format("2006-01-02 15:04 UTC")))
	}
	lines = append(lines, "")

	for i := range summary.Encounters {
		lines = append(lines, f.encounter(&summary.Encounters[i])...)
		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

func (f *Formatter) encounter(enc *eso.EncounterResult) []string {
	status := "✅ KILL"
	if !enc.Killed() {
		status = fmt.Sprintf("❌ WIPE (%.1f%%)", enc.BossPercentage)
	}

	lines := []string{
		fmt.Sprintf("### ⚔️ **%s** (%s) - %s", enc.Name, enc.Difficulty, status),
		"",
	}

	if len(enc.Effects) > 0 {
		lines = append(lines, f.effectLines(enc.Effects)...)
		lines = append(lines, "")
	}

	if tanks := enc.PlayersByRole(eso.RoleTank); len(tanks) > 0 {
		lines = append(lines, f.roleLines("**Tanks**", tanks)...)
		lines = append(lines, "")
	}
	if healers := enc.PlayersByRole(eso.RoleHealer); len(healers) > 0 {
		lines = append(lines, f.roleLines("**Healers**", healers)...)
		lines = append(lines, "")
	}
	if dps := enc.PlayersByRole(eso.RoleDamage); len(dps) > 0 {
		lines = append(lines, f.roleLines("**DPS**", dps)...)
		lines = append(lines, "")
	}

	return lines
}

func (f *Formatter) effectLines(effects []eso.BuffDebuffUptime) []string {
	var buffs, debuffs []string
	for _, e := range effects {
		item := fmt.Sprintf("%s %.1f%%", e.Name, e.UptimePercent)
		if e.Annotated {
			item += "*"
		}
		if e.Category == eso.EffectBuff {
			buffs = append(buffs, item)
		} else {
			debuffs = append(debuffs, item)
		}
	}

	var lines []string
	if len(buffs) > 0 {
		lines = append(lines, "Buffs: "+strings.Join(buffs, ", "))
	}
	if len(debuffs) > 0 {
		lines = append(lines, "Debuffs: "+strings.Join(debuffs, ", "))
	}
	return lines
}

func (f *Formatter) roleLines(header string, players []eso.PlayerBuild) []string {
	lines := []string{header}
	for i := range players {
		p := &players[i]
		class := p.ClassName
		if markdown.WearsOakensoul(p) {
			class = "Oaken" + class
		}
		lines = append(lines, fmt.Sprintf("%s: %s - %s", escapeHandle(p.Handle), class, gearLine(p)))
	}
	return lines
}

func gearLine(p *eso.PlayerBuild) string {
	if p.NoGearData || len(p.GearSets) == 0 {
		return "No gear data"
	}
	parts := make([]string, 0, len(p.GearSets))
	for _, gs := range p.GearSets {
		name := gs.Abbreviation
		if name == "" {
			name = gs.Name
		}
		parts = append(parts, fmt.Sprintf("%dpc %s", gs.PieceCount, name))
	}
	return strings.Join(parts, ", ")
}

// escapeHandle wraps account handles in backticks so Discord does not
// treat the leading @ as a mention.
func escapeHandle(handle string) string {
	if strings.Contains(handle, "@") {
		return "`" + handle + "`"
	}
	return handle
}

// SplitContent splits rendered markup into chunks no longer than max,
// breaking on line boundaries where possible.
func SplitContent(content string, max int) []string {
	if len(content) <= max {
		return []string{content}
	}

	var chunks []string
	var current string
	for _, line := range strings.Split(content, "\n") {
		if len(current)+len(line)+1 > max {
			if current != "" {
				chunks = append(chunks, strings.TrimRight(current, "\n"))
				current = ""
			}
			for len(line) > max {
				chunks = append(chunks, line[:max])
				line = line[max:]
			}
		}
		current += line + "\n"
	}
	if strings.TrimRight(current, "\n") != "" {
		chunks = append(chunks, strings.TrimRight(current, "\n"))
	}
	return chunks
}
