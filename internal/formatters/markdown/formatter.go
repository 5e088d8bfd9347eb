// Package markdown renders analyzed report summaries as a standalone
// markdown document with a table of contents, per-encounter effect
// uptime tables, and per-role build tables.
package markdown

import (
	"fmt"
	"strings"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
)

// dpsTableRows pads the damage table so twelve-player rosters render a
// consistent number of rows even when some players are missing.
const dpsTableRows = 8

// Formatter renders eso.ReportSummary values as markdown.
type Formatter struct{}

// New creates a markdown formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format renders the complete document for one report.
func (f *Formatter) Format(summary *eso.ReportSummary) string {
	var lines []string

	lines = append(lines, f.header(summary)...)
	lines = append(lines, "")
	lines = append(lines, f.tableOfContents(summary)...)
	lines = append(lines, "")

	for i := range summary.Encounters {
		lines = append(lines, f.encounter(&summary.Encounters[i])...)
		lines = append(lines, "")
	}

	lines = append(lines, f.footer(summary)...)

	return strings.Join(lines, "\n") + "\n"
}

// Filename returns a filesystem-safe name for the rendered document.
func (f *Formatter) Filename(summary *eso.ReportSummary) string {
	title := summary.Title
	if title == "" {
		title = "report"
	}
	stamp := summary.GeneratedAt.UTC().Format("20060102-150405")
	return fmt.Sprintf("%s-%s-%s.md", slugify(title), summary.LogCode, stamp)
}

func (f *Formatter) header(summary *eso.ReportSummary) []string {
	lines := []string{
		fmt.Sprintf("# %s - Build & Buff Summary", summary.Title),
		"",
		fmt.Sprintf("**🔗 Log URL:** [%s](%s)  ", summary.LogCode, summary.LogURL),
	}
	if summary.GuildName != "" {
		lines = append(lines, fmt.Sprintf("**🏰 Guild:** %s  ", summary.GuildName))
	}
	if !summary.StartedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("**📅 Date:** %s  ", summary.StartedAt.UTC().Format("2006-01-02 15:04 UTC")))
	}
	lines = append(lines, "", "---")
	return lines
}

func (f *Formatter) tableOfContents(summary *eso.ReportSummary) []string {
	lines := []string{"## 📋 Table of Contents", ""}
	for i := range summary.Encounters {
		enc := &summary.Encounters[i]
		lines = append(lines, fmt.Sprintf("- [%s (%s) - %s](#%s)",
			enc.Name, enc.Difficulty, statusText(enc), anchor(enc.Name)))
	}
	return lines
}

func (f *Formatter) encounter(enc *eso.EncounterResult) []string {
	lines := []string{
		fmt.Sprintf("### ⚔️ %s (%s) - %s {#%s}", enc.Name, enc.Difficulty, statusText(enc), anchor(enc.Name)),
		"",
	}

	if len(enc.Effects) > 0 {
		lines = append(lines, f.effectsTable(enc)...)
		lines = append(lines, "")
	}

	if tanks := enc.PlayersByRole(eso.RoleTank); len(tanks) > 0 {
		lines = append(lines, f.roleTable("Tanks", tanks, false)...)
		lines = append(lines, "")
	}
	if healers := enc.PlayersByRole(eso.RoleHealer); len(healers) > 0 {
		lines = append(lines, f.roleTable("Healers", healers, false)...)
		lines = append(lines, "")
	}
	if dps := enc.PlayersByRole(eso.RoleDamage); len(dps) > 0 {
		lines = append(lines, f.roleTable("DPS", dps, true)...)
		lines = append(lines, "")
	}

	return lines
}

// effectsTable renders buffs and debuffs side by side, padding the
// shorter column with empty cells. Annotated uptimes carry a trailing
// asterisk to flag possible single-target inflation.
func (f *Formatter) effectsTable(enc *eso.EncounterResult) []string {
	var buffs, debuffs []eso.BuffDebuffUptime
	for _, e := range enc.Effects {
		if e.Category == eso.EffectBuff {
			buffs = append(buffs, e)
		} else {
			debuffs = append(debuffs, e)
		}
	}

	lines := []string{
		"| 🔺 **Buffs** | **Uptime** | 🔻 **Debuffs** | **Uptime** |",
		"|--------------|------------|-----------------|------------|",
	}

	rows := len(buffs)
	if len(debuffs) > rows {
		rows = len(debuffs)
	}
	for i := 0; i < rows; i++ {
		buffName, buffCell := "", ""
		if i < len(buffs) {
			buffName, buffCell = buffs[i].Name, uptimeCell(buffs[i])
		}
		debuffName, debuffCell := "", ""
		if i < len(debuffs) {
			debuffName, debuffCell = debuffs[i].Name, uptimeCell(debuffs[i])
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s |", buffName, buffCell, debuffName, debuffCell))
	}

	return lines
}

func (f *Formatter) roleTable(title string, players []eso.PlayerBuild, pad bool) []string {
	lines := []string{
		fmt.Sprintf("#### %s", title),
		"",
		"| Player | Class | Gear Sets |",
		"|--------|-------|-----------|",
	}

	for i := range players {
		p := &players[i]
		lines = append(lines, fmt.Sprintf("| %s | %s | %s |", p.Handle, classDisplay(p), gearCell(p)))
	}

	if pad {
		for i := len(players) + 1; i <= dpsTableRows; i++ {
			lines = append(lines, fmt.Sprintf("| @anonymous%d | - | - |", i))
		}
	}

	return lines
}

func (f *Formatter) footer(summary *eso.ReportSummary) []string {
	return []string{
		"---",
		"",
		"## 📊 Report Information",
		"",
		fmt.Sprintf("- **Title:** %s", summary.Title),
		fmt.Sprintf("- **Log Code:** %s", summary.LogCode),
		fmt.Sprintf("- **Encounters Analyzed:** %d", len(summary.Encounters)),
		fmt.Sprintf("- **Generated:** %s", summary.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")),
		"",
		"### 🔗 Useful Links",
		"",
		"- [ESO Logs](https://www.esologs.com/)",
		fmt.Sprintf("- [This Log](%s)", summary.LogURL),
		"",
		"---",
		"",
		"*Analyzed Elder Scrolls Online trial builds and raid effect uptimes from uploaded combat logs.*",
	}
}

// WearsOakensoul reports whether any resolved set on the build looks
// like the Oakensoul Ring mythic.
func WearsOakensoul(p *eso.PlayerBuild) bool {
	for _, gs := range p.GearSets {
		if strings.Contains(strings.ToLower(gs.Name), "oakensoul") {
			return true
		}
	}
	return false
}

func classDisplay(p *eso.PlayerBuild) string {
	if WearsOakensoul(p) {
		return "Oaken" + p.ClassName
	}
	return p.ClassName
}

func gearCell(p *eso.PlayerBuild) string {
	if p.NoGearData || len(p.GearSets) == 0 {
		return "*No gear data*"
	}
	parts := make([]string, 0, len(p.GearSets))
	for _, gs := range p.GearSets {
		name := gs.Abbreviation
		if name == "" {
			name = gs.Name
		}
		cell := fmt.Sprintf("%dpc %s", gs.PieceCount, name)
		if gs.IsIncomplete {
			cell += " (incomplete)"
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, ", ")
}

func uptimeCell(e eso.BuffDebuffUptime) string {
	cell := fmt.Sprintf("%.1f%%", e.UptimePercent)
	if e.Annotated {
		cell += "*"
	}
	return cell
}

func statusText(enc *eso.EncounterResult) string {
	if enc.Killed() {
		return "✅ KILL"
	}
	return fmt.Sprintf("❌ WIPE (%.1f%%)", enc.BossPercentage)
}

func anchor(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "'", "")
	return "encounter-" + s
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
