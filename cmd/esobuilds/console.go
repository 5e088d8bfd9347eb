package main

import (
	"fmt"
	"strings"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
)

// printConsole writes a compact plain-text summary to stdout.
func printConsole(summary *eso.ReportSummary, fromCache bool) {
	fmt.Printf("%s (%s)\n", summary.Title, summary.LogCode)
	if summary.GuildName != "" {
		fmt.Printf("Guild: %s\n", summary.GuildName)
	}
	fmt.Printf("Log: %s\n", summary.LogURL)
	if fromCache {
		fmt.Println("(served from cache)")
	}

	for i := range summary.Encounters {
		enc := &summary.Encounters[i]

		status := "KILL"
		if !enc.Killed() {
			status = fmt.Sprintf("WIPE (%.1f%%)", enc.BossPercentage)
		}
		fmt.Printf("\n=== %s (%s) - %s ===\n", enc.Name, enc.Difficulty, status)

		printConsoleEffects(enc.Effects)

		sections := []struct {
			label string
			role  eso.Role
		}{
			{"Tanks", eso.RoleTank},
			{"Healers", eso.RoleHealer},
			{"DPS", eso.RoleDamage},
		}
		for _, section := range sections {
			players := enc.PlayersByRole(section.role)
			if len(players) == 0 {
				continue
			}
			fmt.Printf("\n%s:\n", section.label)
			for j := range players {
				printConsolePlayer(&players[j])
			}
		}
	}
}

func printConsoleEffects(effects []eso.BuffDebuffUptime) {
	if len(effects) == 0 {
		return
	}
	for _, e := range effects {
		marker := ""
		if e.Annotated {
			marker = "*"
		}
		fmt.Printf("  [%s] %s: %.1f%%%s\n", e.Category, e.Name, e.UptimePercent, marker)
	}
}

func printConsolePlayer(p *eso.PlayerBuild) {
	gearText := "no gear data"
	if !p.NoGearData && len(p.GearSets) > 0 {
		parts := make([]string, 0, len(p.GearSets))
		for _, gs := range p.GearSets {
			name := gs.Abbreviation
			if name == "" {
				name = gs.Name
			}
			parts = append(parts, fmt.Sprintf("%dpc %s", gs.PieceCount, name))
		}
		gearText = strings.Join(parts, ", ")
	}
	fmt.Printf("  %s (%s): %s\n", p.Handle, p.ClassName, gearText)

	if p.NoCastData {
		fmt.Println("    no cast data")
		return
	}
	for _, h := range p.AbilityHighlights {
		switch h.Kind {
		case eso.MetricCastCount:
			fmt.Printf("    %s: %.0f casts\n", h.Name, h.Metric)
		default:
			fmt.Printf("    %s: %.1f%%\n", h.Name, h.Metric)
		}
	}
}
