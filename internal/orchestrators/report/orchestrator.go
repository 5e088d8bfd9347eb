// Package report implements the report orchestrator: it fetches an
// uploaded combat log, runs every boss pull through the gear, role,
// and effect engines, and assembles the per-encounter build summary.
package report

//go:generate mockgen -destination=mock/mock_service.go -package=reportmock github.com/brainsnorkel/eso-builds/internal/orchestrators/report Service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/brainsnorkel/eso-builds/internal/abbrev"
	"github.com/brainsnorkel/eso-builds/internal/clients/esologs"
	"github.com/brainsnorkel/eso-builds/internal/engine/effects"
	"github.com/brainsnorkel/eso-builds/internal/engine/gear"
	"github.com/brainsnorkel/eso-builds/internal/engine/roles"
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/pkg/clock"
	"github.com/brainsnorkel/eso-builds/internal/pkg/idgen"
	"github.com/brainsnorkel/eso-builds/internal/repositories/reports"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

const (
	defaultTopAbilities = 5
	maxTopAbilities     = 10

	reportURLFormat = "https://www.esologs.com/reports/%s"
)

// Service defines the interface for report analysis
type Service interface {
	// AnalyzeReport fetches and analyzes one uploaded log
	AnalyzeReport(ctx context.Context, input *AnalyzeReportInput) (*AnalyzeReportOutput, error)

	// UnknownSets returns the set names seen without an abbreviation,
	// for operator review
	UnknownSets() []abbrev.UnknownSet
}

// Config holds the dependencies for the report orchestrator
type Config struct {
	Client      esologs.Client
	Cache       reports.Repository
	Resolver    *gear.Resolver
	RoleEngine  *roles.Classifier
	Effects     *effects.Selector
	Registry    *abbrev.Registry
	Tables      *rules.Tables
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Cache == nil {
		vb.RequiredField("Cache")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.RoleEngine == nil {
		vb.RequiredField("RoleEngine")
	}
	if c.Effects == nil {
		vb.RequiredField("Effects")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Tables == nil {
		vb.RequiredField("Tables")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	client     esologs.Client
	cache      reports.Repository
	resolver   *gear.Resolver
	roleEngine *roles.Classifier
	effects    *effects.Selector
	registry   *abbrev.Registry
	tables     *rules.Tables
	clock      clock.Clock
	idGen      idgen.Generator
}

// New creates a report orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &orchestrator{
		client:     cfg.Client,
		cache:      cfg.Cache,
		resolver:   cfg.Resolver,
		roleEngine: cfg.RoleEngine,
		effects:    cfg.Effects,
		registry:   cfg.Registry,
		tables:     cfg.Tables,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) UnknownSets() []abbrev.UnknownSet {
	return o.registry.Report()
}

func (o *orchestrator) AnalyzeReport(ctx context.Context, input *AnalyzeReportInput) (*AnalyzeReportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LogCode == "" {
		return nil, errors.InvalidArgument("log code is required")
	}
	depth := input.TopAbilities
	if depth == 0 {
		depth = defaultTopAbilities
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("TopAbilities", depth, 1, maxTopAbilities, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	analysisID := o.idGen.Generate()
	log := slog.With("analysis_id", analysisID, "log_code", input.LogCode)

	if !input.SkipCache {
		cached, err := o.cache.Get(ctx, reports.GetInput{LogCode: input.LogCode})
		if err == nil {
			log.Info("serving analyzed report from cache")
			return &AnalyzeReportOutput{Summary: cached.Summary, FromCache: true}, nil
		}
		if !errors.IsNotFound(err) {
			log.Warn("report cache lookup failed", "error", err)
		}
	}

	upstream, err := o.client.GetReport(ctx, input.LogCode)
	if err != nil {
		return nil, errors.Wrapf(err, "analyzing report %s", input.LogCode)
	}

	bosses := esologs.BossFights(upstream.Fights)
	log.Info("analyzing report",
		"title", upstream.Title,
		"fights", len(upstream.Fights),
		"boss_fights", len(bosses))

	summary := &eso.ReportSummary{
		LogCode:     upstream.Code,
		LogURL:      fmt.Sprintf(reportURLFormat, upstream.Code),
		Title:       upstream.Title,
		GuildName:   upstream.Guild.Name,
		StartedAt:   time.UnixMilli(upstream.StartTime).UTC(),
		GeneratedAt: o.clock.Now(),
	}

	for _, fight := range bosses {
		encounter, err := o.analyzeFight(ctx, log, upstream.Code, fight, depth)
		if err != nil {
			// One broken pull never sinks the rest of the report.
			log.Error("skipping fight", "fight", fight.Name, "error", err)
			continue
		}
		summary.Encounters = append(summary.Encounters, *encounter)
	}

	if _, err := o.cache.Set(ctx, reports.SetInput{Summary: summary}); err != nil {
		log.Warn("failed to cache analyzed report", "error", err)
	}

	return &AnalyzeReportOutput{Summary: summary}, nil
}

func (o *orchestrator) analyzeFight(ctx context.Context, log *slog.Logger, code string, fight esologs.Fight, depth int) (*eso.EncounterResult, error) {
	table, err := o.client.GetSummaryTable(ctx, code, fight.StartTime, fight.EndTime)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching roster for fight %d", fight.ID)
	}

	encounter := &eso.EncounterResult{
		Name:           fight.Name,
		Difficulty:     esologs.ConvertDifficulty(derefInt(fight.Difficulty)),
		Kill:           fight.Kill,
		BossPercentage: fight.BossPercentage,
	}

	var rosterGear [][]eso.GearSet
	for _, section := range []struct {
		players []esologs.PlayerDetail
		kind    eso.MetricKind
	}{
		{players: table.Tanks, kind: eso.MetricCastCount},
		{players: table.Healers, kind: eso.MetricHealingPercent},
		{players: table.DPS, kind: eso.MetricDamagePercent},
	} {
		for _, detail := range section.players {
			build := o.buildPlayer(ctx, log, code, fight, detail, section.kind, depth)
			rosterGear = append(rosterGear, build.GearSets)
			encounter.Players = append(encounter.Players, build)
		}
	}

	samples, err := o.client.GetEffectUptimes(ctx, code, fight.StartTime, fight.EndTime)
	if err != nil {
		// Builds are still worth reporting without uptime numbers.
		log.Warn("fetching effect uptimes failed", "fight", fight.Name, "error", err)
		samples = nil
	}
	encounter.Effects = o.effects.Select(rosterGear, samples)

	return encounter, nil
}

func (o *orchestrator) buildPlayer(ctx context.Context, log *slog.Logger, code string, fight esologs.Fight, detail esologs.PlayerDetail, kind eso.MetricKind, depth int) eso.PlayerBuild {
	build := eso.PlayerBuild{
		Handle:    esologs.NormalizeHandle(detail.Name, detail.DisplayName),
		ClassName: o.tables.AbbreviateClass(detail.Type),
	}

	var resolution gear.Resolution
	if detail.CombatantInfo.Present {
		resolution = o.resolver.Resolve(esologs.ConvertGear(detail.CombatantInfo.Gear, o.tables))
	} else {
		// The upstream sends an empty list instead of an object when
		// per-player info is missing. Treat it as absent data.
		log.Debug("combatant info unavailable", "player", build.Handle, "fight", fight.Name)
		resolution = gear.Resolution{NoGearData: true}
	}
	for i := range resolution.Sets {
		resolution.Sets[i].Abbreviation = o.registry.Abbreviate(resolution.Sets[i].Name)
	}
	build.GearSets = resolution.Sets
	build.NoGearData = resolution.NoGearData

	build.AbilityHighlights = o.fetchHighlights(ctx, log, code, fight, detail.ID, kind, depth)
	build.NoCastData = len(build.AbilityHighlights) == 0

	build.Role = o.roleEngine.Classify(resolution, build.AbilityHighlights)
	return build
}

// fetchHighlights pulls one player's ability table and keeps the top
// entries. Percent metrics are each ability's share of the player's
// own total; cast counts pass through as-is.
func (o *orchestrator) fetchHighlights(ctx context.Context, log *slog.Logger, code string, fight esologs.Fight, playerID int, kind eso.MetricKind, depth int) []eso.AbilityHighlight {
	totals, err := o.client.GetAbilityTotals(ctx, code, playerID, fight.StartTime, fight.EndTime, kind)
	if err != nil {
		log.Debug("fetching ability totals failed",
			"player_id", playerID,
			"fight", fight.Name,
			"error", err)
		return nil
	}
	if len(totals) == 0 {
		return nil
	}

	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Total > totals[j].Total })

	var overall float64
	for _, t := range totals {
		overall += t.Total
	}

	if len(totals) > depth {
		totals = totals[:depth]
	}

	highlights := make([]eso.AbilityHighlight, 0, len(totals))
	for _, t := range totals {
		metric := t.Total
		if kind != eso.MetricCastCount && overall > 0 {
			metric = t.Total / overall * 100
		}
		highlights = append(highlights, eso.AbilityHighlight{
			Name:   t.Name,
			Metric: metric,
			Kind:   kind,
		})
	}
	return highlights
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
