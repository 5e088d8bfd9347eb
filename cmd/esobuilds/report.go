package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brainsnorkel/eso-builds/internal/abbrev"
	"github.com/brainsnorkel/eso-builds/internal/clients/esologs"
	"github.com/brainsnorkel/eso-builds/internal/engine/effects"
	"github.com/brainsnorkel/eso-builds/internal/engine/gear"
	"github.com/brainsnorkel/eso-builds/internal/engine/roles"
	discordfmt "github.com/brainsnorkel/eso-builds/internal/formatters/discord"
	"github.com/brainsnorkel/eso-builds/internal/formatters/markdown"
	"github.com/brainsnorkel/eso-builds/internal/orchestrators/report"
	"github.com/brainsnorkel/eso-builds/internal/pkg/clock"
	"github.com/brainsnorkel/eso-builds/internal/pkg/idgen"
	redisclient "github.com/brainsnorkel/eso-builds/internal/redis"
	"github.com/brainsnorkel/eso-builds/internal/repositories/reports"
	"github.com/brainsnorkel/eso-builds/internal/rules"
)

var (
	reportFormat       string
	reportOutputDir    string
	reportWebhookURL   string
	reportTopAbilities int
	reportRedisAddr    string
	reportTablesPath   string
	reportSkipCache    bool
	reportShowUnknown  bool
)

var reportCmd = &cobra.Command{
	Use:   "report <log-code>",
	Short: "Analyze one uploaded log",
	Long:  `Fetch an uploaded log by its report code, classify every player's build, and render the summary as markdown, Discord markup, or console output.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	reportCmd.Flags().StringVar(&reportFormat, "format", "console", "output format: markdown, discord, or console")
	reportCmd.Flags().StringVar(&reportOutputDir, "output", "", "directory for the rendered markdown file (default stdout)")
	reportCmd.Flags().StringVar(&reportWebhookURL, "webhook-url", os.Getenv("DISCORD_WEBHOOK_URL"), "Discord webhook URL for posting the summary")
	reportCmd.Flags().IntVar(&reportTopAbilities, "top-abilities", 0, "per-player ability highlight depth (default 5, max 10)")
	reportCmd.Flags().StringVar(&reportRedisAddr, "redis-addr", "", "Redis endpoint for the report cache (default in-process cache)")
	reportCmd.Flags().StringVar(&reportTablesPath, "tables", "", "path to a rules table override file")
	reportCmd.Flags().BoolVar(&reportSkipCache, "skip-cache", false, "bypass the report cache and refetch")
	reportCmd.Flags().BoolVar(&reportShowUnknown, "show-unknown-sets", false, "print set names seen without an abbreviation")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logCode := args[0]

	clientID := os.Getenv("ESOLOGS_ID")
	clientSecret := os.Getenv("ESOLOGS_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("ESOLOGS_ID and ESOLOGS_SECRET must be set")
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}

	svc, err := buildService(tables, clientID, clientSecret)
	if err != nil {
		return err
	}

	output, err := svc.AnalyzeReport(ctx, &report.AnalyzeReportInput{
		LogCode:      logCode,
		TopAbilities: reportTopAbilities,
		SkipCache:    reportSkipCache,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze report %s: %w", logCode, err)
	}

	if err := render(ctx, output); err != nil {
		return err
	}

	if reportShowUnknown {
		printUnknownSets(svc.UnknownSets())
	}

	return nil
}

func loadTables() (*rules.Tables, error) {
	if reportTablesPath != "" {
		return rules.LoadFile(reportTablesPath)
	}
	return rules.Load()
}

func buildService(tables *rules.Tables, clientID, clientSecret string) (report.Service, error) {
	classifier, err := gear.NewClassifier(&gear.ClassifierConfig{Tables: tables})
	if err != nil {
		return nil, err
	}
	resolver, err := gear.NewResolver(&gear.ResolverConfig{Classifier: classifier, Tables: tables})
	if err != nil {
		return nil, err
	}
	roleEngine, err := roles.New(&roles.Config{Tables: tables})
	if err != nil {
		return nil, err
	}
	selector, err := effects.New(&effects.Config{Tables: tables})
	if err != nil {
		return nil, err
	}
	registry, err := abbrev.New(&abbrev.Config{Known: tables.SetAbbrev})
	if err != nil {
		return nil, err
	}

	client, err := esologs.New(&esologs.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
	if err != nil {
		return nil, err
	}

	cache, err := buildCache()
	if err != nil {
		return nil, err
	}

	return report.New(&report.Config{
		Client:      client,
		Cache:       cache,
		Resolver:    resolver,
		RoleEngine:  roleEngine,
		Effects:     selector,
		Registry:    registry,
		Tables:      tables,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("analysis"),
	})
}

func buildCache() (reports.Repository, error) {
	if reportRedisAddr == "" {
		return reports.NewMemoryRepository(&reports.MemoryConfig{Clock: clock.New()})
	}

	rc, err := redisclient.NewClient(reportRedisAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", reportRedisAddr, err)
	}

	return reports.NewRedisRepository(&reports.RedisConfig{
		Client: rc,
		Clock:  clock.New(),
	})
}

func render(ctx context.Context, output *report.AnalyzeReportOutput) error {
	summary := output.Summary

	switch reportFormat {
	case "markdown":
		formatter := markdown.New()
		doc := formatter.Format(summary)
		if reportOutputDir == "" {
			fmt.Print(doc)
			return nil
		}
		path := filepath.Join(reportOutputDir, formatter.Filename(summary))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil

	case "discord":
		doc := discordfmt.NewFormatter().Format(summary)
		if reportWebhookURL == "" {
			fmt.Print(doc)
			return nil
		}
		webhook, err := discordfmt.NewWebhook(&discordfmt.WebhookConfig{URL: reportWebhookURL})
		if err != nil {
			return err
		}
		if err := webhook.PostReport(ctx, summary.Title, doc); err != nil {
			return fmt.Errorf("failed to post to Discord: %w", err)
		}
		fmt.Println("Posted summary to Discord")
		return nil

	case "console":
		printConsole(summary, output.FromCache)
		return nil

	default:
		return fmt.Errorf("unknown format %q (want markdown, discord, or console)", reportFormat)
	}
}

func printUnknownSets(unknowns []abbrev.UnknownSet) {
	if len(unknowns) == 0 {
		fmt.Println("\nNo unknown sets seen.")
		return
	}

	fmt.Println("\nUnknown sets (count, suggested abbreviation):")
	for _, u := range unknowns {
		fmt.Printf("  %dx %s -> %s\n", u.Count, u.Name, u.Suggested)
	}
}
