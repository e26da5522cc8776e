package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/boxdtools/boxdexport/internal/config"
	"github.com/boxdtools/boxdexport/internal/fetcher"
	"github.com/boxdtools/boxdexport/internal/scraper"
	"github.com/boxdtools/boxdexport/internal/storage"
	"github.com/boxdtools/boxdexport/internal/types"
)

var (
	cfgFile    string
	verbose    bool
	sections   string
	maxPages   int
	outputPath string
	outputType string
	filmDelay  string
	userAgent  string
	mongoURI   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boxdexport",
		Short: "boxdexport — Letterboxd activity exporter",
		Long: `boxdexport collects a Letterboxd user's film activity (rated films,
diary, reviews, watchlist, likes) and exports one flat table of
per-film attributes joined with the user's rating.

Features:
  • Scrapes any subset of profile sections with per-section page caps
  • Run-wide deduplication: a film appearing in several sections is recorded once
  • CSV, JSON, JSONL export, plus an optional MongoDB sink
  • Fixed courtesy delays between requests; graceful Ctrl-C with partial results`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [username]",
		Short: "Scrape a user's film activity and export it",
		Long: `Scrape the given user's profile sections and export the accumulated
records. Sections: films, reviews, diary, watchlist, likes/films.`,
		Args: cobra.ExactArgs(1),
		RunE: runScrape,
	}

	cmd.Flags().StringVarP(&sections, "sections", "s", "", "comma-separated sections to scrape (default: all)")
	cmd.Flags().IntVarP(&maxPages, "max-pages", "m", 0, "maximum listing pages per section (0 = unlimited)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: <username>_letterboxd_<timestamp>.<ext>)")
	cmd.Flags().StringVarP(&outputType, "format", "f", "", "output format: csv, json, jsonl")
	cmd.Flags().StringVar(&filmDelay, "delay", "", "delay after each film detail fetch (e.g. 1.5s)")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "custom User-Agent string")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI to additionally store records in")

	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	username := args[0]
	if err := config.ValidateUsername(username); err != nil {
		return err
	}

	scrapeSections := cfg.Scraper.Sections
	if sections != "" {
		scrapeSections = splitSections(sections)
	}
	for _, sec := range scrapeSections {
		if !scraper.IsSection(sec) {
			return fmt.Errorf("unknown section %q (valid: %s)", sec, strings.Join(scraper.DefaultSections(), ", "))
		}
	}

	logger := setupLogger(cfg)

	logger.Info("starting scrape",
		"username", username,
		"sections", strings.Join(scrapeSections, ", "),
		"max_pages", maxPages,
		"format", cfg.Export.Format,
	)

	httpFetcher := fetcher.NewHTTPFetcher(cfg, logger)
	defer httpFetcher.Close()

	s, err := scraper.New(username, httpFetcher, cfg, logger)
	if err != nil {
		return err
	}

	// Ctrl-C stops issuing requests; whatever has been accumulated is
	// still exported below.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := types.NewResultSet()
	start := time.Now()

	if err := s.ScrapeSections(ctx, results, scrapeSections, maxPages); err != nil {
		if !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scrape: %w", err)
		}
		fmt.Println("\n⚠ Scrape interrupted, exporting partial results")
	}

	path, err := storage.Export(results, &cfg.Export, username, logger)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("\n✅ Scrape complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Records:  %d unique films\n", results.Len())
	if path != "" {
		fmt.Printf("   Output:   %s\n", path)
	} else {
		fmt.Println("   Output:   nothing to export")
	}

	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("boxdexport %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scraper:\n")
			fmt.Printf("  Base URL:          %s\n", cfg.Scraper.BaseURL)
			fmt.Printf("  Sections:          %s\n", strings.Join(cfg.Scraper.Sections, ", "))
			fmt.Printf("  Film Delay:        %s\n", cfg.Scraper.FilmDelay)
			fmt.Printf("  Page Delay:        %s\n", cfg.Scraper.PageDelay)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Request Timeout:   %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Max Body Size:     %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("  Follow Redirects:  %v\n", cfg.Fetcher.FollowRedirects)
			fmt.Printf("\nExport:\n")
			fmt.Printf("  Format:            %s\n", cfg.Export.Format)
			fmt.Printf("  Output Path:       %s\n", orDefault(cfg.Export.OutputPath, "<derived from username>"))
			fmt.Printf("  MongoDB:           %v\n", cfg.Export.MongoURI != "")
			fmt.Printf("\nLogging:\n")
			fmt.Printf("  Level:             %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:            %s\n", cfg.Logging.Format)
			return nil
		},
	}
}

// setupLogger creates a structured logger per the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if outputPath != "" {
		cfg.Export.OutputPath = outputPath
	}
	if outputType != "" {
		cfg.Export.Format = strings.ToLower(outputType)
	}
	if mongoURI != "" {
		cfg.Export.MongoURI = mongoURI
	}
	if filmDelay != "" {
		if d, err := time.ParseDuration(filmDelay); err == nil {
			cfg.Scraper.FilmDelay = d
		}
	}
	if userAgent != "" {
		cfg.Fetcher.UserAgent = userAgent
	}
}

func splitSections(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
