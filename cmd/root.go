// Package cmd implements the julmat CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/config"
	"github.com/theirongolddev/julmat/internal/logging"
	"github.com/theirongolddev/julmat/internal/store"
)

var (
	flagData     string
	flagBackend  string
	flagDB       string
	flagQuiet    bool
	flagVerbose  bool
	flagSearch   string
	flagFamily   string
	flagCategory string
	flagStatus   string
)

// Resolved once per invocation by PersistentPreRunE.
var (
	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "julmat",
	Short:             "Holiday food checklist",
	Long:              "Keep track of what has been bought and cooked for the holiday table.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	RunE:              runStats,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "List data file or http(s) URL (default from config, data.json)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Status backend: sqlite, redis or memory")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite status database path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagSearch, "search", "s", "", "Free-text filter over name, category, family and notes")
	rootCmd.PersistentFlags().StringVarP(&flagFamily, "family", "f", "", "Show only this family")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", "", "Show only this category")
	rootCmd.PersistentFlags().StringVar(&flagStatus, "status", "all", "Status filter: all, missing, bought, cooked, done")
}

// initRuntime loads the config, applies flag overrides and builds the logger.
func initRuntime(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if flagData != "" {
		cfg.General.DataSource = flagData
	}
	if flagBackend != "" {
		cfg.Store.Backend = flagBackend
	}
	if flagDB != "" {
		cfg.Store.SQLitePath = flagDB
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
	}

	logger = logging.New(cfg.Logging, os.Stderr)
	return nil
}

// loadCatalog is the shared list loading path used by all commands.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Laddar %s...\n", cfg.General.DataSource)
	}

	cat, err := catalog.Load(ctx, cfg.General.DataSource, catalog.Options{
		DefaultCategory: cfg.General.DefaultCategory,
	})
	if err != nil {
		return nil, fmt.Errorf("loading list: %w", err)
	}
	logger.Debug().Int("items", len(cat.Items)).Int("families", len(cat.Families)).Msg("list loaded")
	return cat, nil
}

// openBackend opens the configured status backend.
func openBackend(ctx context.Context) (store.Backend, error) {
	switch cfg.Store.Backend {
	case "", "sqlite":
		return store.OpenSQLite(cfg.SQLitePath())
	case "redis":
		return store.OpenRedis(ctx, store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			Prefix:   cfg.Store.Redis.Prefix,
		})
	case "memory":
		return store.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want sqlite, redis or memory)", cfg.Store.Backend)
	}
}

// openStore opens the backend and restores the persisted status.
func openStore(ctx context.Context) (*store.Store, error) {
	b, err := openBackend(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening status store: %w", err)
	}
	st := store.New(b, logger)
	st.Load(ctx)
	return st, nil
}

func newSorter() *checklist.Sorter {
	return checklist.NewSorter(cfg.General.Locale)
}

// currentFilter builds the view filter from the global flags. An unknown
// family or category is an error once the list is known.
func currentFilter(cat *catalog.Catalog) (checklist.Filter, error) {
	status, err := checklist.ParseStatusFilter(flagStatus)
	if err != nil {
		return checklist.Filter{}, err
	}
	f := checklist.Filter{Query: flagSearch, Family: flagFamily, Category: flagCategory, Status: status}
	if cat == nil {
		return f, nil
	}

	if f.Family != "" && f.Family != checklist.AllFamilies && !cat.HasFamily(f.Family) {
		return checklist.Filter{}, fmt.Errorf("unknown family %q", f.Family)
	}
	if f.Category != "" && !slices.Contains(checklist.Categories(cat.Items, f.Family, newSorter()), f.Category) {
		return checklist.Filter{}, fmt.Errorf("unknown category %q", f.Category)
	}
	return f, nil
}
