package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data source:      %s\n", cfg.General.DataSource)
	fmt.Printf("    Default category: %s\n", cfg.General.DefaultCategory)
	fmt.Printf("    Locale:           %s\n", cfg.General.Locale)
	fmt.Printf("    Export path:      %s\n", cfg.ExportPath())
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Backend: %s\n", cfg.Store.Backend)
	switch cfg.Store.Backend {
	case "redis":
		fmt.Printf("    Redis:   %s db %d prefix %q\n", cfg.Store.Redis.Addr, cfg.Store.Redis.DB, cfg.Store.Redis.Prefix)
		if cfg.Store.Redis.Password != "" {
			fmt.Printf("    Password: %s\n", maskSecret(cfg.Store.Redis.Password))
		}
	case "memory":
		fmt.Println("    (nothing is persisted)")
	default:
		fmt.Printf("    SQLite:  %s\n", cfg.SQLitePath())
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:    %s\n", cfg.Server.Addr)
	fmt.Printf("    Read-only:  %v\n", cfg.Server.ReadOnly)
	fmt.Printf("    Rate limit: %.1f/s burst %d\n", cfg.Server.RateLimitRPS, cfg.Server.RateBurst)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:  %s\n", cfg.Logging.Level)
	fmt.Printf("    Format: %s\n", cfg.Logging.Format)
	fmt.Println()

	fmt.Println("  Run `julmat setup` to reconfigure.")
	return nil
}

func maskSecret(s string) string {
	if len(s) > 8 {
		return s[:2] + "..." + s[len(s)-2:]
	}
	return "****"
}
