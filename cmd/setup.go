package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/config"
	"github.com/theirongolddev/julmat/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println("  Välkommen till julmat!")
	fmt.Println()

	saved, err := tui.RunSetup()
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Printf("  List: %s, status in %s\n", saved.General.DataSource, saved.Store.Backend)
	fmt.Println("  Run `julmat setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
