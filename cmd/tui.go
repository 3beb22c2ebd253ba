package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/config"
	"github.com/theirongolddev/julmat/internal/store"
	"github.com/theirongolddev/julmat/internal/tui"
	"github.com/theirongolddev/julmat/internal/tui/theme"
)

var flagTUIReadOnly bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive checklist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd, flagTUIReadOnly)
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the checklist without changing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd, true)
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&flagTUIReadOnly, "readonly", false, "Disable all changes")
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(browseCmd)
}

func runTUI(cmd *cobra.Command, readOnly bool) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	b, err := openBackend(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening status store: %w", err)
	}
	st := store.New(b, logger)
	defer func() { _ = st.Close() }()

	filter, err := currentFilter(nil)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Source:     cfg.General.DataSource,
		Catalog:    catalog.Options{DefaultCategory: cfg.General.DefaultCategory},
		Store:      st,
		Sorter:     newSorter(),
		Filter:     filter,
		ReadOnly:   readOnly,
		ExportPath: cfg.ExportPath(),
		NeedSetup:  !readOnly && !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
