package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/cli"
	"github.com/theirongolddev/julmat/internal/store"
)

var flagImportClipboard bool

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Replace checklist status from an exported JSON payload",
	Long: "Read a payload written by `julmat export` and replace all status with it.\n" +
		"Without arguments the configured export path is read; - reads stdin.",
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportClipboard, "clipboard", false, "Read the payload from the clipboard")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	raw, src, err := readImportSource(args)
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p, err := st.Import(cmd.Context(), raw)
	if errors.Is(err, store.ErrFormat) {
		return fmt.Errorf("import failed: %s is not a julmat export: %w", src, err)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("  Importerade %d poster från %s (exporterad %s)\n",
		len(p.Status), src, cli.FormatAge(p.CreatedAt))
	return nil
}

func readImportSource(args []string) ([]byte, string, error) {
	if flagImportClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return nil, "", fmt.Errorf("reading clipboard: %w", err)
		}
		return []byte(text), "urklipp", nil
	}

	path := cfg.ExportPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "stdin", nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return data, path, nil
}
