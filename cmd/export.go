package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/report"
)

var (
	flagExportOut       string
	flagExportClipboard bool
	flagExportFormat    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export checklist status as JSON, or the list as a spreadsheet",
	Long: "Export the status mapping as a JSON payload that `julmat import` accepts.\n" +
		"With --format xlsx the filtered list is written as a workbook instead.",
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&flagExportClipboard, "clipboard", false, "Copy the JSON payload to the clipboard")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "json", "Output format: json or xlsx")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	switch flagExportFormat {
	case "json":
		return exportJSON(cmd)
	case "xlsx":
		return exportXLSX(cmd)
	default:
		return fmt.Errorf("unknown format %q (want json or xlsx)", flagExportFormat)
	}
}

func exportJSON(cmd *cobra.Command) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	payload := st.Export()

	if flagExportClipboard {
		data, err := payload.MarshalCompact()
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  Kopierat %d poster till urklipp.\n", len(payload.Status))
		if flagExportOut == "" {
			return nil
		}
	}

	data, err := payload.Marshal()
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if flagExportOut == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOut, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Exporterade %d poster till %s\n", len(payload.Status), flagExportOut)
	}
	return nil
}

func exportXLSX(cmd *cobra.Command) error {
	if flagExportClipboard {
		return fmt.Errorf("--clipboard only works with --format json")
	}
	out := flagExportOut
	if out == "" {
		out = "julmat.xlsx"
	}

	ctx := cmd.Context()
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	filter, err := currentFilter(cat)
	if err != nil {
		return err
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	view := checklist.BuildView(cat, st.Status(), filter, newSorter())

	f, err := os.Create(out) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := report.WriteXLSX(f, view); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Skrev %d rader till %s\n", view.Visible, out)
	}
	return nil
}
