package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/cli"
)

var flagListIDs bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items grouped by family",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListIDs, "ids", false, "Show item IDs")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
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

	fmt.Println()
	fmt.Printf("  %s klara av %s  %s\n\n",
		cli.FormatNumber(int64(view.Totals.Done)),
		cli.FormatNumber(int64(view.Totals.Total)),
		cli.RenderProgressBar(view.Totals.Done, view.Totals.Total, 30),
	)

	if view.Empty() {
		fmt.Println("  Inget matchar filtret.")
		fmt.Println(cli.RenderMuted("  Testa att rensa sök/familj/status."))
		return nil
	}

	headers := []string{"Handlad", "Lagad", "Namn", "Kategori", "Anteckning"}
	if flagListIDs {
		headers = append(headers, "ID")
	}

	for _, sec := range view.Sections {
		fs := sec.Stats
		fmt.Println(cli.RenderSectionHeader(
			sec.Family,
			cli.FormatFamilySummary(fs.Done, fs.Total, fs.Bought, fs.Cooked),
			fs.Percent(),
			sec.InView(),
		))
		if len(sec.Rows) == 0 {
			fmt.Println(cli.RenderMuted("  (inga rader)"))
			fmt.Println()
			continue
		}

		rows := make([][]string, 0, len(sec.Rows))
		for _, r := range sec.Rows {
			row := []string{
				cli.FormatCheck(r.Entry.Bought),
				cli.FormatCheck(r.Entry.Cooked),
				r.Item.Name,
				r.Item.Category,
				r.Item.Notes,
			}
			if flagListIDs {
				row = append(row, r.ID)
			}
			rows = append(rows, row)
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers:  headers,
			Rows:     rows,
			TextCols: len(headers),
		}))
		fmt.Println()
	}

	return nil
}
