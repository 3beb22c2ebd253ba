package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/cli"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Progress per family",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	status := st.Status()
	totals := checklist.GlobalStats(cat.Items, status)

	if len(cat.Items) == 0 {
		fmt.Println("\n  Listan är tom.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("JULMAT"))
	fmt.Println()

	rows := make([][]string, 0, len(cat.Families)+2)
	for _, fam := range cat.Families {
		fs := checklist.FamilyStats(cat.Items, status, fam)
		rows = append(rows, []string{
			fam,
			fmt.Sprintf("%d/%d", fs.Done, fs.Total),
			cli.FormatNumber(int64(fs.Bought)),
			cli.FormatNumber(int64(fs.Cooked)),
			cli.FormatPercent(fs.Percent()),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Totalt",
		fmt.Sprintf("%d/%d", totals.Done, totals.Total),
		"",
		"",
		cli.FormatPercent(totals.Percent()),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Familj", "Klara", "Handlade", "Lagade", "Klart"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderProgressBar(totals.Done, totals.Total, 40))
	if t, ok := st.LastModified(ctx); ok {
		fmt.Println(cli.RenderMuted("  Senast ändrad " + cli.FormatAge(t)))
	}
	fmt.Println()

	return nil
}
