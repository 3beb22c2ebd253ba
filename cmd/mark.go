package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/cli"
	"github.com/theirongolddev/julmat/internal/model"
)

var markCmd = &cobra.Command{
	Use:   "mark <bought|cooked> <item>...",
	Short: "Check a flag on one or more items",
	Long: "Check bought (handlad) or cooked (lagad) on items. Items are given by ID,\n" +
		"by name, or by a unique part of the name.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMark(cmd, args, true)
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <bought|cooked> <item>...",
	Short: "Clear a flag on one or more items",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMark(cmd, args, false)
	},
}

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
}

func runMark(cmd *cobra.Command, args []string, value bool) error {
	field, err := model.ParseField(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	items, err := resolveItems(cat, args[1:])
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	label := fieldLabel(field)
	for _, it := range items {
		entry, err := st.Toggle(ctx, it.ID(), field, value)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s %s  %s\n",
			cli.FormatCheck(entry.Value(field)),
			label,
			it.Name,
			cli.RenderMuted(it.Family+" · "+it.Category),
		)
	}
	return nil
}

func fieldLabel(f model.Field) string {
	if f == model.FieldCooked {
		return "Lagad"
	}
	return "Handlad"
}
