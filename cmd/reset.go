package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all bought/cooked checkmarks",
	Long:  "Remove all persisted status. The item list itself is not affected.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagResetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Nollställa alla bockar?").
			Description("Listan påverkas inte.").
			Affirmative("Ja").
			Negative("Nej").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("  Avbrutet.")
			return nil
		}
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("  Nollställt!")
	return nil
}
