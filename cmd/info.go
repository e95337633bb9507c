package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the saved workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sum, err := readSummary(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Store:   %s\n", sum.Store)
		fmt.Fprintf(out, "Theme:   %s\n", sum.Theme)
		fmt.Fprintf(out, "Cards:   %d\n", sum.Cards)
		fmt.Fprintf(out, "Offset:  %g, %g\n", sum.OffsetX, sum.OffsetY)
		if !sum.SavedAt.IsZero() {
			fmt.Fprintf(out, "Saved:   %s\n", sum.SavedAt.Local().Format(time.DateTime))
		}
		if !sum.UpdatedAt.IsZero() {
			fmt.Fprintf(out, "Written: %s\n", sum.UpdatedAt.Local().Format(time.DateTime))
		}
		return nil
	},
}
