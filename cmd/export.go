package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:       "export png|txt <file>",
	Short:     "Render the saved workspace to an image or text file",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"png", "txt"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, closer, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		path, err := exportWorkspace(cmd.Context(), cfg, logger, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}
