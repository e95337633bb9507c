package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pinboard/internal/config"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "pinboard",
	Short: "Infinite canvas of sticky notes in the terminal",
	Long: `Pinboard is a terminal canvas of movable, resizable text cards.
Drag the background to pan, drag cards to move them and hold a card to edit it.
Everything is saved automatically.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runUI(cmd.Context(), cfg, configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides [store] path)")
	rootCmd.AddCommand(exportCmd, infoCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
