package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print visitor statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if _, err := os.Stat(cfg.Analytics.DBPath); err != nil {
			return fmt.Errorf("analytics database %s: %w", cfg.Analytics.DBPath, err)
		}

		store, err := analytics.Open(cfg.Analytics.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(context.Background(), time.Now())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
