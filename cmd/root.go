package cmd

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site",
	Long: `Serves the portfolio pages: a validated contact form, a filterable
project browser and a searchable skills board, all rendered server side
and driven by HTMX.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
}
