package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalog-sim/config"
	"catalog-sim/utils"
)

var (
	cfg    = config.Load()
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catalog-sim",
	Short: "catalog-sim expands a scraped product catalog into a synthetic daily sales dataset.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = utils.NewLogger(cfg.LogLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
