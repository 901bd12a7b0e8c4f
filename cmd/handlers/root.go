package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newswave/internal/config"
	"newswave/internal/logger"
)

var cfgFile string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newswave",
		Short: "Generate daily Korean news radio scripts per category",
		Long: `Newswave - Daily News Radio Script Generator

Collects the day's most popular Korean news articles per category,
deduplicates and clusters them semantically, consolidates each topic
cluster into one summary, and synthesizes a radio narration script
with optional audio.

Core workflows:
  • Collect: pull ranked article listings, extract clean bodies, store them
  • Generate: cluster stored articles, consolidate, write the day's script

Examples:
  # Collect today's articles for every category
  newswave collect

  # Generate today's scripts for every category
  newswave generate

  # Generate only the economy script for a specific day
  newswave generate --category economy --date 2026-08-30`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .newswave.yaml)")

	rootCmd.AddCommand(NewCollectCmd())
	rootCmd.AddCommand(NewGenerateCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads the config file and environment variables.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Keep going: environment variables may be enough.
	}
	logger.Init(config.GetApp().LogLevel)
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
