// Package main provides the entry point for the TalentLens résumé scoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentlens",
	Short: "TalentLens résumé screening toolkit",
	Long: `TalentLens scores résumés against a job description: it extracts skills, estimates experience,
measures content similarity, and ranks candidates with an explanation for every score.

Configuration is read from talentlens.yaml (or --config) and TALENTLENS_* environment variables.
Command-line flags override both.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	configPath     string
	dictionaryPath string
	workers        int
	logJSON        bool
	logDebug       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML, JSON or TOML); defaults to ./talentlens.yaml when present")
	rootCmd.PersistentFlags().StringVar(&dictionaryPath, "dictionary", "", "Path to a skill dictionary JSON file (defaults to the built-in dictionary)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Number of résumés analyzed concurrently")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit JSON logs on stderr")
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
