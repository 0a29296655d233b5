package main

import (
	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/bias"
	"github.com/Priyagaggar/TalentLens-AI/internal/observability"
)

var biasCmd = &cobra.Command{
	Use:   "bias",
	Short: "Flag gendered wording and age cues in a résumé",
	Long:  "Scan a résumé for gendered terms and graduation-era years that could prompt biased screening, with anonymization suggestions.",
	RunE:  runBias,
}

var (
	biasInputFile  string
	biasOutputFile string
	biasVerbose    bool
)

func init() {
	biasCmd.Flags().StringVarP(&biasInputFile, "in", "i", "", "Path to résumé document (required)")
	biasCmd.Flags().StringVarP(&biasOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	biasCmd.Flags().BoolVarP(&biasVerbose, "verbose", "v", false, "Print a formatted report instead of JSON")

	_ = biasCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(biasCmd)
}

func runBias(cmd *cobra.Command, _ []string) error {
	text, _, err := readText(biasInputFile)
	if err != nil {
		return err
	}

	report := bias.NewDetector(nil).Analyze(text)

	if biasVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintBiasReport(&report)
		return nil
	}

	_, err = writeJSON(cmd, biasOutputFile, report)
	return err
}
