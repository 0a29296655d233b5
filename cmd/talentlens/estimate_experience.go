package main

import (
	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/experience"
)

var estimateExperienceCmd = &cobra.Command{
	Use:   "estimate-experience",
	Short: "Estimate years of professional experience in a résumé",
	Long:  "Estimate total years of experience from explicit statements (\"5 years of experience\") and employment date ranges, reporting both strategies.",
	RunE:  runEstimateExperience,
}

var (
	experienceInputFile  string
	experienceOutputFile string
)

func init() {
	estimateExperienceCmd.Flags().StringVarP(&experienceInputFile, "in", "i", "", "Path to résumé document (required)")
	estimateExperienceCmd.Flags().StringVarP(&experienceOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")

	_ = estimateExperienceCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(estimateExperienceCmd)
}

func runEstimateExperience(cmd *cobra.Command, _ []string) error {
	text, _, err := readText(experienceInputFile)
	if err != nil {
		return err
	}

	breakdown := experience.NewEstimator(nil, logger.Named("experience")).Breakdown(text)

	_, err = writeJSON(cmd, experienceOutputFile, breakdown)
	return err
}
