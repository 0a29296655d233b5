package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/matching"
	"github.com/Priyagaggar/TalentLens-AI/internal/observability"
)

var matchSkillsCmd = &cobra.Command{
	Use:   "match-skills",
	Short: "Compare a résumé's skills with the skills a job asks for",
	Long:  "Classify each job skill as matched, partially matched or missing against a list of résumé skills, and report the weighted match percentage.",
	RunE:  runMatchSkills,
}

var (
	matchResumeSkills []string
	matchJobSkills    []string
	matchThreshold    int
	matchVerbose      bool
)

func init() {
	matchSkillsCmd.Flags().StringSliceVar(&matchResumeSkills, "resume-skills", nil, "Comma-separated résumé skills")
	matchSkillsCmd.Flags().StringSliceVar(&matchJobSkills, "job-skills", nil, "Comma-separated job description skills (required)")
	matchSkillsCmd.Flags().IntVar(&matchThreshold, "threshold", 0, "Partial match threshold 1-100 (defaults to config)")
	matchSkillsCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	_ = matchSkillsCmd.MarkFlagRequired("job-skills")

	rootCmd.AddCommand(matchSkillsCmd)
}

func runMatchSkills(cmd *cobra.Command, _ []string) error {
	threshold := appConfig.GapThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = matchThreshold
	}
	if threshold < 1 || threshold > 100 {
		return fmt.Errorf("threshold must be within 1-100, got %d", threshold)
	}

	result := matching.NewMatcher(threshold).Match(matchResumeSkills, matchJobSkills)

	if matchVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSkillMatch(&result)
		return nil
	}

	_, err := writeJSON(cmd, "", result)
	return err
}
