package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/ingestion"
	"github.com/Priyagaggar/TalentLens-AI/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one résumé against a job description",
	Long:  "Run every signal for a single résumé (contact details, skills, experience, similarity and skill match) and score it as if it were ranked alone.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJobFile    string
	analyzeOutputFile string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to résumé document (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "jd", "j", "", "Path to job description document (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Also print a formatted skill match summary on stderr")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	jdText, _, err := readText(analyzeJobFile)
	if err != nil {
		return err
	}

	doc := ingestion.LoadDocuments([]string{analyzeResumeFile})[0]
	if doc.Err != nil {
		return fmt.Errorf("failed to read %s: %w", analyzeResumeFile, doc.Err)
	}

	scorer, cleanup, err := newScorer(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	analysis, err := scorer.AnalyzeOne(ctx, doc, jdText)
	if err != nil {
		return err
	}

	if analyzeVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSkillMatch(&analysis.SkillMatch)
	}

	_, err = writeJSON(cmd, analyzeOutputFile, analysis)
	return err
}
