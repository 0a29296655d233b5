package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/rendering"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a Markdown comparison of the top ranked candidates",
	Long: `Render a comparison report from ranked output: either the batch JSON written by rank
or the candidate array written by rank-records.`,
	RunE: runReport,
}

var (
	reportInputFile    string
	reportOutputFile   string
	reportTopN         int
	reportTemplatePath string
	reportJSON         bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportInputFile, "in", "i", "", "Path to ranked output JSON (required)")
	reportCmd.Flags().StringVarP(&reportOutputFile, "out", "o", "", "Path to output file (defaults to stdout)")
	reportCmd.Flags().IntVar(&reportTopN, "top", rendering.DefaultTopN, "Number of candidates to compare")
	reportCmd.Flags().StringVar(&reportTemplatePath, "template", "", "Path to a custom report template")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Write the report and its visualization data as JSON")

	_ = reportCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if reportTopN < 1 {
		return fmt.Errorf("top must be positive, got %d", reportTopN)
	}

	content, err := os.ReadFile(reportInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	candidates, err := parseRanked(content)
	if err != nil {
		return err
	}

	report, err := rendering.RenderComparison(candidates, rendering.ReportOptions{
		TopN:         reportTopN,
		TemplatePath: reportTemplatePath,
	})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if reportJSON {
		_, err = writeJSON(cmd, reportOutputFile, report)
		return err
	}
	return writeMarkdown(cmd, reportOutputFile, report.Markdown)
}

// parseRanked accepts a batch object or a bare array of ranked candidates
func parseRanked(content []byte) ([]types.RankedCandidate, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var candidates []types.RankedCandidate
		if err := json.Unmarshal(trimmed, &candidates); err != nil {
			return nil, fmt.Errorf("failed to parse ranked candidates: %w", err)
		}
		return candidates, nil
	}

	var batch types.BatchResult
	if err := json.Unmarshal(trimmed, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse ranked candidates: %w", err)
	}
	return batch.Ranked, nil
}

// writeMarkdown writes text to path, or to the command's stdout when path is empty
func writeMarkdown(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", path)
	return nil
}
