package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/ranking"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

var rankRecordsCmd = &cobra.Command{
	Use:   "rank-records",
	Short: "Rank precomputed candidate records",
	Long: `Rank candidate records whose signals were computed elsewhere. The input is a JSON array of
objects with id, name, similarity_score (0-1), skill_match_percentage (0-100), years_of_experience,
matched_skills and missing_skills.`,
	RunE: runRankRecords,
}

var (
	recordsInputFile  string
	recordsOutputFile string
)

func init() {
	rankRecordsCmd.Flags().StringVarP(&recordsInputFile, "in", "i", "", "Path to candidate records JSON (required)")
	rankRecordsCmd.Flags().StringVarP(&recordsOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")

	_ = rankRecordsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(rankRecordsCmd)
}

func runRankRecords(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(recordsInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var records []types.CandidateRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return fmt.Errorf("failed to parse candidate records: %w", err)
	}
	if err := ranking.ValidateRecords(records); err != nil {
		return fmt.Errorf("invalid candidate records: %w", err)
	}

	ranked := ranking.NewRanker(appConfig.Weights, appConfig.ExperienceCap).Rank(records)

	_, err = writeJSON(cmd, recordsOutputFile, ranked)
	return err
}
