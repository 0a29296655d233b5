package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyagaggar/TalentLens-AI/internal/rendering"
)

const testRankedRecords = `[
  {"id": "a", "name": "Ann", "final_score": 88, "rank": 1, "skill_match_percentage": 90,
   "years_of_experience": 8, "matched_skills": ["Go"]},
  {"id": "b", "name": "Bob", "final_score": 31.5, "rank": 2, "skill_match_percentage": 40,
   "years_of_experience": 2}
]`

func TestReportCommand_FromCandidateArray(t *testing.T) {
	in := writeFile(t, "ranked.json", testRankedRecords)

	stdout, _, err := execute(t, "report", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Candidate Comparison Report (Top 2)")
	assert.Contains(t, stdout, "**Top Recommendation:** Ann")
	assert.Contains(t, stdout, "| Bob | 31.5 | 2.0 yr | 40.0% |")
	assert.Contains(t, stdout, "| Ann | ✓ |")
}

func TestReportCommand_FromBatchJSON(t *testing.T) {
	in := writeFile(t, "batch.json", `{"batch_id": "x", "ranked_candidates": `+testRankedRecords+`}`)

	stdout, _, err := execute(t, "report", "--in", in, "--top", "1", "--json")
	require.NoError(t, err)

	var report rendering.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, []string{"Ann"}, report.Visualization.Names)
	assert.Contains(t, report.Markdown, "(Top 1)")
}

func TestReportCommand_WritesFile(t *testing.T) {
	in := writeFile(t, "ranked.json", testRankedRecords)
	out := filepath.Join(t.TempDir(), "report.md")

	stdout, _, err := execute(t, "report", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report: "+out)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Head-to-Head Comparison")
}

func TestReportCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        func(t *testing.T) []string
		errorString string
	}{
		{"missing input", func(*testing.T) []string { return []string{"report"} }, "required flag"},
		{"malformed JSON", func(t *testing.T) []string {
			return []string{"report", "--in", writeFile(t, "bad.json", `[{"id": `)}
		}, "failed to parse ranked candidates"},
		{"non-positive top", func(t *testing.T) []string {
			return []string{"report", "--in", writeFile(t, "ranked.json", testRankedRecords), "--top", "0"}
		}, "top must be positive"},
		{"missing template", func(t *testing.T) []string {
			return []string{"report", "--in", writeFile(t, "ranked.json", testRankedRecords), "--template", "/nonexistent.tmpl"}
		}, "template file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args(t)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestRankCommand_WritesReport(t *testing.T) {
	jd, alice, bob := rankFixtures(t)
	report := filepath.Join(t.TempDir(), "report.md")

	_, _, err := execute(t, "rank", "--jd", jd, bob, alice, "--report", report)
	require.NoError(t, err)

	content, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Candidate Comparison Report (Top 2)")
	assert.Contains(t, string(content), "## Skill Matrix")
}
