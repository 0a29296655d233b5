package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Verdict
	}{
		{100, StrongMatch},
		{80, StrongMatch},
		{79.99, PotentialMatch},
		{50, PotentialMatch},
		{49.99, WeakMatch},
		{0, WeakMatch},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictFor(tt.score), "score %v", tt.score)
	}
}

func TestExplain_Strong(t *testing.T) {
	c := types.RankedCandidate{
		CandidateRecord: types.CandidateRecord{
			Name:              "alice",
			SimilarityScore:   0.854,
			YearsOfExperience: 8,
			MatchedSkills:     []string{"Python", "Go", "Docker", "AWS", "SQL", "Kafka", "Redis"},
		},
		FinalScore: 86,
	}

	lines := strings.Split(Explain(c), "\n")
	assert.Equal(t, []string{
		"alice ranks as a Strong Match with a score of 86.0/100.",
		"✓ Strong skill alignment (7 matches: Python, Go, Docker, AWS, SQL (+2 more))",
		"✓ 8 years of relevant experience",
		"✓ 85% content similarity with the job description",
	}, lines)
}

func TestExplain_PotentialWithMissingSkills(t *testing.T) {
	c := types.RankedCandidate{
		CandidateRecord: types.CandidateRecord{
			Name:              "bob",
			SimilarityScore:   0.4,
			YearsOfExperience: 15,
			MatchedSkills:     []string{"Python"},
			MissingSkills:     []string{"Docker", "Communication"},
		},
		FinalScore: 56,
	}

	out := Explain(c)
	assert.Contains(t, out, "bob ranks as a Potential Match with a score of 56.0/100.")
	assert.Contains(t, out, "✓ Good skill overlap (1 matches)")
	assert.Contains(t, out, "✓ 15 years of relevant experience")
	assert.Contains(t, out, "✓ 40% content similarity")
	assert.True(t, strings.HasSuffix(out, "⚠ Missing skills: Docker, Communication"))
}

func TestExplain_WeakCapsMissingSkills(t *testing.T) {
	c := types.RankedCandidate{
		CandidateRecord: types.CandidateRecord{
			MissingSkills: []string{"a", "b", "c", "d", "e", "f"},
		},
		FinalScore: 12.345,
	}

	out := Explain(c)
	assert.Contains(t, out, "Candidate ranks as a Weak Match with a score of 12.3/100.")
	assert.Contains(t, out, "✗ Limited skill match (0 matches)")
	assert.Contains(t, out, "✗ No measurable professional experience found")
	assert.Contains(t, out, "⚠ Missing skills: a, b, c, d, e (+1 more)")
}

func TestExplain_NoMissingLine(t *testing.T) {
	out := Explain(types.RankedCandidate{FinalScore: 60})
	assert.NotContains(t, out, "Missing")
}

func TestExplain_Deterministic(t *testing.T) {
	c := types.RankedCandidate{
		CandidateRecord: types.CandidateRecord{Name: "x", MatchedSkills: []string{"Go"}, SimilarityScore: 0.5},
		FinalScore:      81,
	}
	assert.Equal(t, Explain(c), Explain(c))
}
