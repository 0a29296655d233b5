package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

func sampleCandidates() []types.CandidateRecord {
	return []types.CandidateRecord{
		{ID: "bob", Name: "Bob", SimilarityScore: 0.40, SkillMatchPercentage: 50, YearsOfExperience: 15},
		{ID: "alice", Name: "Alice", SimilarityScore: 0.85, SkillMatchPercentage: 90, YearsOfExperience: 8},
		{ID: "charlie", Name: "Charlie", SimilarityScore: 0.60, SkillMatchPercentage: 80, YearsOfExperience: 0.5},
	}
}

func TestRank_DefaultWeights(t *testing.T) {
	r := NewRanker(DefaultWeights(), DefaultExperienceCap)
	ranked := r.Rank(sampleCandidates())
	require.Len(t, ranked, 3)

	// Alice beats Bob even though Bob's capped experience term is higher
	assert.Equal(t, []string{"alice", "charlie", "bob"}, ids(ranked))
	assert.InDelta(t, 86.0, ranked[0].FinalScore, 1e-9)
	assert.InDelta(t, 57.0, ranked[1].FinalScore, 1e-9)
	assert.InDelta(t, 56.0, ranked[2].FinalScore, 1e-9)

	assert.Equal(t, types.NormalizedScores{Similarity: 40, Skills: 50, Experience: 100}, ranked[2].NormalizedScores)
	assert.Equal(t, "Similarity (85 * 0.4) + Skills (90 * 0.4) + Experience (80 * 0.2)", ranked[0].ScoringBreakdown)
}

func TestRank_AssignsContiguousRanksAndExplanations(t *testing.T) {
	ranked := NewRanker(DefaultWeights(), 0).Rank(sampleCandidates())
	for i, c := range ranked {
		assert.Equal(t, i+1, c.Rank)
		assert.NotEmpty(t, c.Explanation)
	}
}

func TestRank_StableOnTies(t *testing.T) {
	candidates := []types.CandidateRecord{
		{ID: "first", SimilarityScore: 0.5, SkillMatchPercentage: 50, YearsOfExperience: 5},
		{ID: "top", SimilarityScore: 0.9, SkillMatchPercentage: 90, YearsOfExperience: 9},
		{ID: "second", SimilarityScore: 0.5, SkillMatchPercentage: 50, YearsOfExperience: 5},
		{ID: "third", SimilarityScore: 0.5, SkillMatchPercentage: 50, YearsOfExperience: 5},
	}
	ranked := NewRanker(DefaultWeights(), 0).Rank(candidates)
	assert.Equal(t, []string{"top", "first", "second", "third"}, ids(ranked))
}

func TestRank_RecomputedPerCall(t *testing.T) {
	r := NewRanker(DefaultWeights(), 0)
	all := r.Rank(sampleCandidates())
	require.Equal(t, "alice", all[0].ID)

	without := r.Rank(sampleCandidates()[:1])
	require.Len(t, without, 1)
	assert.Equal(t, "bob", without[0].ID)
	assert.Equal(t, 1, without[0].Rank)
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	in := sampleCandidates()
	NewRanker(DefaultWeights(), 0).Rank(in)
	assert.Equal(t, sampleCandidates(), in)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, NewRanker(DefaultWeights(), 0).Rank(nil))
}

func TestRank_FinalScoreWithinBounds(t *testing.T) {
	r := NewRanker(DefaultWeights(), DefaultExperienceCap)
	var candidates []types.CandidateRecord
	for _, sim := range []float64{0, 0.33, 1} {
		for _, skills := range []float64{0, 54, 100} {
			for _, years := range []float64{0, 2.5, 10, 40} {
				candidates = append(candidates, types.CandidateRecord{
					ID: "c", SimilarityScore: sim, SkillMatchPercentage: skills, YearsOfExperience: years,
				})
			}
		}
	}

	ranked := r.Rank(candidates)
	for i, c := range ranked {
		assert.GreaterOrEqual(t, c.FinalScore, 0.0)
		assert.LessOrEqual(t, c.FinalScore, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].FinalScore, c.FinalScore)
		}
	}
	assert.Equal(t, 100.0, ranked[0].FinalScore)
}

func TestScore_CustomWeightsAndCap(t *testing.T) {
	r := NewRanker(Weights{Similarity: 0, Skills: 0, Experience: 1}, 5)
	c := r.Score(types.CandidateRecord{ID: "x", YearsOfExperience: 2.5})
	assert.Equal(t, 50.0, c.NormalizedScores.Experience)
	assert.Equal(t, 50.0, c.FinalScore)

	capped := r.Score(types.CandidateRecord{ID: "y", YearsOfExperience: 12})
	assert.Equal(t, 100.0, capped.FinalScore)
}

func TestScore_WeightsNotNormalized(t *testing.T) {
	r := NewRanker(Weights{Similarity: 1, Skills: 1, Experience: 1}, 0)
	c := r.Score(types.CandidateRecord{ID: "x", SimilarityScore: 1, SkillMatchPercentage: 100, YearsOfExperience: 10})
	assert.Equal(t, 300.0, c.FinalScore)
}

func TestValidateRecords(t *testing.T) {
	assert.NoError(t, ValidateRecords(sampleCandidates()))

	err := ValidateRecords([]types.CandidateRecord{{ID: "x", SimilarityScore: 1.5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SimilarityScore")

	err = ValidateRecords([]types.CandidateRecord{{SimilarityScore: 0.5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID")

	assert.Error(t, ValidateRecords([]types.CandidateRecord{{ID: "x", YearsOfExperience: -1}}))
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(DefaultWeights()))
	assert.Error(t, ValidateWeights(Weights{Similarity: -0.1}))
}

func ids(ranked []types.RankedCandidate) []string {
	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.ID
	}
	return out
}
