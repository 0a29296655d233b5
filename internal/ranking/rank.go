// Package ranking combines per-candidate signals into one weighted score and orders a batch.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// Default weights for the scoring components
const (
	similarityWeight = 0.4
	skillsWeight     = 0.4
	experienceWeight = 0.2

	// DefaultExperienceCap is the number of years that earns the full experience score
	DefaultExperienceCap = 10.0
)

// Weights scales each normalized signal before summing.
// They are not required to sum to 1; keeping the final score within 0-100 is the caller's job.
type Weights struct {
	Similarity float64 `json:"similarity" mapstructure:"similarity" validate:"gte=0"`
	Skills     float64 `json:"skills" mapstructure:"skills" validate:"gte=0"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0"`
}

// DefaultWeights returns 0.4 similarity, 0.4 skills, 0.2 experience
func DefaultWeights() Weights {
	return Weights{
		Similarity: similarityWeight,
		Skills:     skillsWeight,
		Experience: experienceWeight,
	}
}

// Ranker scores and orders candidates. It keeps no state between calls.
type Ranker struct {
	weights       Weights
	experienceCap float64
}

// NewRanker creates a Ranker; experienceCap <= 0 uses DefaultExperienceCap
func NewRanker(weights Weights, experienceCap float64) *Ranker {
	if experienceCap <= 0 {
		experienceCap = DefaultExperienceCap
	}
	return &Ranker{weights: weights, experienceCap: experienceCap}
}

// Weights returns the weights in use
func (r *Ranker) Weights() Weights {
	return r.weights
}

// Rank scores every candidate, sorts by final score descending (ties keep input order)
// and assigns 1-based ranks. The input slice is not modified.
func (r *Ranker) Rank(candidates []types.CandidateRecord) []types.RankedCandidate {
	ranked := make([]types.RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, r.Score(c))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Explanation = Explain(ranked[i])
	}

	return ranked
}

// Score computes one candidate's normalized signals and weighted final score.
// Rank and Explanation are left for Rank to fill in.
func (r *Ranker) Score(c types.CandidateRecord) types.RankedCandidate {
	similarity := c.SimilarityScore * 100
	skills := c.SkillMatchPercentage
	experience := math.Min(math.Max(c.YearsOfExperience, 0), r.experienceCap) * (100 / r.experienceCap)

	final := similarity*r.weights.Similarity +
		skills*r.weights.Skills +
		experience*r.weights.Experience

	return types.RankedCandidate{
		CandidateRecord: c,
		NormalizedScores: types.NormalizedScores{
			Similarity: round(similarity, 1),
			Skills:     round(skills, 1),
			Experience: round(experience, 1),
		},
		FinalScore: round(final, 2),
		ScoringBreakdown: fmt.Sprintf("Similarity (%d * %g) + Skills (%d * %g) + Experience (%d * %g)",
			int(math.Round(similarity)), r.weights.Similarity,
			int(math.Round(skills)), r.weights.Skills,
			int(math.Round(experience)), r.weights.Experience),
	}
}

var validate = validator.New()

// ValidateRecords checks externally supplied records against their documented ranges
func ValidateRecords(records []types.CandidateRecord) error {
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return fmt.Errorf("candidate %d (%q): %w", i, records[i].ID, err)
		}
	}
	return nil
}

// ValidateWeights rejects negative weights
func ValidateWeights(w Weights) error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid ranking weights: %w", err)
	}
	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
