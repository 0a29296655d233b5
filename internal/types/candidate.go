// Package types provides type definitions for structured data used throughout the TalentLens scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateRecord is the unit of input for the ranker
type CandidateRecord struct {
	ID                   string   `json:"id" validate:"required"`
	Name                 string   `json:"name"`
	SimilarityScore      float64  `json:"similarity_score" validate:"gte=0,lte=1"`
	SkillMatchPercentage float64  `json:"skill_match_percentage" validate:"gte=0,lte=100"`
	YearsOfExperience    float64  `json:"years_of_experience" validate:"gte=0"`
	MatchedSkills        []string `json:"matched_skills"`
	MissingSkills        []string `json:"missing_skills"`
}

// NormalizedScores holds each signal rescaled to 0-100
type NormalizedScores struct {
	Similarity float64 `json:"similarity"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
}

// RankedCandidate is a CandidateRecord enriched by the ranker.
// Rank is positional and only meaningful within the batch that produced it.
type RankedCandidate struct {
	CandidateRecord
	NormalizedScores NormalizedScores `json:"normalized_scores"`
	FinalScore       float64          `json:"final_score"`
	Rank             int              `json:"rank"`
	ScoringBreakdown string           `json:"scoring_breakdown"`
	Explanation      string           `json:"explanation"`
}
