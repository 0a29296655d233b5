// Package types provides type definitions for structured data used throughout the TalentLens scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractionStatus describes what came out of processing one document
type ExtractionStatus string

const (
	// StatusOK means text was available and every signal was computed
	StatusOK ExtractionStatus = "ok"
	// StatusEmpty means the document had no usable text; all signals are zero
	StatusEmpty ExtractionStatus = "empty"
	// StatusFailed means the document could not be read at all
	StatusFailed ExtractionStatus = "failed"
)

// ContactInfo holds structured contact fields pulled from raw text
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phone_numbers"`
}

// ExperienceBreakdown reports both estimation strategies and the combined value
type ExperienceBreakdown struct {
	FromPhrases    float64 `json:"from_phrases"`
	FromDateRanges float64 `json:"from_date_ranges"`
	Years          float64 `json:"years"`
}

// Analysis is the full per-résumé output of the scoring pipeline
type Analysis struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Status           ExtractionStatus    `json:"status"`
	Error            string              `json:"error,omitempty"`
	Contact          ContactInfo         `json:"contact"`
	ExtractedSkills  SkillSet            `json:"extracted_skills"`
	Experience       ExperienceBreakdown `json:"experience"`
	SimilarityScore  float64             `json:"similarity_score"`
	SkillMatch       SkillMatchResult    `json:"skill_match"`
	FinalScore       float64             `json:"final_score"`
	ScoringBreakdown string              `json:"scoring_breakdown"`
	Explanation      string              `json:"explanation"`
}

// Record converts the analysis into the ranker's input shape
func (a *Analysis) Record() CandidateRecord {
	return CandidateRecord{
		ID:                   a.ID,
		Name:                 a.Name,
		SimilarityScore:      a.SimilarityScore,
		SkillMatchPercentage: a.SkillMatch.MatchPercentage,
		YearsOfExperience:    a.Experience.Years,
		MatchedSkills:        a.SkillMatch.Matched,
		MissingSkills:        a.SkillMatch.Missing,
	}
}

// Document is one résumé handed to a batch, already converted to text
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Err is set when the upstream text source failed for this document
	Err error `json:"-"`
}

// BatchResult is the ranked output of scoring many résumés against one JD
type BatchResult struct {
	BatchID        string            `json:"batch_id"`
	JobSkills      SkillSet          `json:"job_skills"`
	Ranked         []RankedCandidate `json:"ranked_candidates"`
	Skipped        []Analysis        `json:"skipped,omitempty"`
	ProcessingTime string            `json:"processing_time"`
}
