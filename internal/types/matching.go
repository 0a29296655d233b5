// Package types provides type definitions for structured data used throughout the TalentLens scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillMatchResult is the outcome of comparing résumé skills against JD skills.
// Matched, the JDSkill of every Partial entry and Missing together cover each JD skill exactly once.
type SkillMatchResult struct {
	MatchPercentage float64        `json:"match_percentage"`
	Matched         []string       `json:"matched_skills"`
	Partial         []PartialMatch `json:"partial_matches"`
	Missing         []string       `json:"missing_skills"`
	Extra           []string       `json:"extra_skills"`
}

// PartialMatch pairs a JD skill with the closest résumé skill that cleared the fuzzy threshold
type PartialMatch struct {
	JDSkill     string `json:"jd_skill"`
	ResumeSkill string `json:"resume_skill"`
	Score       int    `json:"score"`
}
