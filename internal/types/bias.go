// Package types provides type definitions for structured data used throughout the TalentLens scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// BiasReport lists potential sources of reviewer bias found in a document
type BiasReport struct {
	DetectedIssues           []string `json:"detected_issues"`
	Recommendations          []string `json:"recommendations"`
	AnonymizationSuggestions []string `json:"anonymization_suggestions"`
}
