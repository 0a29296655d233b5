// Package bias flags résumé content that could prompt biased screening decisions.
package bias

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// AgeCueWindow is how many years back a year must be before it counts as an age cue
const AgeCueWindow = 15

const (
	genderRecommendation = "Consider using gender-neutral pronouns (they/them) or titles (Chairperson, Server)."
	ageRecommendation    = "Remove graduation dates older than 10-15 years to prevent age bias."
)

var (
	masculineTerms = termSet("he", "him", "his", "man", "men", "male", "chairman", "waiter", "steward", "policeman")
	feminineTerms  = termSet("she", "her", "hers", "woman", "women", "female", "chairwoman", "waitress", "stewardess", "policewoman")

	wordPattern = regexp.MustCompile(`\b\w+\b`)
	yearPattern = regexp.MustCompile(`\b(19\d{2}|20[0-1]\d)\b`)
)

// Detector finds gendered wording and dated age cues in text
type Detector struct {
	now func() time.Time
}

// NewDetector creates a Detector; a nil clock uses time.Now
func NewDetector(now func() time.Time) *Detector {
	if now == nil {
		now = time.Now
	}
	return &Detector{now: now}
}

// Analyze returns the issues found in text. Each distinct issue is reported once,
// in order of first appearance.
func (d *Detector) Analyze(text string) types.BiasReport {
	report := types.BiasReport{
		DetectedIssues:           []string{},
		Recommendations:          []string{},
		AnonymizationSuggestions: []string{},
	}

	if gender := d.genderCues(text); len(gender) > 0 {
		report.DetectedIssues = append(report.DetectedIssues, gender...)
		report.Recommendations = append(report.Recommendations, genderRecommendation)
	}

	if age := d.ageCues(text); len(age) > 0 {
		report.DetectedIssues = append(report.DetectedIssues, age...)
		report.Recommendations = append(report.Recommendations, ageRecommendation)
		for _, issue := range age {
			report.AnonymizationSuggestions = append(report.AnonymizationSuggestions, fmt.Sprintf("Remove '%s'", issue))
		}
	}

	return report
}

func (d *Detector) genderCues(text string) []string {
	var found []string
	seen := map[string]bool{}
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		var issue string
		switch {
		case masculineTerms[word]:
			issue = "Masculine Term: " + word
		case feminineTerms[word]:
			issue = "Feminine Term: " + word
		default:
			continue
		}
		if !seen[issue] {
			seen[issue] = true
			found = append(found, issue)
		}
	}
	return found
}

func (d *Detector) ageCues(text string) []string {
	cutoff := d.now().Year() - AgeCueWindow

	var found []string
	seen := map[string]bool{}
	for _, y := range yearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(y)
		if err != nil || year >= cutoff {
			continue
		}
		issue := fmt.Sprintf("Year %s (Potential Age Trigger)", y)
		if !seen[issue] {
			seen[issue] = true
			found = append(found, issue)
		}
	}
	return found
}

func termSet(terms ...string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[t] = true
	}
	return set
}
