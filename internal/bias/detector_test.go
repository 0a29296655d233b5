package bias

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
}

func TestAnalyze_GenderCues(t *testing.T) {
	d := NewDetector(fixedClock)
	report := d.Analyze("He led the team. His chairman role and his mentoring of women engineers.")

	assert.Equal(t, []string{
		"Masculine Term: he",
		"Masculine Term: his",
		"Masculine Term: chairman",
		"Feminine Term: women",
	}, report.DetectedIssues)
	assert.Equal(t, []string{genderRecommendation}, report.Recommendations)
	assert.Empty(t, report.AnonymizationSuggestions)
}

func TestAnalyze_AgeCues(t *testing.T) {
	d := NewDetector(fixedClock)
	report := d.Analyze("BSc, Class of 1998. MSc 2010. Joined Acme in 2011, promoted 2019. Class of 1998 reunion.")

	// cutoff is 2011: only strictly older years count
	assert.Equal(t, []string{
		"Year 1998 (Potential Age Trigger)",
		"Year 2010 (Potential Age Trigger)",
	}, report.DetectedIssues)
	assert.Equal(t, []string{ageRecommendation}, report.Recommendations)
	assert.Equal(t, []string{
		"Remove 'Year 1998 (Potential Age Trigger)'",
		"Remove 'Year 2010 (Potential Age Trigger)'",
	}, report.AnonymizationSuggestions)
}

func TestAnalyze_IgnoresPartialWordsAndEmbeddedYears(t *testing.T) {
	d := NewDetector(fixedClock)
	report := d.Analyze("The theme: shepherd chemistry. Order #119980 shipped.")

	assert.Empty(t, report.DetectedIssues)
	assert.Empty(t, report.Recommendations)
}

func TestAnalyze_BothCategories(t *testing.T) {
	report := NewDetector(fixedClock).Analyze("She graduated in 1990.")
	assert.Equal(t, []string{"Feminine Term: she", "Year 1990 (Potential Age Trigger)"}, report.DetectedIssues)
	assert.Equal(t, []string{genderRecommendation, ageRecommendation}, report.Recommendations)
}

func TestAnalyze_CleanText(t *testing.T) {
	report := NewDetector(nil).Analyze("Built data pipelines in Go and Python.")
	assert.NotNil(t, report.DetectedIssues)
	assert.Empty(t, report.DetectedIssues)
}

func TestAnalyze_CutoffFollowsClock(t *testing.T) {
	later := NewDetector(func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) })
	assert.Len(t, later.Analyze("Graduated 2012").DetectedIssues, 1)
	assert.Empty(t, NewDetector(fixedClock).Analyze("Graduated 2012").DetectedIssues)
}
