package ranking

import (
	"fmt"
	"math"
	"strings"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// Verdict thresholds on the final 0-100 score
const (
	strongMatchScore    = 80.0
	potentialMatchScore = 50.0

	maxListedSkills = 5
)

// Verdict is the categorical reading of a final score
type Verdict string

const (
	StrongMatch    Verdict = "Strong Match"
	PotentialMatch Verdict = "Potential Match"
	WeakMatch      Verdict = "Weak Match"
)

// VerdictFor maps a final score to its verdict
func VerdictFor(finalScore float64) Verdict {
	switch {
	case finalScore >= strongMatchScore:
		return StrongMatch
	case finalScore >= potentialMatchScore:
		return PotentialMatch
	default:
		return WeakMatch
	}
}

// Explain renders a short narrative of why a candidate scored as it did.
// It depends only on its argument.
func Explain(c types.RankedCandidate) string {
	name := c.Name
	if name == "" {
		name = "Candidate"
	}
	verdict := VerdictFor(c.FinalScore)
	matched := c.MatchedSkills

	lines := make([]string, 0, 5)
	lines = append(lines, fmt.Sprintf("%s ranks as a %s with a score of %.1f/100.", name, verdict, c.FinalScore))

	switch verdict {
	case StrongMatch:
		lines = append(lines, fmt.Sprintf("✓ Strong skill alignment (%d matches: %s)", len(matched), capList(matched)))
	case PotentialMatch:
		lines = append(lines, fmt.Sprintf("✓ Good skill overlap (%d matches)", len(matched)))
	default:
		lines = append(lines, fmt.Sprintf("✗ Limited skill match (%d matches)", len(matched)))
	}

	if c.YearsOfExperience > 0 {
		lines = append(lines, fmt.Sprintf("✓ %g years of relevant experience", c.YearsOfExperience))
	} else {
		lines = append(lines, "✗ No measurable professional experience found")
	}

	lines = append(lines, fmt.Sprintf("✓ %d%% content similarity with the job description", int(math.Round(c.SimilarityScore*100))))

	if len(c.MissingSkills) > 0 {
		lines = append(lines, "⚠ Missing skills: "+capList(c.MissingSkills))
	}

	return strings.Join(lines, "\n")
}

// capList joins at most maxListedSkills items and notes how many were left out
func capList(items []string) string {
	if len(items) <= maxListedSkills {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:maxListedSkills], ", "), len(items)-maxListedSkills)
}
