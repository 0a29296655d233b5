// Package matching compares a résumé's skills with the skills a job description asks for.
package matching

import (
	"math"
	"strings"

	"github.com/Priyagaggar/TalentLens-AI/internal/fuzzy"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

const (
	// DefaultThreshold is the fuzzy score a résumé skill needs to count as a partial match
	DefaultThreshold = 70

	exactWeight   = 1.0
	partialWeight = 0.7
)

// Matcher classifies JD skills as matched, partial or missing. It holds no state
// between calls and is safe for concurrent use.
type Matcher struct {
	threshold int
}

// NewMatcher creates a Matcher; threshold <= 0 uses DefaultThreshold
func NewMatcher(threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the partial-match cut-off in use
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Match walks jdSkills in order. A case-insensitive exact hit is worth 1.0 and claims one
// résumé skill. Otherwise the closest résumé skill by fuzzy ratio (searching the whole list,
// earliest index on ties) is a partial match worth 0.7 when it clears the threshold, and the
// JD skill is missing when it does not. Earlier JD skills claim résumé skills first.
// Résumé skills never claimed are reported as extra.
func (m *Matcher) Match(resumeSkills, jdSkills []string) types.SkillMatchResult {
	result := types.SkillMatchResult{
		Matched: make([]string, 0),
		Partial: make([]types.PartialMatch, 0),
		Missing: make([]string, 0),
		Extra:   make([]string, 0),
	}

	if len(jdSkills) == 0 {
		result.Extra = append(result.Extra, resumeSkills...)
		return result
	}

	resumeLower := make([]string, len(resumeSkills))
	for i, s := range resumeSkills {
		resumeLower[i] = strings.ToLower(strings.TrimSpace(s))
	}

	consumed := make([]bool, len(resumeSkills))
	total := 0.0

	for _, jdSkill := range jdSkills {
		jdLower := strings.ToLower(strings.TrimSpace(jdSkill))

		if idx := exactIndex(resumeLower, consumed, jdLower); idx >= 0 {
			consumed[idx] = true
			result.Matched = append(result.Matched, jdSkill)
			total += exactWeight
			continue
		}

		idx, score := fuzzy.BestMatch(jdLower, resumeLower)
		if idx >= 0 && score >= m.threshold {
			consumed[idx] = true
			result.Partial = append(result.Partial, types.PartialMatch{
				JDSkill:     jdSkill,
				ResumeSkill: resumeSkills[idx],
				Score:       score,
			})
			total += partialWeight
			continue
		}

		result.Missing = append(result.Missing, jdSkill)
	}

	for i, skill := range resumeSkills {
		if !consumed[i] {
			result.Extra = append(result.Extra, skill)
		}
	}

	result.MatchPercentage = math.Round(total/float64(len(jdSkills))*100*100) / 100
	return result
}

// exactIndex finds the first unconsumed résumé skill equal to want, falling back to the
// first equal one when all copies are already claimed. Returns -1 when none is equal.
func exactIndex(resumeLower []string, consumed []bool, want string) int {
	first := -1
	for i, s := range resumeLower {
		if s != want {
			continue
		}
		if !consumed[i] {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}
