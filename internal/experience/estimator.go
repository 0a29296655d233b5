// Package experience infers total years of professional experience from résumé text.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Priyagaggar/TalentLens-AI/internal/logging"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

const (
	monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	rangeSep     = `\s*(?:-|–|—|to)\s*`

	// earliestYear bounds bare "YYYY - YYYY" ranges; older numbers are almost never employment
	earliestYear = 1950
)

var (
	phrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total experience[:\s-]*(\d+(?:\.\d+)?)\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*years? of experience`),
		regexp.MustCompile(`(?i)experience[:\s-]*(\d+(?:\.\d+)?)\+?\s*years?`),
	}

	relativeDateRegex = regexp.MustCompile(`(?i)\b(?:present|current|till date|now)\b`)

	monthYearRange = regexp.MustCompile(`(?i)\b(` + monthPattern + `)\s*\.?\s*(\d{4})` + rangeSep + `(` + monthPattern + `)\s*\.?\s*(\d{4})`)
	numericRange   = regexp.MustCompile(`\b(\d{1,2})/(\d{4})` + rangeSep + `(\d{1,2})/(\d{4})\b`)
	bareYearRange  = regexp.MustCompile(`(\d{4})` + rangeSep + `(\d{4})`)

	monthNumbers = map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}
)

// Estimator combines the phrase and date-range strategies.
// The clock only resolves words like "present"; the same text and clock always give the same result.
type Estimator struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewEstimator creates an Estimator. A nil now uses time.Now, a nil logger discards output.
func NewEstimator(now func() time.Time, logger *zap.Logger) *Estimator {
	if now == nil {
		now = time.Now
	}
	logger = logging.OrNop(logger)
	return &Estimator{now: now, logger: logger}
}

// Estimate returns years of experience rounded to one decimal.
// It takes the larger of the two strategies: rounded phrases under-report and gaps between
// jobs shrink date sums, so the max favours recall.
func (e *Estimator) Estimate(text string) float64 {
	return e.Breakdown(text).Years
}

// Breakdown reports each strategy alongside the combined estimate
func (e *Estimator) Breakdown(text string) types.ExperienceBreakdown {
	phrases := FromPhrases(text)
	dates := float64(e.DateRangeMonths(text)) / 12.0
	years := round1(math.Max(phrases, dates))

	e.logger.Debug("experience estimated",
		zap.Float64("from_phrases", phrases),
		zap.Float64("from_date_ranges", dates),
		zap.Float64("years", years))

	return types.ExperienceBreakdown{
		FromPhrases:    round1(phrases),
		FromDateRanges: round1(dates),
		Years:          years,
	}
}

// FromPhrases looks for explicit statements such as "Total Experience: 5 years" or
// "8+ years of experience". The first pattern that matches wins; no match gives 0.
func FromPhrases(text string) float64 {
	for _, pattern := range phrasePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return years
	}
	return 0
}

// span is a half-open byte range of the normalized text already claimed by a date range
type span struct{ start, end int }

// DateRangeMonths sums the whole months of every date range in text.
// Overlapping ranges are counted twice; a same-month range counts as one month.
func (e *Estimator) DateRangeMonths(text string) int {
	now := e.now()
	normalized := relativeDateRegex.ReplaceAllString(text, now.Format("Jan 2006"))

	total := 0
	claimed := make([]span, 0)

	for _, loc := range monthYearRange.FindAllStringSubmatchIndex(normalized, -1) {
		g := groups(normalized, loc)
		startMonth := monthNumbers[strings.ToLower(g[0])[:3]]
		endMonth := monthNumbers[strings.ToLower(g[2])[:3]]
		if months, ok := e.rangeMonths(g[1], startMonth, g[3], endMonth, normalized[loc[0]:loc[1]]); ok {
			total += months
		}
		claimed = append(claimed, span{loc[0], loc[1]})
	}

	for _, loc := range numericRange.FindAllStringSubmatchIndex(normalized, -1) {
		g := groups(normalized, loc)
		startMonth, err1 := strconv.Atoi(g[0])
		endMonth, err2 := strconv.Atoi(g[2])
		if err1 != nil || err2 != nil || !validMonth(startMonth) || !validMonth(endMonth) {
			e.logger.Debug("skipping unparsable date range", zap.String("fragment", normalized[loc[0]:loc[1]]))
			continue
		}
		if months, ok := e.rangeMonths(g[1], startMonth, g[3], endMonth, normalized[loc[0]:loc[1]]); ok {
			total += months
		}
		claimed = append(claimed, span{loc[0], loc[1]})
	}

	maxYear := now.Year() + 1
	for _, loc := range bareYearRange.FindAllStringSubmatchIndex(normalized, -1) {
		if overlaps(claimed, loc[0], loc[1]) || collides(normalized, loc[0], loc[1]) {
			continue
		}
		g := groups(normalized, loc)
		startYear, _ := strconv.Atoi(g[0])
		endYear, _ := strconv.Atoi(g[1])
		if startYear < earliestYear || endYear < earliestYear || startYear > maxYear || endYear > maxYear {
			continue
		}
		if months, ok := e.rangeMonths(g[0], 1, g[1], 1, normalized[loc[0]:loc[1]]); ok {
			total += months
		}
		claimed = append(claimed, span{loc[0], loc[1]})
	}

	return total
}

// rangeMonths returns the whole months between two month/year pairs.
// A start after the end is rejected.
func (e *Estimator) rangeMonths(startYearStr string, startMonth int, endYearStr string, endMonth int, fragment string) (int, bool) {
	startYear, err1 := strconv.Atoi(startYearStr)
	endYear, err2 := strconv.Atoi(endYearStr)
	if err1 != nil || err2 != nil {
		e.logger.Debug("skipping unparsable date range", zap.String("fragment", fragment))
		return 0, false
	}

	months := (endYear*12 + endMonth) - (startYear*12 + startMonth)
	if months < 0 {
		e.logger.Debug("skipping reversed date range", zap.String("fragment", fragment))
		return 0, false
	}
	if months == 0 {
		months = 1
	}
	return months, true
}

// groups returns the submatch strings of a FindAllStringSubmatchIndex entry, without the full match
func groups(s string, loc []int) []string {
	out := make([]string, 0, len(loc)/2-1)
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			out = append(out, "")
			continue
		}
		out = append(out, s[loc[i]:loc[i+1]])
	}
	return out
}

func overlaps(claimed []span, start, end int) bool {
	for _, c := range claimed {
		if start < c.end && c.start < end {
			return true
		}
	}
	return false
}

// collides reports whether a bare year range sits inside a longer numeric run such as
// a phone number ("555-2019-2020") or a date ("01/2019-2020").
func collides(s string, start, end int) bool {
	if start > 0 && isNumericNeighbour(s[start-1]) {
		return true
	}
	if end < len(s) && isNumericNeighbour(s[end]) {
		return true
	}
	return false
}

func isNumericNeighbour(c byte) bool {
	return (c >= '0' && c <= '9') || strings.IndexByte("-/+", c) >= 0
}

func validMonth(m int) bool {
	return m >= 1 && m <= 12
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
