// Package skills extracts dictionary skills from free text.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Priyagaggar/TalentLens-AI/internal/dictionary"
	"github.com/Priyagaggar/TalentLens-AI/internal/fuzzy"
	"github.com/Priyagaggar/TalentLens-AI/internal/logging"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

const (
	// DefaultThreshold is the fuzzy score a token needs to count as a typo of a skill
	DefaultThreshold = 90

	// minFuzzyLength excludes short names like "Go", "R" or "SQL" from fuzzy matching
	minFuzzyLength = 4

	// boundaryChars flank a literal match; whitespace is handled by \s
	boundaryChars = `,.;:()\[\]{}/|!?"'`
)

// variation is one lower-cased spelling of a skill with its literal matcher
type variation struct {
	text    string
	pattern *regexp.Regexp
}

// compiledSkill is a dictionary entry with every variation prepared once
type compiledSkill struct {
	entry      types.SkillEntry
	variations []variation
}

// Extractor matches a skill dictionary against text.
// It is read-only after construction and safe for concurrent use.
type Extractor struct {
	categories []string
	skills     map[string][]compiledSkill
	logger     *zap.Logger
}

// NewExtractor compiles the literal matchers for every variation in dict.
func NewExtractor(dict *dictionary.Dictionary, logger *zap.Logger) *Extractor {
	logger = logging.OrNop(logger)

	e := &Extractor{
		categories: dict.Categories(),
		skills:     make(map[string][]compiledSkill),
		logger:     logger,
	}

	for _, category := range e.categories {
		entries := dict.Entries(category)
		compiled := make([]compiledSkill, 0, len(entries))
		for _, entry := range entries {
			cs := compiledSkill{entry: entry}
			for _, v := range entry.Variations() {
				lower := strings.ToLower(v)
				cs.variations = append(cs.variations, variation{
					text:    lower,
					pattern: boundaryPattern(lower),
				})
			}
			compiled = append(compiled, cs)
		}
		e.skills[category] = compiled
	}

	return e
}

// boundaryPattern matches v only when flanked by whitespace, punctuation or a string edge,
// so "go" never matches inside "google".
func boundaryPattern(v string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[\s` + boundaryChars + `])` + regexp.QuoteMeta(v) + `(?:$|[\s` + boundaryChars + `])`)
}

// Extract returns the skills found in text grouped by category.
// The literal pass runs to completion before the fuzzy pass, which only looks at skills
// the literal pass missed. Blank text yields an empty set.
func (e *Extractor) Extract(text string, threshold int) types.SkillSet {
	found := make(map[string]map[string]string)
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return types.SkillSet{}
	}

	// Literal pass
	for _, category := range e.categories {
		for _, skill := range e.skills[category] {
			for _, v := range skill.variations {
				if v.pattern.MatchString(normalized) {
					add(found, category, skill.entry.Name)
					break
				}
			}
		}
	}

	// Fuzzy pass over what the literal pass missed
	tokens := uniqueTokens(normalized)
	if len(tokens) > 0 {
		for _, category := range e.categories {
			for _, skill := range e.skills[category] {
				if has(found, category, skill.entry.Name) {
					continue
				}
				for _, v := range skill.variations {
					if utf8.RuneCountInString(v.text) <= minFuzzyLength {
						continue
					}
					idx, score := fuzzy.BestMatch(v.text, tokens)
					if idx >= 0 && score >= threshold {
						e.logger.Debug("fuzzy skill match",
							zap.String("token", tokens[idx]),
							zap.String("skill", skill.entry.Name),
							zap.String("category", category),
							zap.Int("score", score))
						add(found, category, skill.entry.Name)
						break
					}
				}
			}
		}
	}

	return toSkillSet(found)
}

// ExtractFlat returns Extract's skills as one list in category, then name, order
func (e *Extractor) ExtractFlat(text string, threshold int) []string {
	return e.Extract(text, threshold).Flatten()
}

// uniqueTokens splits text on whitespace, trims surrounding punctuation and returns
// the distinct non-empty tokens in sorted order.
func uniqueTokens(text string) []string {
	seen := make(map[string]bool)
	tokens := make([]string, 0)
	for _, field := range strings.Fields(text) {
		tok := strings.Trim(field, `,.;:()[]{}/|!?"'`)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// add records name under category, deduplicating case-insensitively
func add(found map[string]map[string]string, category, name string) {
	if found[category] == nil {
		found[category] = make(map[string]string)
	}
	key := strings.ToLower(name)
	if _, ok := found[category][key]; !ok {
		found[category][key] = name
	}
}

func has(found map[string]map[string]string, category, name string) bool {
	_, ok := found[category][strings.ToLower(name)]
	return ok
}

func toSkillSet(found map[string]map[string]string) types.SkillSet {
	set := make(types.SkillSet, len(found))
	for category, names := range found {
		list := make([]string, 0, len(names))
		for _, name := range names {
			list = append(list, name)
		}
		sort.Strings(list)
		set[category] = list
	}
	return set
}
