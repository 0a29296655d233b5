// Package similarity scores how much of a job description's vocabulary a résumé covers.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Priyagaggar/TalentLens-AI/internal/textproc"
)

// DefaultMaxFeatures caps the vocabulary built from a job description
const DefaultMaxFeatures = 500

// tokenRegex keeps runs of two or more word characters
var tokenRegex = regexp.MustCompile(`\b\w\w+\b`)

// Model is a term-weighted vector space fitted on exactly one job description.
// A Model never changes after Fit returns, so one instance can score many résumés
// concurrently. The zero value is an unfitted model that scores everything 0.
type Model struct {
	vocab    map[string]int
	idf      []float64
	jdVector []float64
}

// Fit builds the vocabulary from jdText: unigrams and bigrams of the lower-cased
// tokens with English stop words removed, keeping the maxFeatures most frequent terms
// (ties alphabetical). maxFeatures <= 0 uses DefaultMaxFeatures.
// A blank job description returns an unfitted model.
func Fit(jdText string, maxFeatures int) *Model {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	counts := termCounts(jdText)
	if len(counts) == 0 {
		return &Model{}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	m := &Model{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	// Smoothed idf over the one-document corpus: ln((1+n)/(1+df)) + 1 with n = df = 1
	for i, term := range terms {
		m.vocab[term] = i
		m.idf[i] = math.Log(2.0/2.0) + 1
	}
	m.jdVector = m.vectorize(counts)

	return m
}

// IsFitted reports whether the model has a vocabulary to score against
func (m *Model) IsFitted() bool {
	return m != nil && len(m.vocab) > 0
}

// VocabularySize returns the number of terms kept from the job description
func (m *Model) VocabularySize() int {
	if m == nil {
		return 0
	}
	return len(m.vocab)
}

// Score returns the cosine similarity between the job description and resumeText in
// [0, 1], rounded to four decimals. Résumé terms outside the job description's
// vocabulary are ignored. An unfitted model or blank text scores 0.
func (m *Model) Score(resumeText string) float64 {
	if !m.IsFitted() || textproc.IsBlank(resumeText) {
		return 0
	}

	resumeVector := m.vectorize(termCounts(resumeText))

	dot := 0.0
	for i, v := range m.jdVector {
		dot += v * resumeVector[i]
	}
	score := math.Round(dot*10000) / 10000
	return math.Max(0, math.Min(1, score))
}

// vectorize projects term counts onto the vocabulary and l2-normalizes the result
func (m *Model) vectorize(counts map[string]int) []float64 {
	vec := make([]float64, len(m.vocab))
	for term, n := range counts {
		if idx, ok := m.vocab[term]; ok {
			vec[idx] = float64(n) * m.idf[idx]
		}
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Terms returns the unigrams and bigrams of text after lower-casing and stop-word removal
func Terms(text string) []string {
	tokens := tokenRegex.FindAllString(strings.ToLower(textproc.FoldAccents(text)), -1)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !textproc.IsStopWord(tok) {
			kept = append(kept, tok)
		}
	}

	terms := make([]string, 0, 2*len(kept))
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, term := range Terms(text) {
		counts[term]++
	}
	return counts
}
