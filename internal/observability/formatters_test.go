package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

func TestPrintJobSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobSkills(types.SkillSet{
		"cloud_devops":          {"AWS", "Docker"},
		"programming_languages": {"Python"},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB DESCRIPTION SKILLS")
	assert.Contains(t, output, "Total skills: 3")
	assert.Contains(t, output, "AWS, Docker")
	assert.Less(t, strings.Index(output, "cloud_devops"), strings.Index(output, "programming_languages"))
}

func TestPrintJobSkills_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobSkills(nil)
	assert.Contains(t, buf.String(), "No dictionary skills")
}

func TestPrintSkillMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillMatch(&types.SkillMatchResult{
		MatchPercentage: 54,
		Matched:         []string{"Python", "AWS"},
		Partial:         []types.PartialMatch{{JDSkill: "React", ResumeSkill: "ReactJS", Score: 83}},
		Missing:         []string{"Docker", "Communication"},
		Extra:           []string{"Photoshop"},
	})
	output := buf.String()

	assert.Contains(t, output, "Coverage: 54.0%")
	assert.Contains(t, output, "Matched (2)")
	assert.Contains(t, output, "React ~ ReactJS (83)")
	assert.Contains(t, output, "Missing (2)")
	assert.Contains(t, output, "Extra (1)")
}

func TestPrintSkillMatch_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSkillMatch(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRankedCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var ranked []types.RankedCandidate
	for i := 1; i <= 7; i++ {
		ranked = append(ranked, types.RankedCandidate{
			CandidateRecord: types.CandidateRecord{ID: "cand" + string(rune('0'+i)), MissingSkills: []string{"Go"}},
			Rank:            i,
			FinalScore:      float64(100 - i*10),
		})
	}
	ranked[0].Name = "alice"

	p.PrintRankedCandidates(&types.BatchResult{
		BatchID:        "b-1",
		Ranked:         ranked,
		Skipped:        []types.Analysis{{ID: "scan", Error: "unsupported document format"}},
		ProcessingTime: "5ms",
	})
	output := buf.String()

	assert.Contains(t, output, "RANKED CANDIDATES")
	assert.Contains(t, output, "#1  alice  90.00/100")
	assert.Contains(t, output, "#2  cand2")
	assert.NotContains(t, output, "#6")
	assert.Contains(t, output, "... and 2 more candidates")
	assert.Contains(t, output, "✗ scan skipped")
}

func TestPrintRankedCandidates_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintRankedCandidates(nil)
	p.PrintRankedCandidates(&types.BatchResult{})
	assert.Empty(t, buf.String())
}

func TestPrintBiasReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBiasReport(&types.BiasReport{
		DetectedIssues:  []string{"Masculine Term: he"},
		Recommendations: []string{"Consider using gender-neutral pronouns"},
	})
	assert.Contains(t, buf.String(), "Masculine Term: he")
	assert.Contains(t, buf.String(), "→ Consider")

	buf.Reset()
	p.PrintBiasReport(&types.BiasReport{})
	assert.Contains(t, buf.String(), "No bias cues detected")
}

func TestPrintBox_AlignsMultibyteLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "✓ ascii and ünïcödé\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}
