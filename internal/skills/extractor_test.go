package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Priyagaggar/TalentLens-AI/internal/dictionary"
	"github.com/Priyagaggar/TalentLens-AI/internal/fuzzy"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

func defaultExtractor(t *testing.T) *Extractor {
	t.Helper()
	dict, err := dictionary.Default()
	require.NoError(t, err)
	return NewExtractor(dict, nil)
}

func extractorFor(t *testing.T, raw string) *Extractor {
	t.Helper()
	dict, err := dictionary.Parse([]byte(raw))
	require.NoError(t, err)
	return NewExtractor(dict, nil)
}

func TestExtract_SampleResume(t *testing.T) {
	e := defaultExtractor(t)
	text := `
	I am an experienced software engineer.
	Expertise in Pyton, Java, and ReactJS.
	Familiar with Dockr and AWS.
	Strong communication and teamwork skills.
	I also know C++ and C# very well.
	`

	got := e.Extract(text, DefaultThreshold)

	assert.Equal(t, []string{"C#", "C++", "Java", "Python"}, got["programming_languages"])
	assert.Equal(t, []string{"React"}, got["web_frameworks"])
	assert.Equal(t, []string{"AWS", "Docker"}, got["cloud_devops"])
	assert.Equal(t, []string{"Communication", "Teamwork"}, got["soft_skills"])
}

func TestExtract_ShortNamesNeedBoundaries(t *testing.T) {
	e := extractorFor(t, `{"languages": [{"name": "Go"}, {"name": "R"}]}`)

	assert.True(t, e.Extract("I worked at Google, really.", DefaultThreshold).IsEmpty())

	got := e.Extract("Languages: Go, R (statistics)", DefaultThreshold)
	assert.Equal(t, []string{"Go", "R"}, got["languages"])
}

func TestExtract_BoundaryAtStringEdges(t *testing.T) {
	e := extractorFor(t, `{"languages": [{"name": "Go"}]}`)
	assert.Equal(t, []string{"Go"}, e.Extract("go", DefaultThreshold)["languages"])
	assert.Equal(t, []string{"Go"}, e.Extract("[Go]", DefaultThreshold)["languages"])
	assert.True(t, e.Extract("golang", DefaultThreshold).IsEmpty())
}

func TestExtract_ShortVariationsSkipFuzzy(t *testing.T) {
	e := extractorFor(t, `{"languages": [{"name": "Java"}]}`)
	// "javax" scores 89 against "java", above the threshold, but four-letter names are literal-only
	assert.True(t, e.Extract("javax", 80).IsEmpty())
}

func TestExtract_FuzzyRespectsThreshold(t *testing.T) {
	e := extractorFor(t, `{"devops": [{"name": "Kubernetes"}]}`)

	assert.Equal(t, []string{"Kubernetes"}, e.Extract("ran kubernets clusters", DefaultThreshold)["devops"])
	assert.True(t, e.Extract("ran kubernets clusters", 99).IsEmpty())
}

func TestExtract_AliasReportsCanonicalName(t *testing.T) {
	e := extractorFor(t, `{"web": [{"name": "React", "aliases": ["reactjs", "react.js"]}]}`)
	got := e.Extract("Built SPAs in React.js and ReactJS, mostly React.", DefaultThreshold)
	assert.Equal(t, types.SkillSet{"web": {"React"}}, got)
}

func TestExtract_SameSkillInSeveralCategories(t *testing.T) {
	e := extractorFor(t, `{"db": [{"name": "SQL"}], "languages": [{"name": "SQL"}]}`)
	got := e.Extract("Strong SQL.", DefaultThreshold)
	assert.Equal(t, []string{"db", "languages"}, got.Categories())
}

func TestExtract_BlankText(t *testing.T) {
	e := defaultExtractor(t)
	assert.True(t, e.Extract("", DefaultThreshold).IsEmpty())
	assert.True(t, e.Extract("  \n\t ", DefaultThreshold).IsEmpty())
}

func TestExtract_Deterministic(t *testing.T) {
	e := defaultExtractor(t)
	text := "Python, Go, Docker, Kubernetes, PostgreSQL, Redis, leadership"
	assert.Equal(t, e.Extract(text, DefaultThreshold), e.Extract(text, DefaultThreshold))
}

func TestExtractFlat(t *testing.T) {
	e := extractorFor(t, `{"b": [{"name": "Redis"}], "a": [{"name": "Python"}, {"name": "Django"}]}`)
	assert.Equal(t, []string{"Django", "Python", "Redis"}, e.ExtractFlat("python django redis", DefaultThreshold))
}

func TestExtract_LogsFuzzyMatches(t *testing.T) {
	dict, err := dictionary.Parse([]byte(`{"data": [{"name": "Pandas"}]}`))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	e := NewExtractor(dict, zap.New(core))

	e.Extract("cleaned data with pandass", DefaultThreshold)

	entries := logs.FilterMessage("fuzzy skill match").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "pandass", entries[0].ContextMap()["token"])
	assert.Equal(t, "Pandas", entries[0].ContextMap()["skill"])
}

// Every reported skill must be backed by a bounded literal hit or a token over the threshold.
func TestExtract_ReportedSkillsAreJustified(t *testing.T) {
	dict, err := dictionary.Default()
	require.NoError(t, err)
	e := NewExtractor(dict, nil)

	texts := []string{
		"Senior engineer: Golang, Pyton, Kubernets, postgres, React.js, team player",
		"Data scientist (sklearn; pandas; NumPy) with tableau dashboards and Power BI",
		"Graphic designer. Photoshop, Figma, illustration, painting.",
	}

	for _, text := range texts {
		lower := strings.ToLower(text)
		tokens := uniqueTokens(lower)
		got := e.Extract(text, DefaultThreshold)
		for _, category := range got.Categories() {
			for _, name := range got[category] {
				assert.True(t, justified(dict, category, name, lower, tokens), "%s/%s in %q", category, name, text)
			}
		}
	}
}

func justified(dict *dictionary.Dictionary, category, name, lower string, tokens []string) bool {
	for _, entry := range dict.Entries(category) {
		if entry.Name != name {
			continue
		}
		for _, v := range entry.Variations() {
			v = strings.ToLower(v)
			if boundaryPattern(v).MatchString(lower) {
				return true
			}
			if len(v) > minFuzzyLength {
				if _, score := fuzzy.BestMatch(v, tokens); score >= DefaultThreshold {
					return true
				}
			}
		}
	}
	return false
}
