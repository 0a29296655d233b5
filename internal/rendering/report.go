package rendering

import (
	"embed"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

const (
	// DefaultTopN is the number of candidates compared when none is given
	DefaultTopN = 5

	maxMatrixSkills = 8
	maxStrengths    = 5
	emptyReport     = "No candidates to report on."
)

//go:embed templates/comparison.md.tmpl
var templateFS embed.FS

// Report is a Markdown comparison of the top candidates plus the series behind it
type Report struct {
	Markdown      string            `json:"markdown_report"`
	Visualization VisualizationData `json:"visualization_data"`
}

// VisualizationData holds one value per compared candidate, in rank order
type VisualizationData struct {
	Names      []string  `json:"names"`
	Scores     []float64 `json:"scores"`
	Experience []float64 `json:"experience"`
	SkillMatch []float64 `json:"skill_match"`
}

// ReportOptions controls RenderComparison. TemplatePath replaces the built-in template.
type ReportOptions struct {
	TopN         int
	TemplatePath string
}

// comparisonData is passed to the report template
type comparisonData struct {
	Count  int
	Top    reportRow
	Rows   []reportRow
	Skills []string
}

type reportRow struct {
	Name       string
	Score      float64
	Experience float64
	SkillMatch float64
	Strengths  []string
	Has        map[string]bool
}

// RenderComparison compares the first TopN of candidates, which must already be in rank order
func RenderComparison(candidates []types.RankedCandidate, opts ReportOptions) (*Report, error) {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	top := candidates[:min(topN, len(candidates))]
	if len(top) == 0 {
		return &Report{
			Markdown: emptyReport,
			Visualization: VisualizationData{
				Names: []string{}, Scores: []float64{}, Experience: []float64{}, SkillMatch: []float64{},
			},
		}, nil
	}

	tmpl, err := parseTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	data := buildComparisonData(top)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return nil, &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return &Report{Markdown: result.String(), Visualization: visualization(data.Rows)}, nil
}

// parseTemplate loads the template at path, or the built-in one when path is empty
func parseTemplate(path string) (*template.Template, error) {
	var content []byte
	var err error
	if path == "" {
		content, err = templateFS.ReadFile("templates/comparison.md.tmpl")
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{Message: fmt.Sprintf("template file not found: %s", path)}
		}
		return nil, &TemplateError{Message: "failed to read template file", Cause: err}
	}

	tmpl, err := template.New("comparison").Funcs(template.FuncMap{
		"md":   EscapeMarkdown,
		"num":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
		"list": joinEscaped,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

func buildComparisonData(top []types.RankedCandidate) comparisonData {
	rows := make([]reportRow, 0, len(top))
	union := make(map[string]bool)

	for _, c := range top {
		has := make(map[string]bool, len(c.MatchedSkills))
		for _, s := range c.MatchedSkills {
			has[s] = true
			union[s] = true
		}
		rows = append(rows, reportRow{
			Name:       displayName(c),
			Score:      round1(c.FinalScore),
			Experience: c.YearsOfExperience,
			SkillMatch: round1(c.SkillMatchPercentage),
			Strengths:  c.MatchedSkills[:min(maxStrengths, len(c.MatchedSkills))],
			Has:        has,
		})
	}

	skills := make([]string, 0, len(union))
	for s := range union {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	return comparisonData{
		Count:  len(rows),
		Top:    rows[0],
		Rows:   rows,
		Skills: skills[:min(maxMatrixSkills, len(skills))],
	}
}

func visualization(rows []reportRow) VisualizationData {
	v := VisualizationData{
		Names:      make([]string, 0, len(rows)),
		Scores:     make([]float64, 0, len(rows)),
		Experience: make([]float64, 0, len(rows)),
		SkillMatch: make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		v.Names = append(v.Names, r.Name)
		v.Scores = append(v.Scores, r.Score)
		v.Experience = append(v.Experience, r.Experience)
		v.SkillMatch = append(v.SkillMatch, r.SkillMatch)
	}
	return v
}

func displayName(c types.RankedCandidate) string {
	switch {
	case c.Name != "":
		return c.Name
	case c.ID != "":
		return c.ID
	default:
		return "Unknown"
	}
}

func joinEscaped(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	escaped := make([]string, len(items))
	for i, s := range items {
		escaped[i] = EscapeMarkdown(s)
	}
	return strings.Join(escaped, ", ")
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
