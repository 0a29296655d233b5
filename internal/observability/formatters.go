// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate cuts s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes; %-*s counts bytes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintJobSkills outputs the skills required by the job description, per category.
func (p *Printer) PrintJobSkills(skills types.SkillSet) {
	if skills.IsEmpty() {
		p.printBox("JOB DESCRIPTION SKILLS", "No dictionary skills found in the job description")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills: %d\n\n", skills.Count()))
	for _, category := range skills.Categories() {
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(skills[category], ", ")))
	}

	p.printBox("JOB DESCRIPTION SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillMatch outputs one résumé's skill gap against the job description.
func (p *Printer) PrintSkillMatch(match *types.SkillMatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Coverage: %.1f%%\n\n", match.MatchPercentage))

	writeList(&sb, "Matched", match.Matched)
	if len(match.Partial) > 0 {
		sb.WriteString(fmt.Sprintf("Partial (%d):\n", len(match.Partial)))
		count := min(len(match.Partial), maxItemsToShow)
		for i := 0; i < count; i++ {
			pm := match.Partial[i]
			sb.WriteString(fmt.Sprintf("  • %s ~ %s (%d)\n", pm.JDSkill, pm.ResumeSkill, pm.Score))
		}
		if len(match.Partial) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(match.Partial)-maxItemsToShow))
		}
	}
	writeList(&sb, "Missing", match.Missing)
	writeList(&sb, "Extra", match.Extra)

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintRankedCandidates outputs the top candidates of a batch with their scores.
func (p *Printer) PrintRankedCandidates(result *types.BatchResult) {
	if result == nil || (len(result.Ranked) == 0 && len(result.Skipped) == 0) {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch:     %s\n", result.BatchID))
	sb.WriteString(fmt.Sprintf("Ranked:    %d   Skipped: %d   Time: %s\n\n", len(result.Ranked), len(result.Skipped), result.ProcessingTime))

	count := min(len(result.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := result.Ranked[i]
		name := c.Name
		if name == "" {
			name = c.ID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s  %.2f/100\n", c.Rank, name, c.FinalScore))
		sb.WriteString(fmt.Sprintf("    sim %.0f  skills %.0f  exp %.0f\n",
			c.NormalizedScores.Similarity, c.NormalizedScores.Skills, c.NormalizedScores.Experience))
		if len(c.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", strings.Join(c.MissingSkills, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates\n", len(result.Ranked)-maxItemsToShow))
	}

	for _, s := range result.Skipped {
		sb.WriteString(fmt.Sprintf("\n✗ %s skipped (%s)", s.ID, s.Error))
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBiasReport outputs detected bias cues and recommendations.
func (p *Printer) PrintBiasReport(report *types.BiasReport) {
	if report == nil {
		return
	}
	if len(report.DetectedIssues) == 0 {
		p.printBox("BIAS CHECK", "No bias cues detected")
		return
	}

	var sb strings.Builder
	writeList(&sb, "Issues", report.DetectedIssues)
	for _, r := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("→ %s\n", r))
	}

	p.printBox("BIAS CHECK", strings.TrimSuffix(sb.String(), "\n"))
}
