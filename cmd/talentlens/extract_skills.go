package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/observability"
	"github.com/Priyagaggar/TalentLens-AI/internal/skills"
	"github.com/Priyagaggar/TalentLens-AI/internal/textproc"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract dictionary skills from a résumé or job description",
	Long:  "Extract skills grouped by category from a .txt, .md, .pdf or .docx file using literal and fuzzy matching against the skill dictionary.",
	RunE:  runExtractSkills,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractThreshold  int
	extractVerbose    bool
)

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to input document (required)")
	extractSkillsCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	extractSkillsCmd.Flags().IntVar(&extractThreshold, "threshold", 0, "Fuzzy match threshold 0-100 (defaults to config)")
	extractSkillsCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	_ = extractSkillsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	threshold := appConfig.ExtractionThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = extractThreshold
	}
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be within 0-100, got %d", threshold)
	}

	text, _, err := readText(extractInputFile)
	if err != nil {
		return err
	}

	dict, err := loadDictionary()
	if err != nil {
		return err
	}

	found := skills.NewExtractor(dict, logger.Named("skills")).Extract(textproc.Clean(text), threshold)

	if extractVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintJobSkills(found)
		return nil
	}

	_, err = writeJSON(cmd, extractOutputFile, found)
	return err
}
