package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Priyagaggar/TalentLens-AI/internal/db"
	"github.com/Priyagaggar/TalentLens-AI/internal/ingestion"
	"github.com/Priyagaggar/TalentLens-AI/internal/metrics"
	"github.com/Priyagaggar/TalentLens-AI/internal/observability"
	"github.com/Priyagaggar/TalentLens-AI/internal/pipeline"
	"github.com/Priyagaggar/TalentLens-AI/internal/rendering"
	"github.com/Priyagaggar/TalentLens-AI/internal/schemas"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank [resume files...]",
	Short: "Rank many résumés against one job description",
	Long: `Score every résumé against the job description and rank them by weighted fit.

Résumés can be given as arguments, with --resume, or with --dir. Files that cannot be read
are reported as skipped and never abort the batch.`,
	RunE: runRank,
}

var (
	rankJobFile     string
	rankResumes     []string
	rankDir         string
	rankOutputFile  string
	rankVerbose     bool
	rankSave        bool
	rankDatabaseURL string
	rankMetricsFile string
	rankReportFile  string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJobFile, "jd", "j", "", "Path to job description document (required)")
	rankCmd.Flags().StringSliceVarP(&rankResumes, "resume", "r", nil, "Path to a résumé document (repeatable)")
	rankCmd.Flags().StringVar(&rankDir, "dir", "", "Directory of résumés; every supported file in it is ranked")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print progress and a ranked summary on stderr")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Persist the batch to PostgreSQL")
	rankCmd.Flags().StringVar(&rankDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to config, then DATABASE_URL env var)")
	rankCmd.Flags().StringVar(&rankMetricsFile, "metrics-file", "", "Write Prometheus metrics for this run to a textfile")
	rankCmd.Flags().StringVar(&rankReportFile, "report", "", "Also write a Markdown comparison of the top candidates to this file")

	_ = rankCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	paths, err := resumePaths(args, rankResumes, rankDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no résumés given: pass files as arguments, with --resume, or with --dir")
	}

	jdText, jdMeta, err := readText(rankJobFile)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if rankMetricsFile != "" {
		m = metrics.New()
	}

	options := []pipeline.Option{pipeline.WithMetrics(m)}
	if rankVerbose {
		options = append(options, pipeline.WithProgress(progressPrinter(cmd)))
	}

	scorer, cleanup, err := newScorer(ctx, options...)
	if err != nil {
		return err
	}
	defer cleanup()

	docs := ingestion.LoadDocuments(paths)
	result, err := scorer.RankBatch(ctx, jdText, docs)
	if err != nil {
		return fmt.Errorf("failed to rank résumés: %w", err)
	}

	if rankVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRankedCandidates(result)
	}

	jsonBytes, err := writeJSON(cmd, rankOutputFile, result)
	if err != nil {
		return err
	}
	if err := validateOutput(cmd, schemas.RankedCandidates, jsonBytes); err != nil {
		return err
	}

	if rankReportFile != "" {
		report, err := rendering.RenderComparison(result.Ranked, rendering.ReportOptions{})
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if err := os.WriteFile(rankReportFile, []byte(report.Markdown), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if rankMetricsFile != "" {
		if err := m.WriteFile(rankMetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if rankSave {
		if err := saveBatch(ctx, jdMeta.Hash, scorer.Options(), result); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved batch %s\n", result.BatchID)
	}

	return nil
}

// resumePaths merges positional, --resume and --dir inputs. Directory entries are sorted
// and filtered to supported formats so ranking input order is stable.
func resumePaths(args, flagged []string, dir string) ([]string, error) {
	paths := make([]string, 0, len(args)+len(flagged))
	paths = append(paths, args...)
	paths = append(paths, flagged...)

	if dir == "" {
		return paths, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé directory: %w", err)
	}
	found := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := ingestion.DetectFormat(entry.Name()); err != nil {
			logger.Debug("ignoring unsupported file", zap.String("file", entry.Name()))
			continue
		}
		found = append(found, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(found)
	return append(paths, found...), nil
}

// progressPrinter reports pipeline progress on stderr
func progressPrinter(cmd *cobra.Command) pipeline.ProgressCallback {
	out := cmd.ErrOrStderr()
	return func(event pipeline.ProgressEvent) {
		_, _ = fmt.Fprintf(out, "[%s] %s\n", event.Step, event.Message)
	}
}

// saveBatch stores the batch, creating the tables on first use
func saveBatch(ctx context.Context, jobHash string, opts pipeline.Options, result *types.BatchResult) error {
	databaseURL := resolveDatabaseURL(rankDatabaseURL)
	if databaseURL == "" {
		return fmt.Errorf("database URL required with --save (use --db-url, database_url in config, or DATABASE_URL)")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := database.SaveBatch(ctx, jobHash, opts.Weights, result); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	return nil
}

// resolveDatabaseURL prefers the flag, then config, then DATABASE_URL
func resolveDatabaseURL(flag string) string {
	if flag != "" {
		return flag
	}
	if appConfig.DatabaseURL != "" {
		return appConfig.DatabaseURL
	}
	return os.Getenv("DATABASE_URL")
}
