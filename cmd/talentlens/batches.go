package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Priyagaggar/TalentLens-AI/internal/db"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "Inspect ranking batches saved with rank --save",
}

var batchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent saved batches",
	Args:  cobra.NoArgs,
	RunE:  runBatchesList,
}

var batchesShowCmd = &cobra.Command{
	Use:   "show <batch-id>",
	Short: "Show a saved batch and its ranked candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchesShow,
}

var batchesDeleteCmd = &cobra.Command{
	Use:   "delete <batch-id>",
	Short: "Delete a saved batch and its candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchesDelete,
}

var (
	batchesDatabaseURL string
	batchesLimit       int
)

func init() {
	batchesCmd.PersistentFlags().StringVar(&batchesDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to config, then DATABASE_URL env var)")
	batchesListCmd.Flags().IntVar(&batchesLimit, "limit", 20, "Maximum number of batches to list")

	batchesCmd.AddCommand(batchesListCmd, batchesShowCmd, batchesDeleteCmd)
	rootCmd.AddCommand(batchesCmd)
}

// batchDetail is a stored batch with its candidates in rank order
type batchDetail struct {
	*db.Batch
	Candidates []types.RankedCandidate `json:"ranked_candidates"`
}

func connectBatches(ctx context.Context) (*db.DB, error) {
	databaseURL := resolveDatabaseURL(batchesDatabaseURL)
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL required (use --db-url, database_url in config, or DATABASE_URL)")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

func runBatchesList(cmd *cobra.Command, _ []string) error {
	if batchesLimit < 1 {
		return fmt.Errorf("limit must be positive, got %d", batchesLimit)
	}

	ctx := context.Background()
	database, err := connectBatches(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	batches, err := database.ListBatches(ctx, batchesLimit)
	if err != nil {
		return err
	}
	_, err = writeJSON(cmd, "", batches)
	return err
}

func runBatchesShow(cmd *cobra.Command, args []string) error {
	batchID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid batch id: %w", err)
	}

	ctx := context.Background()
	database, err := connectBatches(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	batch, err := database.GetBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return fmt.Errorf("batch not found: %s", batchID)
	}

	candidates, err := database.ListRankedCandidates(ctx, batchID)
	if err != nil {
		return err
	}

	_, err = writeJSON(cmd, "", batchDetail{Batch: batch, Candidates: candidates})
	return err
}

func runBatchesDelete(cmd *cobra.Command, args []string) error {
	batchID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid batch id: %w", err)
	}

	ctx := context.Background()
	database, err := connectBatches(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteBatch(ctx, batchID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted batch %s\n", batchID)
	return nil
}
