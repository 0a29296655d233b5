package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// SaveBatch stores a finished batch and all of its ranked candidates in one transaction.
// jobHash identifies the job description text; weights are stored as given.
func (db *DB) SaveBatch(ctx context.Context, jobHash string, weights any, result *types.BatchResult) error {
	batchID, err := uuid.Parse(result.BatchID)
	if err != nil {
		return fmt.Errorf("invalid batch id %q: %w", result.BatchID, err)
	}

	skillsJSON, err := json.Marshal(result.JobSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal job skills: %w", err)
	}
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO scoring_batches (id, job_hash, job_skills, weights, candidate_count, skipped_count, status, processing_time, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
		batchID, jobHash, skillsJSON, weightsJSON, len(result.Ranked), len(result.Skipped), BatchStatusCompleted, result.ProcessingTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range result.Ranked {
		args, err := candidateArgs(batchID, c)
		if err != nil {
			return err
		}
		batch.Queue(insertCandidateSQL, args...)
	}

	results := tx.SendBatch(ctx, batch)
	for _, c := range result.Ranked {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to save candidate %s: %w", c.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to save candidates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

const insertCandidateSQL = `INSERT INTO ranked_candidates
	(batch_id, candidate_id, name, rank, final_score, similarity_score, skill_match, years_experience,
	 matched_skills, missing_skills, scoring_breakdown, explanation)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// candidateArgs flattens a ranked candidate into insertCandidateSQL arguments
func candidateArgs(batchID uuid.UUID, c types.RankedCandidate) ([]any, error) {
	matched, err := json.Marshal(nonNil(c.MatchedSkills))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal matched skills for %s: %w", c.ID, err)
	}
	missing, err := json.Marshal(nonNil(c.MissingSkills))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal missing skills for %s: %w", c.ID, err)
	}
	return []any{
		batchID, c.ID, c.Name, c.Rank, c.FinalScore,
		c.SimilarityScore, c.SkillMatchPercentage, c.YearsOfExperience,
		matched, missing, c.ScoringBreakdown, c.Explanation,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GetBatch retrieves a batch by ID; it returns nil when none exists
func (db *DB) GetBatch(ctx context.Context, batchID uuid.UUID) (*Batch, error) {
	var b Batch
	var processingTime *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_hash, candidate_count, skipped_count, status, processing_time, created_at, completed_at
		 FROM scoring_batches WHERE id = $1`,
		batchID,
	).Scan(&b.ID, &b.JobHash, &b.CandidateCount, &b.SkippedCount, &b.Status, &processingTime, &b.CreatedAt, &b.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	if processingTime != nil {
		b.ProcessingTime = *processingTime
	}
	return &b, nil
}

// ListBatches retrieves the most recent batches
func (db *DB) ListBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_hash, candidate_count, skipped_count, status, COALESCE(processing_time, ''), created_at, completed_at
		 FROM scoring_batches ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.JobHash, &b.CandidateCount, &b.SkippedCount, &b.Status, &b.ProcessingTime, &b.CreatedAt, &b.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// ListRankedCandidates returns a batch's candidates in rank order
func (db *DB) ListRankedCandidates(ctx context.Context, batchID uuid.UUID) ([]types.RankedCandidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id, name, rank, final_score, similarity_score, skill_match, years_experience,
		        matched_skills, missing_skills, scoring_breakdown, explanation
		 FROM ranked_candidates WHERE batch_id = $1 ORDER BY rank ASC`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []types.RankedCandidate
	for rows.Next() {
		var c types.RankedCandidate
		var matched, missing []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Rank, &c.FinalScore, &c.SimilarityScore, &c.SkillMatchPercentage,
			&c.YearsOfExperience, &matched, &missing, &c.ScoringBreakdown, &c.Explanation); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if err := json.Unmarshal(matched, &c.MatchedSkills); err != nil {
			return nil, fmt.Errorf("failed to decode matched skills for %s: %w", c.ID, err)
		}
		if err := json.Unmarshal(missing, &c.MissingSkills); err != nil {
			return nil, fmt.Errorf("failed to decode missing skills for %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteBatch deletes a batch and its candidates (via cascade)
func (db *DB) DeleteBatch(ctx context.Context, batchID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM scoring_batches WHERE id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("batch not found: %s", batchID)
	}
	return nil
}
