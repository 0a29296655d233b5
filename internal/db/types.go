package db

import (
	"time"

	"github.com/google/uuid"
)

// Batch status values
const (
	BatchStatusRunning   = "running"
	BatchStatusCompleted = "completed"
	BatchStatusFailed    = "failed"
)

// Batch represents a stored scoring batch
type Batch struct {
	ID             uuid.UUID  `json:"id"`
	JobHash        string     `json:"job_hash"`
	CandidateCount int        `json:"candidate_count"`
	SkippedCount   int        `json:"skipped_count"`
	Status         string     `json:"status"`
	ProcessingTime string     `json:"processing_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}
