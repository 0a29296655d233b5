package pipeline

import "context"

// Progress steps
const (
	StepJobPrepared    = "job_prepared"
	StepDocumentScored = "document_scored"
	StepBatchRanked    = "batch_ranked"
)

// ProgressEvent represents a progress update during a scoring run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	BatchID string `json:"batch_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
// Document events arrive from worker goroutines; the callback must be safe for concurrent use.
type ProgressCallback func(event ProgressEvent)

type progressKey struct{}

// WithProgressContext attaches a callback that receives the progress of runs using ctx,
// in addition to the Scorer's own callback.
func WithProgressContext(ctx context.Context, fn ProgressCallback) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// emitProgress calls the configured and context callbacks
func (s *Scorer) emitProgress(ctx context.Context, step, batchID, message string, content any) {
	event := ProgressEvent{
		Step:    step,
		Message: message,
		BatchID: batchID,
		Content: content,
	}
	if s.onProgress != nil {
		s.onProgress(event)
	}
	if fn, ok := ctx.Value(progressKey{}).(ProgressCallback); ok && fn != nil {
		fn(event)
	}
}
