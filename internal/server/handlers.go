package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Priyagaggar/TalentLens-AI/internal/db"
	"github.com/Priyagaggar/TalentLens-AI/internal/ingestion"
	"github.com/Priyagaggar/TalentLens-AI/internal/pipeline"
	"github.com/Priyagaggar/TalentLens-AI/internal/rendering"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// Multipart field names
const (
	fieldResume      = "resume_file"
	fieldResumes     = "resumes"
	fieldJobText     = "job_description"
	fieldJobFile     = "job_description_file"
	multipartMemory  = 32 << 20
	defaultListLimit = 20
)

// BatchResponse is a ranked batch plus whether it was persisted
type BatchResponse struct {
	*types.BatchResult
	Saved bool `json:"saved"`
}

// BatchDetailResponse is a stored batch with its ranked candidates
type BatchDetailResponse struct {
	*db.Batch
	Candidates []types.RankedCandidate `json:"ranked_candidates"`
}

// handleAnalyze scores one uploaded résumé against a job description
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, err)
		return
	}

	jdText, err := s.jobDescription(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	files := r.MultipartForm.File[fieldResume]
	if len(files) == 0 {
		s.fail(w, &ErrValidation{Field: fieldResume, Message: "a résumé file is required"})
		return
	}
	uploads, err := s.readUploads(files[:1])
	if err != nil {
		s.fail(w, err)
		return
	}

	doc := ingestion.DocumentsFromUploads(uploads, s.maxFileBytes)[0]
	if doc.Err != nil {
		s.fail(w, doc.Err)
		return
	}

	analysis, err := s.scorer.AnalyzeOne(r.Context(), doc, jdText)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleAnalyzeBatch ranks every uploaded résumé against one job description
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	jdText, docs, err := s.batchInput(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.scorer.RankBatch(r.Context(), jdText, docs)
	if err != nil {
		s.fail(w, fmt.Errorf("failed to rank résumés: %w", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{BatchResult: result, Saved: s.save(r, jdText, result)})
}

// handleAnalyzeBatchStream ranks a batch and streams progress as Server-Sent Events,
// ending with a "result" event carrying the BatchResponse
func (s *Server) handleAnalyzeBatchStream(w http.ResponseWriter, r *http.Request) {
	jdText, docs, err := s.batchInput(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.fail(w, err)
		return
	}

	ctx := pipeline.WithProgressContext(r.Context(), func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			s.logger.Debug("failed to write progress event", zap.Error(err))
		}
	})

	result, err := s.scorer.RankBatch(ctx, jdText, docs)
	if err != nil {
		sse.WriteError(fmt.Sprintf("failed to rank résumés: %v", err))
		return
	}

	if err := sse.WriteEvent("result", BatchResponse{BatchResult: result, Saved: s.save(r, jdText, result)}); err != nil {
		s.logger.Warn("failed to write result event", zap.Error(err))
		return
	}
	sse.WriteComplete(result.BatchID, "completed")
}

// handleListBatches lists recent stored batches
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Feature: "batch storage"})
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	batches, err := s.store.ListBatches(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if batches == nil {
		batches = []db.Batch{}
	}
	s.jsonResponse(w, http.StatusOK, batches)
}

// handleGetBatch returns a stored batch with its ranked candidates
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Feature: "batch storage"})
		return
	}
	batchID, err := parseBatchID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	batch, err := s.store.GetBatch(r.Context(), batchID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if batch == nil {
		s.fail(w, &ErrNotFound{Resource: "batch", ID: batchID.String()})
		return
	}

	candidates, err := s.store.ListRankedCandidates(r.Context(), batchID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if candidates == nil {
		candidates = []types.RankedCandidate{}
	}
	s.jsonResponse(w, http.StatusOK, BatchDetailResponse{Batch: batch, Candidates: candidates})
}

// handleBatchReport renders a stored batch as a Markdown comparison of its top candidates.
// ?top=N sets how many are compared; ?format=json returns the report with its visualization data.
func (s *Server) handleBatchReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Feature: "batch storage"})
		return
	}
	batchID, err := parseBatchID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	topN := rendering.DefaultTopN
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(w, &ErrValidation{Field: "top", Message: "must be a positive integer"})
			return
		}
		topN = n
	}

	batch, err := s.store.GetBatch(r.Context(), batchID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if batch == nil {
		s.fail(w, &ErrNotFound{Resource: "batch", ID: batchID.String()})
		return
	}
	candidates, err := s.store.ListRankedCandidates(r.Context(), batchID)
	if err != nil {
		s.fail(w, err)
		return
	}

	report, err := rendering.RenderComparison(candidates, rendering.ReportOptions{TopN: topN})
	if err != nil {
		s.fail(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		s.jsonResponse(w, http.StatusOK, report)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, report.Markdown)
}

// handleDeleteBatch removes a stored batch and its candidates
func (s *Server) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Feature: "batch storage"})
		return
	}
	batchID, err := parseBatchID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	batch, err := s.store.GetBatch(r.Context(), batchID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if batch == nil {
		s.fail(w, &ErrNotFound{Resource: "batch", ID: batchID.String()})
		return
	}

	if err := s.store.DeleteBatch(r.Context(), batchID); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseForm bounds the request body and parses it as multipart
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		// the multipart reader does not always wrap the body's error
		if strings.Contains(err.Error(), "request body too large") {
			return &http.MaxBytesError{Limit: s.maxRequestBytes}
		}
		return &ErrValidation{Field: "body", Message: "expected multipart/form-data: " + err.Error()}
	}
	return nil
}

// batchInput parses a batch request into the job text and one Document per uploaded résumé
func (s *Server) batchInput(w http.ResponseWriter, r *http.Request) (string, []types.Document, error) {
	if err := s.parseForm(w, r); err != nil {
		return "", nil, err
	}

	jdText, err := s.jobDescription(r)
	if err != nil {
		return "", nil, err
	}

	files := r.MultipartForm.File[fieldResumes]
	if len(files) == 0 {
		return "", nil, &ErrValidation{Field: fieldResumes, Message: "at least one résumé file is required"}
	}
	uploads, err := s.readUploads(files)
	if err != nil {
		return "", nil, err
	}
	return jdText, ingestion.DocumentsFromUploads(uploads, s.maxFileBytes), nil
}

// jobDescription takes the job text from the text field, or else extracts it from the uploaded file
func (s *Server) jobDescription(r *http.Request) (string, error) {
	if text := r.FormValue(fieldJobText); text != "" {
		return ingestion.CleanText(text), nil
	}

	files := r.MultipartForm.File[fieldJobFile]
	if len(files) == 0 {
		return "", &ErrValidation{Field: fieldJobText, Message: "a job description text or file is required"}
	}
	uploads, err := s.readUploads(files[:1])
	if err != nil {
		return "", err
	}
	if int64(len(uploads[0].Data)) > s.maxFileBytes {
		return "", &ingestion.ExtractionError{Source: uploads[0].Name, Cause: ingestion.ErrTooLarge}
	}
	return ingestion.ExtractText(uploads[0].Name, uploads[0].Data)
}

// readUploads reads form files, stopping one byte past the per-file limit so
// oversized files are detected without being read in full
func (s *Server) readUploads(files []*multipart.FileHeader) ([]ingestion.Upload, error) {
	uploads := make([]ingestion.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, s.maxFileBytes+1))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, ingestion.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

// save persists a ranked batch when a store is configured. Failures are logged, not returned,
// since the ranking itself succeeded.
func (s *Server) save(r *http.Request, jdText string, result *types.BatchResult) bool {
	if s.store == nil {
		return false
	}
	weights := s.scorer.Options().Weights
	if err := s.store.SaveBatch(r.Context(), ingestion.ContentHash(jdText), weights, result); err != nil {
		s.logger.Error("failed to save batch", zap.String("batch_id", result.BatchID), zap.Error(err))
		return false
	}
	return true
}

func parseBatchID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid batch id " + strconv.Quote(raw)}
	}
	return id, nil
}
