package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Priyagaggar/TalentLens-AI/internal/cache"
	"github.com/Priyagaggar/TalentLens-AI/internal/dictionary"
	"github.com/Priyagaggar/TalentLens-AI/internal/experience"
	"github.com/Priyagaggar/TalentLens-AI/internal/logging"
	"github.com/Priyagaggar/TalentLens-AI/internal/matching"
	"github.com/Priyagaggar/TalentLens-AI/internal/metrics"
	"github.com/Priyagaggar/TalentLens-AI/internal/ranking"
	"github.com/Priyagaggar/TalentLens-AI/internal/similarity"
	"github.com/Priyagaggar/TalentLens-AI/internal/skills"
	"github.com/Priyagaggar/TalentLens-AI/internal/textproc"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// Scorer runs the scoring components with one set of options.
// It holds no per-batch state and is safe for concurrent use.
type Scorer struct {
	opts        Options
	fingerprint string

	extractor *skills.Extractor
	estimator *experience.Estimator
	matcher   *matching.Matcher
	ranker    *ranking.Ranker

	now        func() time.Time
	cache      cache.Cache
	metrics    *metrics.Metrics
	logger     *zap.Logger
	onProgress ProgressCallback
}

// Option customizes a Scorer
type Option func(*Scorer)

// WithLogger sets the logger; nil discards output
func WithLogger(l *zap.Logger) Option {
	return func(s *Scorer) { s.logger = logging.OrNop(l) }
}

// WithCache enables caching of per-document extraction results
func WithCache(c cache.Cache) Option {
	return func(s *Scorer) { s.cache = c }
}

// WithMetrics records document, batch and cache metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scorer) { s.metrics = m }
}

// WithClock fixes the time used to resolve "Present" in date ranges
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressCallback) Option {
	return func(s *Scorer) { s.onProgress = fn }
}

// NewScorer wires the components around dict. Zero-valued options take their defaults.
func NewScorer(dict *dictionary.Dictionary, opts Options, options ...Option) (*Scorer, error) {
	if dict == nil {
		return nil, fmt.Errorf("skill dictionary is required")
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	s := &Scorer{
		opts:        opts,
		fingerprint: dict.Fingerprint(),
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, o := range options {
		o(s)
	}

	s.extractor = skills.NewExtractor(dict, s.logger.Named("skills"))
	s.estimator = experience.NewEstimator(s.now, s.logger.Named("experience"))
	s.matcher = matching.NewMatcher(opts.GapThreshold)
	s.ranker = ranking.NewRanker(opts.Weights, opts.ExperienceCap)
	return s, nil
}

// Options returns the effective options
func (s *Scorer) Options() Options {
	return s.opts
}

// Job is a job description prepared for scoring: its skills are extracted and the
// similarity model is fitted once, then shared read-only by every résumé.
type Job struct {
	Skills    types.SkillSet
	skillList []string
	model     *similarity.Model
}

// PrepareJob extracts the job's skills and fits the similarity model on its text
func (s *Scorer) PrepareJob(ctx context.Context, jdText string) *Job {
	if textproc.IsBlank(jdText) {
		s.logger.Warn("job description is blank; every résumé will score zero on similarity and skills")
	}

	jobSkills := s.extractSkills(ctx, jdText)
	return &Job{
		Skills:    jobSkills,
		skillList: jobSkills.Flatten(),
		model:     similarity.Fit(jdText, s.opts.MaxFeatures),
	}
}

// Analyze computes every signal for one document against a prepared job.
// Failed and blank documents are reported through Status rather than an error.
func (s *Scorer) Analyze(ctx context.Context, job *Job, doc types.Document) types.Analysis {
	a := types.Analysis{
		ID:              doc.ID,
		ExtractedSkills: types.SkillSet{},
	}

	if doc.Err != nil {
		a.Status = types.StatusFailed
		a.Error = doc.Err.Error()
		a.Name = textproc.CandidateName(types.ContactInfo{}, doc.ID)
		a.SkillMatch = s.matcher.Match(nil, job.skillList)
		s.metrics.ObserveDocument(a.Status)
		return a
	}

	a.Contact = textproc.Contact(doc.Text)
	a.Name = textproc.CandidateName(a.Contact, doc.ID)

	if textproc.Clean(doc.Text) == "" {
		a.Status = types.StatusEmpty
		a.SkillMatch = s.matcher.Match(nil, job.skillList)
		s.metrics.ObserveDocument(a.Status)
		return a
	}

	a.Status = types.StatusOK
	a.ExtractedSkills = s.extractSkills(ctx, doc.Text)
	a.Experience = s.estimateExperience(ctx, doc.Text)
	a.SimilarityScore = job.model.Score(doc.Text)
	a.SkillMatch = s.matcher.Match(a.ExtractedSkills.Flatten(), job.skillList)

	s.metrics.ObserveDocument(a.Status)
	return a
}

// AnalyzeOne scores a single résumé against a job description, including its
// weighted score and explanation as if it were ranked alone
func (s *Scorer) AnalyzeOne(ctx context.Context, doc types.Document, jdText string) (*types.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	job := s.PrepareJob(ctx, jdText)
	a := s.Analyze(ctx, job, doc)
	if a.Status == types.StatusFailed {
		return &a, nil
	}

	ranked := s.ranker.Rank([]types.CandidateRecord{a.Record()})
	a.FinalScore = ranked[0].FinalScore
	a.ScoringBreakdown = ranked[0].ScoringBreakdown
	a.Explanation = ranked[0].Explanation
	return &a, nil
}

// RankBatch scores every document against one job description and ranks them.
// Documents are analyzed concurrently, bounded by Options.Workers. Failed documents are
// returned in Skipped and excluded from ranking; one bad document never aborts the batch.
// A cancelled context abandons the batch and returns ctx.Err().
func (s *Scorer) RankBatch(ctx context.Context, jdText string, docs []types.Document) (*types.BatchResult, error) {
	start := time.Now()
	batchID := uuid.NewString()
	log := s.logger.With(zap.String("batch_id", batchID))

	log.Info("batch started", zap.Int("documents", len(docs)), zap.Int("workers", s.opts.Workers))

	job := s.PrepareJob(ctx, jdText)
	s.emitProgress(ctx, StepJobPrepared, batchID,
		fmt.Sprintf("Job description prepared with %d skills", job.Skills.Count()), job.Skills)

	analyses := make([]types.Analysis, len(docs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			analyses[i] = s.Analyze(gCtx, job, doc)
			s.emitProgress(ctx, StepDocumentScored, batchID,
				fmt.Sprintf("Analyzed %s (%s)", doc.ID, analyses[i].Status), nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("batch abandoned", zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]types.CandidateRecord, 0, len(analyses))
	var skipped []types.Analysis
	for _, a := range analyses {
		switch a.Status {
		case types.StatusFailed:
			log.Warn("document skipped", zap.String("document", a.ID), zap.String("error", a.Error))
			skipped = append(skipped, a)
		case types.StatusEmpty:
			log.Warn("document has no usable text", zap.String("document", a.ID))
			records = append(records, a.Record())
		default:
			records = append(records, a.Record())
		}
	}

	elapsed := time.Since(start)
	result := &types.BatchResult{
		BatchID:        batchID,
		JobSkills:      job.Skills,
		Ranked:         s.ranker.Rank(records),
		Skipped:        skipped,
		ProcessingTime: elapsed.Round(time.Millisecond).String(),
	}

	s.metrics.ObserveBatch(len(docs), elapsed)
	log.Info("batch ranked",
		zap.Int("ranked", len(result.Ranked)),
		zap.Int("skipped", len(skipped)),
		zap.Duration("elapsed", elapsed))
	s.emitProgress(ctx, StepBatchRanked, batchID,
		fmt.Sprintf("Ranked %d candidates, skipped %d", len(result.Ranked), len(skipped)), nil)

	return result, nil
}

// extractSkills runs the extractor on cleaned text, consulting the cache first
func (s *Scorer) extractSkills(ctx context.Context, text string) types.SkillSet {
	cleaned := textproc.Clean(text)
	if s.cache == nil {
		return s.extractor.Extract(cleaned, s.opts.ExtractionThreshold)
	}

	key := cache.Key("skills", cleaned, s.fingerprint, strconv.Itoa(s.opts.ExtractionThreshold))
	var cached types.SkillSet
	if s.lookup(ctx, "skills", key, &cached) {
		return cached
	}

	found := s.extractor.Extract(cleaned, s.opts.ExtractionThreshold)
	s.store(ctx, key, found)
	return found
}

// estimateExperience runs the estimator on raw text; ranges ending "Present" depend on
// the current month, so it is part of the cache key
func (s *Scorer) estimateExperience(ctx context.Context, text string) types.ExperienceBreakdown {
	if s.cache == nil {
		return s.estimator.Breakdown(text)
	}

	key := cache.Key("experience", text, s.now().Format("2006-01"))
	var cached types.ExperienceBreakdown
	if s.lookup(ctx, "experience", key, &cached) {
		return cached
	}

	found := s.estimator.Breakdown(text)
	s.store(ctx, key, found)
	return found
}

// lookup reads key into v. Cache failures are logged and treated as misses.
func (s *Scorer) lookup(ctx context.Context, signal, key string, v any) bool {
	ok, err := cache.GetJSON(ctx, s.cache, key, v)
	switch {
	case err != nil:
		s.logger.Warn("cache lookup failed", zap.String("signal", signal), zap.Error(err))
		s.metrics.ObserveCache(signal, metrics.CacheError)
		return false
	case ok:
		s.metrics.ObserveCache(signal, metrics.CacheHit)
		return true
	default:
		s.metrics.ObserveCache(signal, metrics.CacheMiss)
		return false
	}
}

// store writes v under key, logging failures
func (s *Scorer) store(ctx context.Context, key string, v any) {
	if err := cache.SetJSON(ctx, s.cache, key, v); err != nil {
		s.logger.Warn("cache store failed", zap.Error(err))
	}
}
