package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/records"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/storage/object"
	"resume-analyzer/internal/shared/telemetry"
)

// Extractor turns an uploaded document into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// Service runs the extract, prompt, complete and split pipeline for one upload.
// Sink and Archive are optional; their failures are logged and never returned.
type Service struct {
	Extractor Extractor
	LLM       llm.Client
	Sink      records.Sink
	Archive   object.Store
	Now       func() time.Time
}

// Extract returns the document text or a StageExtract error.
func (s *Service) Extract(ctx context.Context, data []byte) (string, error) {
	text, err := s.Extractor.ExtractText(ctx, data)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Error("analysis.extract_failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"size_bytes": len(data),
			"error":      err.Error(),
		})
		return "", stageErr(StageExtract, err)
	}
	return text, nil
}

// Analyze extracts the document and analyzes it against the job description.
// When extraction succeeds but the completion fails, the returned Result still
// carries ResumeText.
func (s *Service) Analyze(ctx context.Context, data []byte, jobDescription string) (Result, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Result{}, stageErr(StageValidate, fmt.Errorf("%w: job description is required", ErrInvalidInput))
	}
	text, err := s.Extract(ctx, data)
	if err != nil {
		return Result{}, err
	}
	return s.AnalyzeText(ctx, text, jobDescription)
}

// AnalyzeText runs the completion for already extracted text.
func (s *Service) AnalyzeText(ctx context.Context, resumeText, jobDescription string) (Result, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Result{}, stageErr(StageValidate, fmt.Errorf("%w: job description is required", ErrInvalidInput))
	}
	res := Result{ResumeText: resumeText}
	requestID := requestIDFromContext(ctx)

	prompt := llm.BuildPrompt(resumeText, jobDescription)

	metrics.IncAnalysisStarted()
	start := time.Now()
	raw, err := s.LLM.Complete(ctx, prompt)
	durationMs := time.Since(start).Milliseconds()
	metrics.ObserveAnalysisDurationMs(float64(durationMs))
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"request_id":  requestID,
			"duration_ms": durationMs,
			"error":       err.Error(),
		})
		return res, stageErr(StageAnalyze, err)
	}
	metrics.IncAnalysisCompleted()

	res.ID = uuid.NewString()
	res.Completion = ParseCompletion(raw)

	telemetry.Debug("analysis.raw_completion", map[string]any{
		"request_id": requestID,
		"id":         res.ID,
		"raw":        raw,
	})
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":    requestID,
		"id":            res.ID,
		"duration_ms":   durationMs,
		"has_reasoning": res.Completion.HasReasoning,
		"resume_chars":  len(resumeText),
		"raw_chars":     len(raw),
	})

	s.persist(ctx, res)
	s.archive(ctx, res)
	return res, nil
}

func (s *Service) persist(ctx context.Context, res Result) {
	if s.Sink == nil {
		return
	}
	rec := records.Record{
		ID:          res.ID,
		ResumeParse: res.ResumeText,
		Think:       res.Completion.Think,
		Response:    res.Completion.Response,
		CreatedAt:   s.now(),
	}
	if err := s.Sink.Save(ctx, rec); err != nil {
		metrics.IncPersistFailed()
		telemetry.Error("analysis.persist_failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"id":         res.ID,
			"error":      err.Error(),
		})
	}
}

func (s *Service) archive(ctx context.Context, res Result) {
	if s.Archive == nil {
		return
	}
	key, err := object.Key(res.ID, DownloadFileName)
	if err == nil {
		_, err = s.Archive.Put(ctx, key, "text/plain", strings.NewReader(res.Completion.Raw))
	}
	if err != nil {
		metrics.IncArchiveFailed()
		telemetry.Error("analysis.archive_failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"id":         res.ID,
			"error":      err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
