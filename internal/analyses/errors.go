package analyses

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request problems the caller can fix.
var ErrInvalidInput = errors.New("invalid input")

// Stage names the pipeline step that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageExtract  Stage = "extract"
	StageAnalyze  Stage = "analyze"
)

// StageError wraps a pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is matches another *StageError with the same Stage and no wrapped error,
// so errors.Is(err, &StageError{Stage: StageExtract}) works.
func (e *StageError) Is(target error) bool {
	t, ok := target.(*StageError)
	if !ok {
		return false
	}
	return t.Err == nil && t.Stage == e.Stage
}

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeExtraction = "extraction_failed"
	ErrorCodeAnalysis   = "analysis_failed"
	ErrorCodeInternal   = "internal"
)
