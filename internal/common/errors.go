package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for the operation boundary. Handlers map these onto
// HTTP status codes; nothing below the handler layer touches net/http.
var (
	ErrNotFound         = errors.New("item not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")

	// ErrAlreadyProcessing rejects a video trigger while an attempt is
	// in flight. Concurrent triggers are rejected, not queued or raced.
	ErrAlreadyProcessing = errors.New("video generation already in progress")
)

// NewValidationError wraps ErrValidation with a field-level reason
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// StageError marks a fatal failure inside the video generation pipeline.
// Stage names the step that broke (script, audio, video) so the caller
// can show where the attempt died.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps an underlying stage failure
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// IsStageError extracts a StageError from an error chain
func IsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
