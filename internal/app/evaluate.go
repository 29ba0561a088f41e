package app

import (
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

type EvaluateRequest struct {
	Snapshot domain.StateSnapshot
	Surface  domain.Surface
	// ProgramID restricts inline evaluations to nudges about one program.
	ProgramID string
	Now       *time.Time
	// DryRun skips recording shows and celebration state, so repeated
	// evaluations of the same input return the same output.
	DryRun bool
}

func NewEvaluateRequest(snap domain.StateSnapshot) EvaluateRequest {
	return EvaluateRequest{
		Snapshot: snap,
		Surface:  domain.SurfaceDashboard,
	}
}

type SuppressedNudge struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type EngineFailure struct {
	Engine  domain.EngineID `json:"engine"`
	Message string          `json:"message"`
}

type EvaluateResponse struct {
	RunID       string            `json:"runId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Stage       domain.UserStage  `json:"stage"`
	Surface     domain.Surface    `json:"surface"`
	Nudges      []domain.Nudge    `json:"nudges"`
	Suppressed  []SuppressedNudge `json:"suppressed,omitempty"`
	// Queued holds celebrations deferred to the next batch.
	Queued   []domain.Nudge  `json:"queued,omitempty"`
	Failures []EngineFailure `json:"failures,omitempty"`
}

type EvaluateErrorCode string

const (
	ErrInvalidSurface  EvaluateErrorCode = "INVALID_SURFACE"
	ErrInvalidSnapshot EvaluateErrorCode = "INVALID_SNAPSHOT"
)

type EvaluateError struct {
	Code    EvaluateErrorCode
	Message string
	Err     error
}

func (e *EvaluateError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *EvaluateError) Unwrap() error { return e.Err }
