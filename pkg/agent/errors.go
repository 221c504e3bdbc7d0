package agent

import "fmt"

// Stage identifies where in the pipeline a failure happened. Each stage has a
// fixed recovery policy, so callers can decide surface-vs-degrade by stage
// instead of by inspecting error strings.
type Stage string

const (
	StageConfig   Stage = "config"   // missing provider key: fail fast, user visible
	StageClassify Stage = "classify" // router failure: silent fallback to default agent
	StageRetrieve Stage = "retrieve" // context lookup failure: degrade to sentinel context
	StageGenerate Stage = "generate" // completion failure: fatal to the turn
	StageExtract  Stage = "extract"  // side-effect parse failure: degrade to plain response
	StagePersist  Stage = "persist"  // side-effect insert failure: degrade to plain response
)

// StageError wraps an underlying failure with its pipeline stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("agent pipeline %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
