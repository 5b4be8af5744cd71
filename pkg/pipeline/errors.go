package pipeline

import "fmt"

// Stage identifies how far an ingestion run progressed before it stopped.
type Stage string

const (
	StageStart         Stage = "start"
	StageTextExtracted Stage = "text_extracted"
	StageHashed        Stage = "hashed"
	StageRebuilding    Stage = "rebuilding"
)

// StageError wraps a failure with the stage reached and the file being
// processed, so a failed load can be retried with full context.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v (stage %s, file %s)", e.Err, e.Stage, e.Path)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func failAt(stage Stage, path string, err error) error {
	return &StageError{Stage: stage, Path: path, Err: err}
}
