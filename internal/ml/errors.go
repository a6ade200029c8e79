package ml

import "fmt"

// ModelNotReadyError means the classifier artifacts are missing on disk.
// Operator-fixable; requests are never retried against a not-ready model.
type ModelNotReadyError struct {
	Message string
}

func (e *ModelNotReadyError) Error() string {
	if e.Message == "" {
		return "ML model not ready"
	}
	return e.Message
}

// PredictionProcessError means the classifier process exited non-zero or
// could not be started at all. Stderr carries whatever the process wrote.
type PredictionProcessError struct {
	Stderr string
	Err    error
}

func (e *PredictionProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ML prediction failed: %s", e.Stderr)
	}
	return fmt.Sprintf("ML prediction failed: %v", e.Err)
}

func (e *PredictionProcessError) Unwrap() error {
	return e.Err
}

// PredictionParseError means the process exited cleanly but its stdout was
// not a single valid JSON document. The raw output is kept for diagnosis;
// partial data is never returned as a result.
type PredictionParseError struct {
	Output string
	Err    error
}

func (e *PredictionParseError) Error() string {
	return fmt.Sprintf("failed to parse prediction result: %v", e.Err)
}

func (e *PredictionParseError) Unwrap() error {
	return e.Err
}
