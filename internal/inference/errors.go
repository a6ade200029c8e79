package inference

import "fmt"

// ProviderError reports a failed call against a single provider/model pair.
// The orchestrator catches it and moves on to the next provider; it is
// never surfaced to an end user directly.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("inference call failed (model %s): %v", e.Model, e.Err)
	}
	return fmt.Sprintf("provider %s failed (model %s): %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
