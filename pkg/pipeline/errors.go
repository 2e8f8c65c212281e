package pipeline

import "fmt"

// PipelineError attributes a provisioning failure to a pipeline. Pipeline is
// empty when the engine installation failed before any pipeline was applied.
type PipelineError struct {
	Pipeline string
	Err      error
}

func (e *PipelineError) Error() string {
	if e.Pipeline == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("pipeline %s: %v", e.Pipeline, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
