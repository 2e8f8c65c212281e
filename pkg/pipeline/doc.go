// Package pipeline provisions CI/CD pipelines on Tekton or Argo Workflows.
//
// Setup installs the engine when it is missing and then applies one set of
// documents per pipeline. Failures are returned as *PipelineError so callers
// can tell which pipeline broke; an error for the engine installation itself
// carries an empty pipeline name.
package pipeline
