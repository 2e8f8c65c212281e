package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
	"github.com/zerg-io/dependency-operator/pkg/util/metadata"
)

// Default engine release manifests.
const (
	DefaultTektonReleaseURL        = "https://storage.googleapis.com/tekton-releases/pipeline/latest/release.yaml"
	DefaultTektonDashboardURL      = "https://storage.googleapis.com/tekton-releases/dashboard/latest/release.yaml"
	DefaultArgoWorkflowsInstallURL = "https://github.com/argoproj/argo-workflows/releases/latest/download/install.yaml"
)

const defaultWorkingDir = "/workspace"

// Options configures a Provisioner.
type Options struct {
	TektonReleaseURL        string
	TektonDashboardURL      string
	ArgoWorkflowsInstallURL string
}

func (o Options) withDefaults() Options {
	if o.TektonReleaseURL == "" {
		o.TektonReleaseURL = DefaultTektonReleaseURL
	}
	if o.TektonDashboardURL == "" {
		o.TektonDashboardURL = DefaultTektonDashboardURL
	}
	if o.ArgoWorkflowsInstallURL == "" {
		o.ArgoWorkflowsInstallURL = DefaultArgoWorkflowsInstallURL
	}
	return o
}

// engine is one CI/CD backend.
type engine interface {
	install(ctx context.Context) error
	documents(p *zergv1.Pipeline, namespace string) (string, error)
}

// Provisioner sets up the pipelines of a CICDConfig.
type Provisioner struct {
	tools *toolrunner.Tools
	opts  Options
}

// NewProvisioner returns a Provisioner running its commands through tools.
func NewProvisioner(tools *toolrunner.Tools, opts Options) *Provisioner {
	return &Provisioner{tools: tools, opts: opts.withDefaults()}
}

// Setup validates every pipeline, installs the engine if needed and applies
// the pipelines in order. It stops at the first failing pipeline.
func (p *Provisioner) Setup(ctx context.Context, cfg *zergv1.CICDConfig, namespace string) error {
	var eng engine
	switch cfg.Provider {
	case zergv1.CICDProviderTekton:
		eng = &tekton{tools: p.tools, opts: p.opts}
	case zergv1.CICDProviderArgoWorkflows:
		eng = &argoWorkflows{tools: p.tools, opts: p.opts}
	default:
		return &PipelineError{Err: fmt.Errorf("unsupported cicd provider %q", cfg.Provider)}
	}

	for i := range cfg.Pipelines {
		if err := Validate(&cfg.Pipelines[i]); err != nil {
			return &PipelineError{Pipeline: cfg.Pipelines[i].Name, Err: err}
		}
	}

	if err := eng.install(ctx); err != nil {
		return &PipelineError{Err: err}
	}

	for i := range cfg.Pipelines {
		pl := &cfg.Pipelines[i]
		doc, err := eng.documents(pl, namespace)
		if err != nil {
			return &PipelineError{Pipeline: pl.Name, Err: err}
		}
		if err := p.tools.ApplyDocument(ctx, doc); err != nil {
			return &PipelineError{Pipeline: pl.Name, Err: err}
		}
	}
	return nil
}

// Validate checks a pipeline before anything is applied. Schedules use the
// standard five-field cron syntax.
func Validate(p *zergv1.Pipeline) error {
	if p.Name == "" {
		return errors.New("pipeline name is required")
	}
	if len(p.Steps) == 0 {
		return errors.New("at least one step is required")
	}
	for i, s := range p.Steps {
		if s.Image == "" {
			return fmt.Errorf("step %d (%s): image is required", i, s.Name)
		}
	}
	if p.Trigger.Schedule != "" {
		if _, err := cron.ParseStandard(p.Trigger.Schedule); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", p.Trigger.Schedule, err)
		}
	}
	return nil
}

// envVar is a rendered container environment entry.
type envVar struct {
	Name  string
	Value string
}

// sortedEnv returns env ordered by name so rendering is stable.
func sortedEnv(env map[string]string) []envVar {
	out := make([]envVar, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		out = append(out, envVar{Name: k, Value: env[k]})
	}
	return out
}

func workingDir(s *zergv1.PipelineStep) string {
	if s.WorkingDir == "" {
		return defaultWorkingDir
	}
	return s.WorkingDir
}

// labels are stamped on every resource generated for p.
func labels(p *zergv1.Pipeline) map[string]string {
	return metadata.MergeLabels(
		metadata.BuildStandardLabels(p.Name, metadata.ComponentPipeline),
		map[string]string{metadata.LabelPipeline: p.Name},
	)
}

func script(commands []string) string {
	return "#!/bin/sh\n" + strings.Join(commands, "\n") + "\n"
}
