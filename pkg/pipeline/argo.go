package pipeline

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/manifest"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// ArgoNamespace hosts the Argo Workflows installation.
const ArgoNamespace = "argo"

var workflowTemplate = manifest.MustParse("argo-workflow-template", `apiVersion: argoproj.io/v1alpha1
kind: WorkflowTemplate
metadata:
  name: {{ .Name }}
  namespace: {{ .Namespace }}
  labels: {{ .Labels | toJson }}
spec:
  entrypoint: main
  templates:
  - name: main
    dag:
      tasks:
{{- range .Steps }}
      - name: {{ .Task }}
        template: {{ .Template }}
{{- with .DependsOn }}
        dependencies:
        - {{ . }}
{{- end }}
{{- end }}
{{- range .Steps }}
  - name: {{ .Template }}
    container:
      image: {{ .Image | toJson }}
      workingDir: {{ .WorkingDir | toJson }}
      command:
      - sh
      - -c
      args:
      - {{ .Script | toJson }}
{{- with .Env }}
      env:
{{- range . }}
      - name: {{ .Name | toJson }}
        value: {{ .Value | toJson }}
{{- end }}
{{- end }}
{{- end }}
`)

var cronWorkflowTemplate = manifest.MustParse("argo-cron-workflow", `apiVersion: argoproj.io/v1alpha1
kind: CronWorkflow
metadata:
  name: {{ .Name }}-cron
  namespace: {{ .Namespace }}
  labels: {{ .Labels | toJson }}
spec:
  schedule: {{ .Schedule | toJson }}
  workflowSpec:
    entrypoint: main
    workflowTemplateRef:
      name: {{ .Name }}
`)

type argoStep struct {
	Task       string
	Template   string
	DependsOn  string
	Image      string
	WorkingDir string
	Script     string
	Env        []envVar
}

type argoWorkflows struct {
	tools *toolrunner.Tools
	opts  Options
}

// install creates the argo namespace and applies the release manifest into
// it. A namespace that already exists is reused.
func (a *argoWorkflows) install(ctx context.Context) error {
	created, err := a.tools.EnsureNamespace(ctx, ArgoNamespace)
	if err != nil {
		return fmt.Errorf("failed to prepare argo namespace: %w", err)
	}
	if created {
		log.FromContext(ctx).Info("Created namespace for Argo Workflows", "namespace", ArgoNamespace)
	}
	if err := a.tools.Kubectl(ctx, "apply", "-n", ArgoNamespace, "-f", a.opts.ArgoWorkflowsInstallURL); err != nil {
		return fmt.Errorf("argo workflows install failed: %w", err)
	}
	return nil
}

func (a *argoWorkflows) documents(p *zergv1.Pipeline, namespace string) (string, error) {
	return ArgoDocuments(p, namespace)
}

// ArgoDocuments renders the WorkflowTemplate of p and, for scheduled
// pipelines, the CronWorkflow running it.
func ArgoDocuments(p *zergv1.Pipeline, namespace string) (string, error) {
	steps := make([]argoStep, 0, len(p.Steps))
	for i := range p.Steps {
		s := &p.Steps[i]
		step := argoStep{
			Task:       fmt.Sprintf("step-%d", i),
			Template:   fmt.Sprintf("step-%d-template", i),
			Image:      s.Image,
			WorkingDir: workingDir(s),
			Script:     script(s.Commands),
			Env:        sortedEnv(s.Env),
		}
		if i > 0 {
			step.DependsOn = steps[i-1].Task
		}
		steps = append(steps, step)
	}

	doc, err := workflowTemplate.Render(map[string]any{
		"Name":      p.Name,
		"Namespace": namespace,
		"Labels":    labels(p),
		"Steps":     steps,
	})
	if err != nil {
		return "", err
	}
	if p.Trigger.Schedule == "" {
		return doc, nil
	}

	cronDoc, err := cronWorkflowTemplate.Render(map[string]any{
		"Name":      p.Name,
		"Namespace": namespace,
		"Labels":    labels(p),
		"Schedule":  p.Trigger.Schedule,
	})
	if err != nil {
		return "", err
	}
	return manifest.Join(doc, cronDoc), nil
}
