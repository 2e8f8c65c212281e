package pipeline

import (
	"context"
	"fmt"
	"strings"

	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/manifest"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

const (
	// TektonNamespace is created by the Tekton release manifest.
	TektonNamespace = "tekton-pipelines"
	// SharedWorkspace is the workspace every task of a pipeline mounts.
	SharedWorkspace = "shared-data"

	triggersServiceAccount = "tekton-triggers-sa"
)

var tektonPipelineTemplate = manifest.MustParse("tekton-pipeline", `apiVersion: tekton.dev/v1
kind: Pipeline
metadata:
  name: {{ .Name }}
  namespace: {{ .Namespace }}
  labels: {{ .Labels | toJson }}
spec:
  workspaces:
  - name: {{ .Workspace }}
  tasks:
{{- range .Tasks }}
  - name: {{ .Name }}
{{- with .RunAfter }}
    runAfter:
    - {{ . }}
{{- end }}
    workspaces:
    - name: source
      workspace: {{ $.Workspace }}
    taskSpec:
      workspaces:
      - name: source
      steps:
      - name: {{ .Step | toJson }}
        image: {{ .Image | toJson }}
        workingDir: {{ .WorkingDir | toJson }}
        script: {{ .Script | toJson }}
{{- with .Env }}
        env:
{{- range . }}
        - name: {{ .Name | toJson }}
          value: {{ .Value | toJson }}
{{- end }}
{{- end }}
{{- end }}
`)

var tektonTriggerTemplate = manifest.MustParse("tekton-triggers", `apiVersion: triggers.tekton.dev/v1beta1
kind: TriggerBinding
metadata:
  name: {{ .Name }}-binding
  namespace: {{ .Namespace }}
  labels: {{ .Labels | toJson }}
spec:
  params:
  - name: git-repo-url
    value: $(body.repository.url)
  - name: git-revision
    value: $(body.head_commit.id)
---
apiVersion: triggers.tekton.dev/v1beta1
kind: TriggerTemplate
metadata:
  name: {{ .Name }}-template
  namespace: {{ .Namespace }}
  labels: {{ .Labels | toJson }}
spec:
  params:
  - name: git-repo-url
  - name: git-revision
  resourcetemplates:
  - apiVersion: tekton.dev/v1
    kind: PipelineRun
    metadata:
      generateName: {{ .Name }}-run-
      labels: {{ .Labels | toJson }}
    spec:
      pipelineRef:
        name: {{ .Name }}
      workspaces:
      - name: {{ .Workspace }}
        volumeClaimTemplate:
          spec:
            accessModes:
            - ReadWriteOnce
            resources:
              requests:
                storage: 1Gi
---
apiVersion: triggers.tekton.dev/v1beta1
kind: EventListener
metadata:
  name: {{ .Name }}-listener
  namespace: {{ .Namespace }}
  labels: {{ .Labels | toJson }}
spec:
  serviceAccountName: {{ .ServiceAccount }}
  triggers:
  - name: {{ .Name }}-trigger
    interceptors:
    - ref:
        name: github
      params:
      - name: eventTypes
        value: {{ .Events | toJson }}
{{- with .BranchFilter }}
    - ref:
        name: cel
      params:
      - name: filter
        value: {{ . | toJson }}
{{- end }}
    bindings:
    - ref: {{ .Name }}-binding
    template:
      ref: {{ .Name }}-template
`)

type tektonTask struct {
	Name       string
	RunAfter   string
	Step       string
	Image      string
	WorkingDir string
	Script     string
	Env        []envVar
}

type tekton struct {
	tools *toolrunner.Tools
	opts  Options
}

// install applies the Tekton release unless its namespace exists. The
// dashboard is optional and its failure is only logged.
func (t *tekton) install(ctx context.Context) error {
	logger := log.FromContext(ctx)

	exists, err := t.tools.NamespaceExists(ctx, TektonNamespace)
	if err != nil {
		return fmt.Errorf("failed to check tekton installation: %w", err)
	}
	if exists {
		logger.V(1).Info("Tekton already installed")
		return nil
	}

	if err := t.tools.Kubectl(ctx, "apply", "-f", t.opts.TektonReleaseURL); err != nil {
		return fmt.Errorf("tekton install failed: %w", err)
	}
	if err := t.tools.Kubectl(ctx, "apply", "-f", t.opts.TektonDashboardURL); err != nil {
		logger.Info("Failed to install Tekton dashboard, continuing without it", "error", err.Error())
	}
	return nil
}

func (t *tekton) documents(p *zergv1.Pipeline, namespace string) (string, error) {
	return TektonDocuments(p, namespace)
}

// TektonDocuments renders the Pipeline of p and, for git triggered
// pipelines, its TriggerBinding, TriggerTemplate and EventListener.
func TektonDocuments(p *zergv1.Pipeline, namespace string) (string, error) {
	tasks := make([]tektonTask, 0, len(p.Steps))
	for i := range p.Steps {
		s := &p.Steps[i]
		task := tektonTask{
			Name:       fmt.Sprintf("%s-%d", p.Name, i),
			Step:       s.Name,
			Image:      s.Image,
			WorkingDir: workingDir(s),
			Script:     script(s.Commands),
			Env:        sortedEnv(s.Env),
		}
		if i > 0 {
			task.RunAfter = tasks[i-1].Name
		}
		tasks = append(tasks, task)
	}

	pipelineDoc, err := tektonPipelineTemplate.Render(map[string]any{
		"Name":      p.Name,
		"Namespace": namespace,
		"Labels":    labels(p),
		"Workspace": SharedWorkspace,
		"Tasks":     tasks,
	})
	if err != nil {
		return "", err
	}
	if p.Trigger.Git == nil {
		return pipelineDoc, nil
	}

	events := p.Trigger.Git.Events
	if len(events) == 0 {
		events = []string{"push"}
	}
	triggerDoc, err := tektonTriggerTemplate.Render(map[string]any{
		"Name":           p.Name,
		"Namespace":      namespace,
		"Labels":         labels(p),
		"Workspace":      SharedWorkspace,
		"ServiceAccount": triggersServiceAccount,
		"Events":         events,
		"BranchFilter":   branchFilter(p.Trigger.Git.Branches),
	})
	if err != nil {
		return "", err
	}
	return manifest.Join(pipelineDoc, triggerDoc), nil
}

// branchFilter returns a CEL expression accepting pushes to branches, or ""
// when every branch is accepted.
func branchFilter(branches []string) string {
	if len(branches) == 0 {
		return ""
	}
	refs := make([]string, 0, len(branches))
	for _, b := range branches {
		refs = append(refs, fmt.Sprintf("'refs/heads/%s'", b))
	}
	return fmt.Sprintf("body.ref in [%s]", strings.Join(refs, ", "))
}
