package gitops

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/manifest"
	"github.com/zerg-io/dependency-operator/pkg/util/metadata"
)

const (
	// ArgoCDNamespace hosts the ArgoCD installation and its Applications.
	ArgoCDNamespace = "argocd"
	// ApplicationName is the Application created for the sync source.
	ApplicationName = "zerg-app"
	// InClusterServer is the API server address ArgoCD uses for its own
	// cluster.
	InClusterServer = "https://kubernetes.default.svc"
)

var applicationTemplate = manifest.MustParse("argocd-application", `apiVersion: argoproj.io/v1alpha1
kind: Application
metadata:
  name: {{ .Name }}
  namespace: {{ .ArgoNamespace }}
  labels: {{ .Labels | toJson }}
spec:
  project: default
  source:
    repoURL: {{ .Config.Repository | toJson }}
    targetRevision: {{ .Config.Branch | toJson }}
    path: {{ .Config.Path | toJson }}
  destination:
    server: {{ .Server }}
    namespace: {{ .Namespace | toJson }}
{{- with .Config.AutomatedSync }}
  syncPolicy:
    automated:
      prune: {{ .Prune }}
      selfHeal: {{ .SelfHeal }}
{{- end }}
`)

func (p *Provisioner) setupArgoCD(ctx context.Context, cfg *zergv1.GitOpsConfig, namespace string) error {
	logger := log.FromContext(ctx).WithValues("provider", cfg.Provider)

	if _, err := p.tools.EnsureNamespace(ctx, ArgoCDNamespace); err != nil {
		return fmt.Errorf("failed to prepare argocd namespace: %w", err)
	}
	if err := p.tools.Kubectl(ctx, "apply", "-n", ArgoCDNamespace, "-f", p.opts.ArgoCDInstallURL); err != nil {
		return fmt.Errorf("argocd install failed: %w", err)
	}

	doc, err := ApplicationDocument(cfg, namespace)
	if err != nil {
		return err
	}
	if err := p.tools.ApplyDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to apply argocd application: %w", err)
	}
	logger.Info("ArgoCD application configured", "repository", cfg.Repository, "branch", cfg.Branch)
	return nil
}

// ApplicationDocument renders the ArgoCD Application syncing cfg into
// namespace. The automated sync block is present only when automated sync
// is requested.
func ApplicationDocument(cfg *zergv1.GitOpsConfig, namespace string) (string, error) {
	return applicationTemplate.Render(map[string]any{
		"Name":          ApplicationName,
		"Labels":        metadata.BuildStandardLabels(ApplicationName, metadata.ComponentGitOps),
		"ArgoNamespace": ArgoCDNamespace,
		"Server":        InClusterServer,
		"Namespace":     namespace,
		"Config":        cfg,
	})
}
