package installer

import (
	"context"
	"fmt"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// VersionApplied is reported for manifests, which carry no version.
const VersionApplied = "applied"

// KustomizeHandler applies a kustomization with `kubectl apply -k`. The
// source path wins over the repository.
type KustomizeHandler struct {
	Tools *toolrunner.Tools
}

// Apply implements Handler.
func (h *KustomizeHandler) Apply(ctx context.Context, dep *zergv1.Dependency, namespace string) (string, error) {
	target := dep.Source.Path
	if target == "" {
		target = dep.Source.Repo
	}
	if target == "" {
		return "", configErrorf(dep.Name, "source.path or source.repo is required for kustomize dependency %q", dep.Name)
	}
	if err := h.Tools.Kubectl(ctx, "apply", "-k", target, "--namespace", namespace); err != nil {
		return "", fmt.Errorf("kustomize apply failed: %w", err)
	}
	return VersionApplied, nil
}

// YAMLHandler applies raw manifests from a file, directory or URL with
// `kubectl apply -f`.
type YAMLHandler struct {
	Tools *toolrunner.Tools
}

// Apply implements Handler.
func (h *YAMLHandler) Apply(ctx context.Context, dep *zergv1.Dependency, namespace string) (string, error) {
	if dep.Source.Repo == "" {
		return "", configErrorf(dep.Name, "source.repo is required for yaml dependency %q", dep.Name)
	}
	if err := h.Tools.Kubectl(ctx, "apply", "-f", dep.Source.Repo, "--namespace", namespace); err != nil {
		return "", fmt.Errorf("yaml apply failed: %w", err)
	}
	return VersionApplied, nil
}
