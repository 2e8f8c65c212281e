package gitops

import (
	"context"
	"fmt"
	"time"

	kustomizev1 "github.com/fluxcd/kustomize-controller/api/v1"
	sourcev1 "github.com/fluxcd/source-controller/api/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/manifest"
	"github.com/zerg-io/dependency-operator/pkg/util/metadata"
)

const (
	// FluxNamespace hosts the flux controllers.
	FluxNamespace = "flux-system"
	// GitRepositoryName is the GitRepository created for the sync source.
	GitRepositoryName = "zerg-repo"
	// KustomizationName is the Kustomization applying the synced path.
	KustomizationName = "zerg-kustomization"

	fluxInterval = 5 * time.Minute
)

func (p *Provisioner) setupFlux(ctx context.Context, cfg *zergv1.GitOpsConfig, namespace string) error {
	logger := log.FromContext(ctx).WithValues("provider", cfg.Provider)

	if err := p.tools.Flux(ctx, "check", "--pre"); err != nil {
		logger.Info("Flux prerequisites not met, installing flux", "reason", err.Error())
		if err := p.tools.Flux(ctx, "install"); err != nil {
			return fmt.Errorf("flux install failed: %w", err)
		}
	}

	if err := p.tools.Flux(ctx,
		"bootstrap", "git",
		"--url", cfg.Repository,
		"--branch", cfg.Branch,
		"--path", cfg.Path,
		"--namespace", FluxNamespace,
	); err != nil {
		return fmt.Errorf("flux bootstrap failed: %w", err)
	}

	doc, err := FluxDocuments(cfg, namespace)
	if err != nil {
		return err
	}
	if err := p.tools.ApplyDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to apply flux sync objects: %w", err)
	}
	logger.Info("Flux sync configured", "repository", cfg.Repository, "branch", cfg.Branch)
	return nil
}

// FluxDocuments renders the GitRepository and Kustomization that sync cfg
// into namespace.
func FluxDocuments(cfg *zergv1.GitOpsConfig, namespace string) (string, error) {
	repo := &sourcev1.GitRepository{
		TypeMeta: metav1.TypeMeta{
			APIVersion: sourcev1.GroupVersion.String(),
			Kind:       sourcev1.GitRepositoryKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      GitRepositoryName,
			Namespace: namespace,
			Labels:    metadata.BuildStandardLabels(GitRepositoryName, metadata.ComponentGitOps),
		},
		Spec: sourcev1.GitRepositorySpec{
			URL:      cfg.Repository,
			Interval: metav1.Duration{Duration: fluxInterval},
			Reference: &sourcev1.GitRepositoryRef{
				Branch: cfg.Branch,
			},
		},
	}

	ks := &kustomizev1.Kustomization{
		TypeMeta: metav1.TypeMeta{
			APIVersion: kustomizev1.GroupVersion.String(),
			Kind:       kustomizev1.KustomizationKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      KustomizationName,
			Namespace: namespace,
			Labels:    metadata.BuildStandardLabels(KustomizationName, metadata.ComponentGitOps),
		},
		Spec: kustomizev1.KustomizationSpec{
			Interval: metav1.Duration{Duration: fluxInterval},
			SourceRef: kustomizev1.CrossNamespaceSourceReference{
				Kind: sourcev1.GitRepositoryKind,
				Name: GitRepositoryName,
			},
			Path:            cfg.Path,
			Prune:           cfg.PruneEnabled(),
			TargetNamespace: namespace,
		},
	}

	repoDoc, err := manifest.FromObject(repo)
	if err != nil {
		return "", fmt.Errorf("failed to render GitRepository: %w", err)
	}
	ksDoc, err := manifest.FromObject(ks)
	if err != nil {
		return "", fmt.Errorf("failed to render Kustomization: %w", err)
	}
	return manifest.Join(repoDoc, ksDoc), nil
}
