package gitops

import (
	"context"
	"fmt"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// DefaultArgoCDInstallURL is the ArgoCD release manifest.
const DefaultArgoCDInstallURL = "https://raw.githubusercontent.com/argoproj/argo-cd/stable/manifests/install.yaml"

// Options configures a Provisioner.
type Options struct {
	ArgoCDInstallURL string
}

// Provisioner sets up the GitOps provider named by a GitOpsConfig.
type Provisioner struct {
	tools *toolrunner.Tools
	opts  Options
}

// NewProvisioner returns a Provisioner running its commands through tools.
func NewProvisioner(tools *toolrunner.Tools, opts Options) *Provisioner {
	if opts.ArgoCDInstallURL == "" {
		opts.ArgoCDInstallURL = DefaultArgoCDInstallURL
	}
	return &Provisioner{tools: tools, opts: opts}
}

// Setup installs the provider if needed and points it at the configured
// repository. namespace is the namespace of the owning DependencyManager and
// the sync target.
func (p *Provisioner) Setup(ctx context.Context, cfg *zergv1.GitOpsConfig, namespace string) error {
	switch cfg.Provider {
	case zergv1.GitOpsProviderFlux:
		return p.setupFlux(ctx, cfg, namespace)
	case zergv1.GitOpsProviderArgoCD:
		return p.setupArgoCD(ctx, cfg, namespace)
	default:
		return fmt.Errorf("unsupported gitops provider %q", cfg.Provider)
	}
}
