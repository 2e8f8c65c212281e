package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// VersionLatest is reported for dependencies installed without a pin.
const VersionLatest = "latest"

// HelmHandler installs Helm charts with `helm upgrade --install`, which
// creates the release on first use and upgrades it afterwards.
type HelmHandler struct {
	Tools *toolrunner.Tools
	// ValuesDir receives the transient values files. Empty means the
	// system temp directory.
	ValuesDir string
	// Fs backs the values files. Nil means the OS filesystem.
	Fs afero.Fs
}

// helmRelease is a resolved chart installation.
type helmRelease struct {
	repoName  string
	repoURL   string
	chart     string
	release   string
	namespace string
	version   string
	values    []byte
}

// Apply implements Handler.
func (h *HelmHandler) Apply(ctx context.Context, dep *zergv1.Dependency, namespace string) (string, error) {
	if dep.Source.Chart == "" {
		return "", configErrorf(dep.Name, "source.chart is required for helm dependency %q", dep.Name)
	}
	if dep.Version != "" {
		if _, err := semver.NewConstraint(dep.Version); err != nil {
			return "", &ConfigError{
				Dependency: dep.Name,
				Message:    fmt.Sprintf("version %q of helm dependency %q is not a valid semver constraint", dep.Version, dep.Name),
				Err:        err,
			}
		}
	}
	values, err := dep.ValuesYAML()
	if err != nil {
		return "", &ConfigError{Dependency: dep.Name, Message: "invalid values", Err: err}
	}

	rel := helmRelease{
		repoName:  dep.Name,
		repoURL:   dep.Source.Repo,
		chart:     dep.Source.Chart,
		release:   dep.Name,
		namespace: namespace,
		version:   dep.Version,
		values:    values,
	}
	if err := h.install(ctx, rel); err != nil {
		return "", err
	}

	if dep.Version == "" {
		return VersionLatest, nil
	}
	return dep.Version, nil
}

func (h *HelmHandler) install(ctx context.Context, rel helmRelease) error {
	logger := log.FromContext(ctx)

	if err := h.Tools.Helm(ctx, "repo", "add", rel.repoName, rel.repoURL, "--force-update"); err != nil {
		return fmt.Errorf("failed to add helm repository %s: %w", rel.repoName, err)
	}
	if err := h.Tools.Helm(ctx, "repo", "update", rel.repoName); err != nil {
		return fmt.Errorf("failed to update helm repository %s: %w", rel.repoName, err)
	}

	args := []string{
		"upgrade", "--install", rel.release, rel.repoName + "/" + rel.chart,
		"--namespace", rel.namespace,
		"--create-namespace",
	}
	if rel.version != "" {
		args = append(args, "--version", rel.version)
	}

	if len(rel.values) > 0 {
		path, cleanup, err := h.writeValues(rel.release, rel.values)
		if err != nil {
			return err
		}
		defer cleanup()
		args = append(args, "--values", path)
	}

	logger.V(1).Info("Installing helm release", "release", rel.release, "namespace", rel.namespace)
	if err := h.Tools.Helm(ctx, args...); err != nil {
		return fmt.Errorf("helm install failed: %w", err)
	}
	return nil
}

// writeValues stores values in a uniquely named file so that concurrent
// passes for different resources never share one.
func (h *HelmHandler) writeValues(release string, values []byte) (string, func(), error) {
	fs := h.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir := h.ValuesDir
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := afero.TempFile(fs, dir, "values-"+release+"-*.yaml")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create values file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = fs.Remove(path) }

	if _, err := f.Write(values); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write values file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write values file: %w", err)
	}
	return path, cleanup, nil
}
