package installer

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// VersionInstalled is reported for registry operators, which are installed
// without a version pin.
const VersionInstalled = "installed"

// OperatorChart is the fixed Helm installation of a well-known operator.
type OperatorChart struct {
	RepoName  string `mapstructure:"repoName" json:"repoName" validate:"required"`
	RepoURL   string `mapstructure:"repoURL" json:"repoURL" validate:"required,url"`
	Chart     string `mapstructure:"chart" json:"chart" validate:"required"`
	Release   string `mapstructure:"release" json:"release" validate:"required"`
	Namespace string `mapstructure:"namespace" json:"namespace" validate:"required"`
}

// builtinOperators are the operators known without configuration.
var builtinOperators = map[string]OperatorChart{
	"external-secrets": {
		RepoName:  "external-secrets",
		RepoURL:   "https://charts.external-secrets.io",
		Chart:     "external-secrets",
		Release:   "external-secrets",
		Namespace: "external-secrets-system",
	},
	"crossplane": {
		RepoName:  "crossplane-stable",
		RepoURL:   "https://charts.crossplane.io/stable",
		Chart:     "crossplane",
		Release:   "crossplane",
		Namespace: "crossplane-system",
	},
	"loki": {
		RepoName:  "grafana",
		RepoURL:   "https://grafana.github.io/helm-charts",
		Chart:     "loki-stack",
		Release:   "loki",
		Namespace: "loki-system",
	},
}

// Registry maps operator names to their fixed installation.
type Registry struct {
	charts map[string]OperatorChart
}

// NewRegistry returns the built-in registry extended by extra. Entries in
// extra replace built-ins of the same name.
func NewRegistry(extra map[string]OperatorChart) *Registry {
	charts := maps.Clone(builtinOperators)
	maps.Copy(charts, extra)
	return &Registry{charts: charts}
}

// Lookup returns the chart registered under name.
func (r *Registry) Lookup(name string) (OperatorChart, bool) {
	c, ok := r.charts[name]
	return c, ok
}

// Names returns the registered operator names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.charts))
}

// OperatorHandler installs registry operators by name. Unknown operators
// fall back to a Helm install when a chart is declared and to a manifest
// apply otherwise.
type OperatorHandler struct {
	Tools    *toolrunner.Tools
	Registry *Registry
	Helm     *HelmHandler
	YAML     *YAMLHandler
}

// Apply implements Handler.
func (h *OperatorHandler) Apply(ctx context.Context, dep *zergv1.Dependency, namespace string) (string, error) {
	logger := log.FromContext(ctx)

	chart, ok := h.Registry.Lookup(dep.Name)
	if !ok {
		logger.Info("Unknown operator, using generic installation",
			"operator", dep.Name, "registered", h.Registry.Names())
		if dep.Source.Chart != "" {
			return h.Helm.Apply(ctx, dep, namespace)
		}
		return h.YAML.Apply(ctx, dep, namespace)
	}

	rel := helmRelease{
		repoName:  chart.RepoName,
		repoURL:   chart.RepoURL,
		chart:     chart.Chart,
		release:   chart.Release,
		namespace: chart.Namespace,
	}
	if err := h.Helm.install(ctx, rel); err != nil {
		return "", fmt.Errorf("operator %s: %w", dep.Name, err)
	}
	return VersionInstalled, nil
}
