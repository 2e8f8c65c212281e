package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Subsystem label values for provisioner metrics.
const (
	SubsystemGitOps = "gitops"
	SubsystemCICD   = "cicd"
)

// Domain-specific metric collectors.
//
// These complement the generic controller-runtime metrics (reconcile counts,
// durations, work queue depth, etc.) with operator-specific state that the
// framework cannot know about.
var (
	resourceInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_operator_resource_info",
			Help: "Info-style metric for DependencyManager discovery and phase tracking. Always 1.",
		},
		[]string{"name", "namespace", "phase"},
	)

	resourceDependencies = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_operator_resource_dependencies",
			Help: "Dependency counts of a DependencyManager by install state.",
		},
		[]string{"name", "namespace", "state"},
	)

	dependencyInstallTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_operator_dependency_install_total",
			Help: "Total number of dependency install attempts.",
		},
		[]string{"kind", "result"},
	)

	dependencyInstallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dependency_operator_dependency_install_duration_seconds",
			Help:    "Latency of a single dependency install in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"kind"},
	)

	provisionerSetupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_operator_provisioner_setup_total",
			Help: "Total number of GitOps and CI/CD provisioning attempts.",
		},
		[]string{"subsystem", "provider", "result"},
	)

	reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_operator_reconcile_errors_total",
			Help: "Errors that ended a reconcile pass without a status write.",
		},
		[]string{"stage"},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all registered metric collectors. This is useful for
// testing that metrics are properly registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		resourceInfo,
		resourceDependencies,
		dependencyInstallTotal,
		dependencyInstallDuration,
		provisionerSetupTotal,
		reconcileErrorsTotal,
	}
}
