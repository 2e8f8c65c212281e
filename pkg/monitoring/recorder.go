package monitoring

import "time"

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// SetResourceInfo sets the info-style gauge for a DependencyManager.
// Old phase labels are automatically cleaned up via DeletePartialMatch.
func SetResourceInfo(name, namespace, phase string) {
	resourceInfo.DeletePartialMatch(map[string]string{
		"name":      name,
		"namespace": namespace,
	})
	resourceInfo.WithLabelValues(name, namespace, phase).Set(1)
}

// SetResourceDependencies sets the installed and failed dependency gauges.
func SetResourceDependencies(name, namespace string, installed, failed int) {
	resourceDependencies.WithLabelValues(name, namespace, "installed").Set(float64(installed))
	resourceDependencies.WithLabelValues(name, namespace, "failed").Set(float64(failed))
}

// DeleteResourceMetrics drops every series of a DependencyManager that is
// gone.
func DeleteResourceMetrics(name, namespace string) {
	labels := map[string]string{"name": name, "namespace": namespace}
	resourceInfo.DeletePartialMatch(labels)
	resourceDependencies.DeletePartialMatch(labels)
}

// RecordDependencyInstall records the result and duration of one install.
func RecordDependencyInstall(kind string, err error, duration time.Duration) {
	dependencyInstallTotal.WithLabelValues(kind, result(err)).Inc()
	dependencyInstallDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordProvisionerSetup records a GitOps or CI/CD provisioning result.
func RecordProvisionerSetup(subsystem, provider string, err error) {
	provisionerSetupTotal.WithLabelValues(subsystem, provider, result(err)).Inc()
}

// RecordReconcileError counts a pass that ended in the short retry path.
func RecordReconcileError(stage string) {
	reconcileErrorsTotal.WithLabelValues(stage).Inc()
}
