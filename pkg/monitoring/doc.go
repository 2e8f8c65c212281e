// Package monitoring provides Prometheus metrics, recording helpers and
// OpenTelemetry tracing for the dependency operator. It exposes
// domain-specific gauges and counters that complement the generic
// controller-runtime metrics already registered by the framework.
//
// All metrics follow the naming convention dependency_operator_<metric>_<unit>
// and are registered against controller-runtime's default Prometheus registry
// on import.
//
// Usage in the reconciler:
//
//	monitoring.SetResourceInfo(dm.Name, dm.Namespace, string(dm.Status.Phase))
//	monitoring.RecordProvisionerSetup(monitoring.SubsystemGitOps, "flux", err)
//
// Usage in the installation dispatcher:
//
//	monitoring.RecordDependencyInstall("helm", err, elapsed)
package monitoring
