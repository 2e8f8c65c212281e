// Package manifest renders and validates the Kubernetes documents that the
// provisioners pipe into `kubectl apply -f -`.
//
// Documents come from two sources: text/template sources executed with the
// sprig function map, and typed API objects converted with FromObject. Both
// paths end in Validate so that a malformed document is reported before any
// external tool runs.
package manifest
