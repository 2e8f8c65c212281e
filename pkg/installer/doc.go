// Package installer installs the dependencies declared by a DependencyManager.
//
// The Dispatcher selects one Handler per dependency kind (helm, kustomize,
// yaml, operator) and turns the outcome into a DependencyStatus entry. It
// never returns an error: every failure, configuration or tool, ends up in
// the entry's error message. Order computes the install sequence from
// dependsOn before any handler runs.
package installer
