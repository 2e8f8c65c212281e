// Package dependencymanager implements the controller for the DependencyManager
// resource.
//
// A DependencyManager moves through two lifecycle states. While Active, every
// reconcile pass converges the cluster toward the spec:
//
//  1. Dependencies:
//     Enabled dependencies are ordered by their dependsOn references and handed
//     to the installation dispatcher one at a time. The first failure ends the
//     pass and later dependencies are not attempted.
//
//  2. GitOps:
//     When spec.gitops is set, the GitOps provisioner installs the provider and
//     points it at the declared repository.
//
//  3. CI/CD:
//     When spec.cicd is set, the pipeline provisioner installs the engine and
//     applies every pipeline.
//
// Status is persisted through the status subresource after each transition, so
// a pass that is interrupted leaves an accurate record of how far it got.
//
// Once the resource is Terminating the controller releases its finalizer.
// Installed dependencies are left in place.
package dependencymanager
