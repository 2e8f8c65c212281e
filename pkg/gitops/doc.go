// Package gitops configures a continuous-delivery controller that syncs a
// git repository into the cluster.
//
// Two providers are supported. Flux is bootstrapped with the flux CLI and
// then pointed at the repository with a GitRepository and a Kustomization.
// ArgoCD is installed from its release manifest and given an Application.
// Every step is create-or-update, so Setup is safe to call on each pass.
package gitops
