/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package v1 defines the API types for the dependency operator.
//
// This package contains the Go type definitions for the Custom Resources in the
// zerg.io API group. These types are used by kubebuilder to generate:
//   - CustomResourceDefinitions (CRDs)
//   - DeepCopy methods
//
// # Custom Resources
//
//   - DependencyManager: declares the dependency set of a namespace. It lists the
//     installable units (Helm charts, Kustomize overlays, raw manifests and
//     well-known operators), an optional GitOps target and an optional CI/CD
//     pipeline definition.
//
// # Status Ownership
//
// The status subresource is written only by the operator. Users edit the spec;
// the operator reports progress through the phase, per-dependency entries,
// the GitOps and CI/CD summaries and the standard conditions list.
//
// # Lifecycle
//
//	Pending ──> Installing ──> Ready
//	                 │
//	                 └──────> Failed
//
// A resource that already reached Ready enters Updating instead of Installing
// when its spec generation changes.
//
// +kubebuilder:object:generate=true
// +groupName=zerg.io
package v1
