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

package v1

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ============================================================================
// DependencyManagerSpec (User-editable API)
// ============================================================================

// DependencyManagerSpec defines the desired state of DependencyManager.
type DependencyManagerSpec struct {
	// Dependencies to install and manage, in installation order.
	// +listType=map
	// +listMapKey=name
	// +kubebuilder:validation:MaxItems=100
	Dependencies []Dependency `json:"dependencies"`

	// GitOps configures pull-based continuous delivery for the namespace.
	// +optional
	GitOps *GitOpsConfig `json:"gitops,omitempty"`

	// CICD configures pipeline resources and their triggers.
	// +optional
	CICD *CICDConfig `json:"cicd,omitempty"`
}

// ============================================================================
// Dependency Section Specs
// ============================================================================

// DependencyKind is the installation strategy of a dependency.
// +kubebuilder:validation:Enum=helm;kustomize;yaml;operator
type DependencyKind string

const (
	// DependencyKindHelm installs a chart from a Helm repository.
	DependencyKindHelm DependencyKind = "helm"
	// DependencyKindKustomize applies a kustomization directory or URL.
	DependencyKindKustomize DependencyKind = "kustomize"
	// DependencyKindYaml applies raw manifests.
	DependencyKindYaml DependencyKind = "yaml"
	// DependencyKindOperator installs a well-known operator by name.
	DependencyKindOperator DependencyKind = "operator"
)

// Dependency is one installable unit.
type Dependency struct {
	// Name identifies the dependency. It doubles as the Helm release and
	// repository alias.
	// +kubebuilder:validation:MinLength=1
	// +kubebuilder:validation:MaxLength=53
	Name string `json:"name"`

	// Kind selects the installation strategy.
	Kind DependencyKind `json:"type"`

	// Source locates the dependency.
	Source DependencySource `json:"source"`

	// Version pins a chart version. Semver constraints are accepted.
	// +optional
	Version string `json:"version,omitempty"`

	// Namespace overrides the target namespace. Defaults to the namespace of
	// the DependencyManager.
	// +optional
	Namespace string `json:"namespace,omitempty"`

	// Values are passed to Helm as a values document.
	// +optional
	// +kubebuilder:pruning:PreserveUnknownFields
	Values *apiextensionsv1.JSON `json:"values,omitempty"`

	// DependsOn names dependencies that must be installed before this one.
	// +optional
	DependsOn []string `json:"dependsOn,omitempty"`

	// Enabled toggles installation of this dependency.
	Enabled bool `json:"enabled"`
}

// DependencySource holds repository information for a dependency.
type DependencySource struct {
	// Repo is the repository URL, or the manifest location for yaml and
	// kustomize dependencies.
	// +kubebuilder:validation:MinLength=1
	Repo string `json:"repo"`

	// Chart is the chart name within the Helm repository.
	// +optional
	Chart string `json:"chart,omitempty"`

	// Path within the repository.
	// +optional
	Path string `json:"path,omitempty"`

	// Ref is a git reference (branch, tag, commit).
	// +optional
	Ref string `json:"ref,omitempty"`
}

// ============================================================================
// GitOps Section Specs
// ============================================================================

// GitOpsProvider names the continuous delivery engine.
// +kubebuilder:validation:Enum=flux;argocd
type GitOpsProvider string

const (
	GitOpsProviderFlux   GitOpsProvider = "flux"
	GitOpsProviderArgoCD GitOpsProvider = "argocd"
)

// GitOpsConfig defines the repository the namespace is synced from.
type GitOpsConfig struct {
	Provider GitOpsProvider `json:"provider"`

	// Repository is the git URL to sync from.
	// +kubebuilder:validation:MinLength=1
	Repository string `json:"repository"`

	// +kubebuilder:validation:MinLength=1
	Branch string `json:"branch"`

	// Path within the repository.
	Path string `json:"path"`

	// +optional
	SyncPolicy *SyncPolicy `json:"syncPolicy,omitempty"`
}

// SyncPolicy controls how the GitOps engine applies changes.
type SyncPolicy struct {
	// Automated enables automatic sync. ArgoCD only.
	Automated bool `json:"automated"`
	// SelfHeal reverts drift in the cluster. ArgoCD only.
	SelfHeal bool `json:"selfHeal"`
	// Prune removes resources no longer present in git.
	Prune bool `json:"prune"`
}

// ============================================================================
// CI/CD Section Specs
// ============================================================================

// CICDProvider names the pipeline engine.
// +kubebuilder:validation:Enum=tekton;argo-workflows
type CICDProvider string

const (
	CICDProviderTekton        CICDProvider = "tekton"
	CICDProviderArgoWorkflows CICDProvider = "argo-workflows"
)

// CICDConfig defines pipelines for the namespace.
type CICDConfig struct {
	Provider CICDProvider `json:"provider"`

	// +listType=map
	// +listMapKey=name
	Pipelines []Pipeline `json:"pipelines"`
}

// Pipeline is an ordered list of container steps plus its triggers.
type Pipeline struct {
	// +kubebuilder:validation:MinLength=1
	// +kubebuilder:validation:MaxLength=50
	Name string `json:"name"`

	Trigger PipelineTrigger `json:"trigger"`

	// +kubebuilder:validation:MinItems=1
	Steps []PipelineStep `json:"steps"`
}

// PipelineTrigger defines what starts a pipeline run.
type PipelineTrigger struct {
	// Git configures a webhook trigger.
	// +optional
	Git *GitTrigger `json:"git,omitempty"`

	// Schedule is a standard five-field cron expression.
	// +optional
	Schedule string `json:"schedule,omitempty"`

	Manual bool `json:"manual"`
}

// GitTrigger starts a pipeline on repository events.
type GitTrigger struct {
	Repository string `json:"repository"`

	// Branches the trigger reacts to.
	// +optional
	Branches []string `json:"branches,omitempty"`

	// Events such as push or pull_request.
	// +optional
	Events []string `json:"events,omitempty"`
}

// PipelineStep is a single container invocation.
type PipelineStep struct {
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`

	// +kubebuilder:validation:MinLength=1
	Image string `json:"image"`

	// Commands are run in order by a POSIX shell.
	Commands []string `json:"commands"`

	// +optional
	Env map[string]string `json:"env,omitempty"`

	// +optional
	WorkingDir string `json:"workingDir,omitempty"`
}

// ============================================================================
// DependencyManagerStatus (Read-only API)
// ============================================================================

// Phase is the overall state of a DependencyManager.
// +kubebuilder:validation:Enum=Pending;Installing;Ready;Failed;Updating
type Phase string

const (
	PhasePending    Phase = "Pending"
	PhaseInstalling Phase = "Installing"
	PhaseReady      Phase = "Ready"
	PhaseFailed     Phase = "Failed"
	PhaseUpdating   Phase = "Updating"
)

// DependencyInstallStatus is the state of a single dependency.
// +kubebuilder:validation:Enum=Pending;Installing;Installed;Failed;Updating;Uninstalling
type DependencyInstallStatus string

const (
	DependencyPending      DependencyInstallStatus = "Pending"
	DependencyInstalling   DependencyInstallStatus = "Installing"
	DependencyInstalled    DependencyInstallStatus = "Installed"
	DependencyFailed       DependencyInstallStatus = "Failed"
	DependencyUpdating     DependencyInstallStatus = "Updating"
	DependencyUninstalling DependencyInstallStatus = "Uninstalling"
)

// Sync and pipeline states reported in the subsystem summaries.
const (
	SyncStatusConfigured = "Configured"
	SyncStatusFailed     = "Failed"
)

// Condition types.
const (
	// ConditionReady is True once every step of the last pass succeeded.
	ConditionReady = "Ready"
	// ConditionDependenciesInstalled tracks the dependency installation step.
	ConditionDependenciesInstalled = "DependenciesInstalled"
	// ConditionGitOpsConfigured tracks the GitOps step.
	ConditionGitOpsConfigured = "GitOpsConfigured"
	// ConditionPipelinesConfigured tracks the CI/CD step.
	ConditionPipelinesConfigured = "PipelinesConfigured"
)

// Condition reasons.
const (
	ReasonReconciling   = "Reconciling"
	ReasonSucceeded     = "Succeeded"
	ReasonInstallFailed = "InstallFailed"
	ReasonGitOpsFailed  = "GitOpsFailed"
	ReasonCICDFailed    = "CICDFailed"
	ReasonInvalidSpec   = "InvalidSpec"
)

// DependencyManagerStatus defines the observed state of DependencyManager.
type DependencyManagerStatus struct {
	// +optional
	Phase Phase `json:"phase,omitempty"`

	// ObservedGeneration is the spec generation the status refers to.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Dependencies reports each attempted dependency in installation order.
	// +optional
	Dependencies []DependencyStatus `json:"dependencies,omitempty"`

	// +optional
	GitOpsStatus *GitOpsStatus `json:"gitopsStatus,omitempty"`

	// +optional
	CICDStatus *CICDStatus `json:"cicdStatus,omitempty"`

	// LastReconciled is the time the last pass finished.
	// +optional
	LastReconciled *metav1.Time `json:"lastReconciled,omitempty"`

	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// DependencyStatus is the observed state of one dependency.
type DependencyStatus struct {
	Name string `json:"name"`

	Status DependencyInstallStatus `json:"status"`

	// Version that was installed.
	// +optional
	Version string `json:"version,omitempty"`

	// +optional
	LastUpdated *metav1.Time `json:"lastUpdated,omitempty"`

	// Error is set when Status is Failed.
	// +optional
	Error string `json:"error,omitempty"`
}

// GitOpsStatus summarises the GitOps step.
type GitOpsStatus struct {
	Provider GitOpsProvider `json:"provider"`

	SyncStatus string `json:"syncStatus"`

	// +optional
	LastSync *metav1.Time `json:"lastSync,omitempty"`
}

// CICDStatus summarises the CI/CD step.
type CICDStatus struct {
	Provider CICDProvider `json:"provider"`

	// +optional
	Pipelines []PipelineStatus `json:"pipelines,omitempty"`
}

// PipelineStatus is the provisioning state of one pipeline.
type PipelineStatus struct {
	Name string `json:"name"`

	Status string `json:"status"`

	// +optional
	LastRun *metav1.Time `json:"lastRun,omitempty"`
}

// ============================================================================
// Kind Definition and Registration
// ============================================================================

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=dm
// +kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// DependencyManager is the Schema for the dependencymanagers API.
type DependencyManager struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DependencyManagerSpec   `json:"spec,omitempty"`
	Status DependencyManagerStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// DependencyManagerList contains a list of DependencyManager.
type DependencyManagerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DependencyManager `json:"items"`
}

func init() {
	SchemeBuilder.Register(&DependencyManager{}, &DependencyManagerList{})
}
