// Package metadata holds the labels the operator stamps on the documents it
// generates.
package metadata

import (
	"maps"
)

// Standard Kubernetes label keys following kubernetes.io conventions.
//
// See: https://kubernetes.io/docs/concepts/overview/working-with-objects/common-labels/
const (
	// LabelAppName is the standard label key for the application name.
	LabelAppName = "app.kubernetes.io/name"

	// LabelAppComponent is the standard label key for the component within the
	// application.
	LabelAppComponent = "app.kubernetes.io/component"

	// LabelAppPartOf is the standard label key for the name of a higher level
	// application this one is part of.
	LabelAppPartOf = "app.kubernetes.io/part-of"

	// LabelAppManagedBy is the standard label key for the tool managing the
	// resource.
	LabelAppManagedBy = "app.kubernetes.io/managed-by"
)

const (
	// PartOfZerg groups everything provisioned for a DependencyManager.
	PartOfZerg = "zerg"

	// ManagedByOperator identifies the operator managing these resources.
	ManagedByOperator = "dependency-operator"
)

const (
	// ComponentGitOps labels GitOps sources and applications.
	ComponentGitOps = "gitops"

	// ComponentPipeline labels pipelines and their triggers.
	ComponentPipeline = "pipeline"
)

// LabelPipeline identifies which pipeline a generated resource belongs to.
const LabelPipeline = "zerg.io/pipeline"

// BuildStandardLabels returns the standard labels of a generated resource.
// name is the resource's own name and component one of the Component
// constants.
func BuildStandardLabels(name, component string) map[string]string {
	return map[string]string{
		LabelAppName:      name,
		LabelAppComponent: component,
		LabelAppPartOf:    PartOfZerg,
		LabelAppManagedBy: ManagedByOperator,
	}
}

// MergeLabels merges custom labels with standard labels.
//
// Note that standard labels take precedence over custom labels to prevent users
// from overriding critical operator-managed labels.
func MergeLabels(standardLabels, customLabels map[string]string) map[string]string {
	merged := make(map[string]string)
	maps.Copy(merged, customLabels)
	maps.Copy(merged, standardLabels)
	return merged
}
