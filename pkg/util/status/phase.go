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

// Package status provides utilities for managing and calculating the Phase
// and Status conditions of a DependencyManager.
//
// It defines shared helpers like StartPhase and MarkFailed so that every
// step of a reconcile pass writes phase and conditions the same way.
package status

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
)

// StartPhase determines the phase a convergence pass starts in. A resource
// that was Ready and whose spec changed since it was last observed is
// Updating; everything else is Installing.
func StartPhase(st *zergv1.DependencyManagerStatus, generation int64) zergv1.Phase {
	if st.Phase == zergv1.PhaseReady && st.ObservedGeneration != generation {
		return zergv1.PhaseUpdating
	}
	return zergv1.PhaseInstalling
}

// DependencyProgress maps the starting phase to the per-dependency state
// reported while a dependency is being worked on.
func DependencyProgress(phase zergv1.Phase) zergv1.DependencyInstallStatus {
	if phase == zergv1.PhaseUpdating {
		return zergv1.DependencyUpdating
	}
	return zergv1.DependencyInstalling
}

// CountDependencies returns how many entries are installed and failed.
func CountDependencies(deps []zergv1.DependencyStatus) (installed, failed int) {
	for _, d := range deps {
		switch d.Status {
		case zergv1.DependencyInstalled:
			installed++
		case zergv1.DependencyFailed:
			failed++
		}
	}
	return installed, failed
}

// SetCondition sets a condition stamped with generation. The transition
// time only moves when the status value changes.
func SetCondition(
	st *zergv1.DependencyManagerStatus,
	condType string,
	status metav1.ConditionStatus,
	reason, message string,
	generation int64,
) {
	meta.SetStatusCondition(&st.Conditions, metav1.Condition{
		Type:               condType,
		Status:             status,
		Reason:             reason,
		Message:            message,
		ObservedGeneration: generation,
	})
}

// MarkReconciling records the start of a pass: Ready is Unknown and the
// subsystem conditions of a previous failure are reset.
func MarkReconciling(st *zergv1.DependencyManagerStatus, phase zergv1.Phase, generation int64) {
	st.Phase = phase
	st.Dependencies = nil
	SetCondition(st, zergv1.ConditionReady, metav1.ConditionUnknown,
		zergv1.ReasonReconciling, "Reconciliation in progress", generation)
	for _, t := range []string{
		zergv1.ConditionDependenciesInstalled,
		zergv1.ConditionGitOpsConfigured,
		zergv1.ConditionPipelinesConfigured,
	} {
		if c := meta.FindStatusCondition(st.Conditions, t); c != nil && c.Status == metav1.ConditionFalse {
			SetCondition(st, t, metav1.ConditionUnknown, zergv1.ReasonReconciling, "Reconciliation in progress", generation)
		}
	}
}

// MarkFailed sets the Failed phase. The Ready condition and the condition of
// the failing subsystem carry reason and message.
func MarkFailed(st *zergv1.DependencyManagerStatus, condType, reason, message string, generation int64) {
	st.Phase = zergv1.PhaseFailed
	st.ObservedGeneration = generation
	SetCondition(st, condType, metav1.ConditionFalse, reason, message, generation)
	SetCondition(st, zergv1.ConditionReady, metav1.ConditionFalse, reason, message, generation)
}

// MarkReady sets the Ready phase and turns every applicable condition True.
// Conditions of subsystems that are not configured are removed.
func MarkReady(st *zergv1.DependencyManagerStatus, gitops, cicd bool, generation int64) {
	st.Phase = zergv1.PhaseReady
	st.ObservedGeneration = generation

	SetCondition(st, zergv1.ConditionDependenciesInstalled, metav1.ConditionTrue,
		zergv1.ReasonSucceeded, "All enabled dependencies are installed", generation)
	setOrRemove(st, gitops, zergv1.ConditionGitOpsConfigured, "GitOps provider is configured", generation)
	setOrRemove(st, cicd, zergv1.ConditionPipelinesConfigured, "All pipelines are configured", generation)
	SetCondition(st, zergv1.ConditionReady, metav1.ConditionTrue,
		zergv1.ReasonSucceeded, "All components are reconciled", generation)
}

func setOrRemove(st *zergv1.DependencyManagerStatus, present bool, condType, message string, generation int64) {
	if !present {
		meta.RemoveStatusCondition(&st.Conditions, condType)
		return
	}
	SetCondition(st, condType, metav1.ConditionTrue, zergv1.ReasonSucceeded, message, generation)
}
