package status

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
)

func TestStartPhase(t *testing.T) {
	tests := []struct {
		name       string
		status     zergv1.DependencyManagerStatus
		generation int64
		want       zergv1.Phase
	}{
		{
			name:       "Fresh Resource -> Installing",
			status:     zergv1.DependencyManagerStatus{Phase: zergv1.PhasePending},
			generation: 1,
			want:       zergv1.PhaseInstalling,
		},
		{
			name:       "Ready Unchanged -> Installing",
			status:     zergv1.DependencyManagerStatus{Phase: zergv1.PhaseReady, ObservedGeneration: 2},
			generation: 2,
			want:       zergv1.PhaseInstalling,
		},
		{
			name:       "Ready With New Generation -> Updating",
			status:     zergv1.DependencyManagerStatus{Phase: zergv1.PhaseReady, ObservedGeneration: 2},
			generation: 3,
			want:       zergv1.PhaseUpdating,
		},
		{
			name:       "Failed With New Generation -> Installing",
			status:     zergv1.DependencyManagerStatus{Phase: zergv1.PhaseFailed, ObservedGeneration: 2},
			generation: 3,
			want:       zergv1.PhaseInstalling,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartPhase(&tt.status, tt.generation); got != tt.want {
				t.Errorf("StartPhase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDependencyProgress(t *testing.T) {
	if got := DependencyProgress(zergv1.PhaseUpdating); got != zergv1.DependencyUpdating {
		t.Errorf("DependencyProgress(Updating) = %v", got)
	}
	if got := DependencyProgress(zergv1.PhaseInstalling); got != zergv1.DependencyInstalling {
		t.Errorf("DependencyProgress(Installing) = %v", got)
	}
}

func TestCountDependencies(t *testing.T) {
	installed, failed := CountDependencies([]zergv1.DependencyStatus{
		{Name: "a", Status: zergv1.DependencyInstalled},
		{Name: "b", Status: zergv1.DependencyInstalled},
		{Name: "c", Status: zergv1.DependencyFailed},
		{Name: "d", Status: zergv1.DependencyPending},
	})
	if installed != 2 || failed != 1 {
		t.Errorf("CountDependencies() = %d, %d, want 2, 1", installed, failed)
	}
}

var ignoreTime = cmpopts.IgnoreFields(metav1.Condition{}, "LastTransitionTime")

func TestMarkLifecycle(t *testing.T) {
	st := &zergv1.DependencyManagerStatus{
		Dependencies: []zergv1.DependencyStatus{{Name: "old", Status: zergv1.DependencyFailed}},
	}

	MarkReconciling(st, zergv1.PhaseInstalling, 1)
	if st.Phase != zergv1.PhaseInstalling || st.Dependencies != nil {
		t.Fatalf("MarkReconciling() phase=%s deps=%v", st.Phase, st.Dependencies)
	}
	want := []metav1.Condition{{
		Type: zergv1.ConditionReady, Status: metav1.ConditionUnknown,
		Reason: zergv1.ReasonReconciling, Message: "Reconciliation in progress", ObservedGeneration: 1,
	}}
	if diff := cmp.Diff(want, st.Conditions, ignoreTime); diff != "" {
		t.Errorf("conditions after MarkReconciling (-want +got):\n%s", diff)
	}

	MarkFailed(st, zergv1.ConditionGitOpsConfigured, zergv1.ReasonGitOpsFailed, "gitops setup failed: boom", 1)
	if st.Phase != zergv1.PhaseFailed || st.ObservedGeneration != 1 {
		t.Fatalf("MarkFailed() phase=%s observed=%d", st.Phase, st.ObservedGeneration)
	}
	ready := meta.FindStatusCondition(st.Conditions, zergv1.ConditionReady)
	if ready.Status != metav1.ConditionFalse || ready.Message != "gitops setup failed: boom" {
		t.Errorf("Ready condition = %+v", ready)
	}
	if !meta.IsStatusConditionFalse(st.Conditions, zergv1.ConditionGitOpsConfigured) {
		t.Error("GitOpsConfigured should be False")
	}

	// A new pass clears the subsystem failure.
	MarkReconciling(st, zergv1.PhaseInstalling, 2)
	gitops := meta.FindStatusCondition(st.Conditions, zergv1.ConditionGitOpsConfigured)
	if gitops.Status != metav1.ConditionUnknown {
		t.Errorf("GitOpsConfigured after MarkReconciling = %s, want Unknown", gitops.Status)
	}

	MarkReady(st, false, true, 2)
	if st.Phase != zergv1.PhaseReady || st.ObservedGeneration != 2 {
		t.Fatalf("MarkReady() phase=%s observed=%d", st.Phase, st.ObservedGeneration)
	}
	for _, c := range []string{zergv1.ConditionReady, zergv1.ConditionDependenciesInstalled, zergv1.ConditionPipelinesConfigured} {
		if !meta.IsStatusConditionTrue(st.Conditions, c) {
			t.Errorf("condition %s should be True", c)
		}
	}
	if meta.FindStatusCondition(st.Conditions, zergv1.ConditionGitOpsConfigured) != nil {
		t.Error("GitOpsConfigured should be removed when gitops is not configured")
	}
}

func TestSetConditionKeepsTransitionTime(t *testing.T) {
	then := metav1.NewTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	st := &zergv1.DependencyManagerStatus{
		Conditions: []metav1.Condition{{
			Type: zergv1.ConditionReady, Status: metav1.ConditionTrue,
			Reason: zergv1.ReasonSucceeded, LastTransitionTime: then,
		}},
	}

	SetCondition(st, zergv1.ConditionReady, metav1.ConditionTrue, zergv1.ReasonSucceeded, "still ready", 5)
	if got := st.Conditions[0].LastTransitionTime; !got.Equal(&then) {
		t.Errorf("LastTransitionTime moved to %v without a status change", got)
	}

	SetCondition(st, zergv1.ConditionReady, metav1.ConditionFalse, zergv1.ReasonInstallFailed, "broken", 6)
	if got := st.Conditions[0].LastTransitionTime; got.Equal(&then) {
		t.Error("LastTransitionTime should move on a status change")
	}
}
