package dependencymanager

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/installer"
	"github.com/zerg-io/dependency-operator/pkg/monitoring"
	"github.com/zerg-io/dependency-operator/pkg/pipeline"
	"github.com/zerg-io/dependency-operator/pkg/util/status"
)

// converge runs one pass over dependencies, GitOps and CI/CD. Failures of a
// step end up in status and are retried after the failure interval.
func (r *DependencyManagerReconciler) converge(
	ctx context.Context,
	dm *zergv1.DependencyManager,
) (ctrl.Result, error) {
	l := log.FromContext(ctx)
	gen := dm.Generation

	orig := dm.DeepCopy()
	phase := status.StartPhase(&dm.Status, gen)
	status.MarkReconciling(&dm.Status, phase, gen)
	if err := r.patchStatus(ctx, dm, orig); err != nil {
		return r.retry(ctx, "status", err)
	}

	deps, err := installer.Order(&dm.Spec)
	if err != nil {
		return r.fail(ctx, dm, dm.DeepCopy(), zergv1.ConditionDependenciesInstalled,
			zergv1.ReasonInvalidSpec, fmt.Sprintf("invalid dependencies: %v", err))
	}

	for i := range deps {
		dep := &deps[i]

		orig := dm.DeepCopy()
		dm.Status.Dependencies = append(dm.Status.Dependencies, zergv1.DependencyStatus{
			Name:   dep.Name,
			Status: status.DependencyProgress(phase),
		})
		if err := r.patchStatus(ctx, dm, orig); err != nil {
			return r.retry(ctx, "status", err)
		}

		orig = dm.DeepCopy()
		result := r.Installer.Install(ctx, dep, dm.Namespace)
		dm.Status.Dependencies[len(dm.Status.Dependencies)-1] = result
		if result.Status == zergv1.DependencyFailed {
			return r.fail(ctx, dm, orig, zergv1.ConditionDependenciesInstalled,
				zergv1.ReasonInstallFailed, fmt.Sprintf("failed to install %s: %s", dep.Name, result.Error))
		}
		if err := r.patchStatus(ctx, dm, orig); err != nil {
			return r.retry(ctx, "status", err)
		}
	}

	orig = dm.DeepCopy()
	status.SetCondition(&dm.Status, zergv1.ConditionDependenciesInstalled, metav1.ConditionTrue,
		zergv1.ReasonSucceeded, "All enabled dependencies are installed", gen)
	if err := r.patchStatus(ctx, dm, orig); err != nil {
		return r.retry(ctx, "status", err)
	}
	l.Info("Dependencies installed", "count", len(deps))

	if res, done := r.reconcileGitOps(ctx, dm); done {
		return res, nil
	}
	if res, done := r.reconcileCICD(ctx, dm); done {
		return res, nil
	}

	orig = dm.DeepCopy()
	if dm.Spec.GitOps == nil {
		dm.Status.GitOpsStatus = nil
	}
	if dm.Spec.CICD == nil {
		dm.Status.CICDStatus = nil
	}
	status.MarkReady(&dm.Status, dm.Spec.GitOps != nil, dm.Spec.CICD != nil, gen)
	now := metav1.Now()
	dm.Status.LastReconciled = &now
	if err := r.patchStatus(ctx, dm, orig); err != nil {
		return r.retry(ctx, "status", err)
	}

	after := r.requeue().ReadyRequeue
	l.Info("Reconciled", "phase", dm.Status.Phase, "requeueAfter", after)
	return ctrl.Result{RequeueAfter: after}, nil
}

// reconcileGitOps provisions the GitOps provider. done is true when the pass
// has ended and res must be returned.
func (r *DependencyManagerReconciler) reconcileGitOps(
	ctx context.Context,
	dm *zergv1.DependencyManager,
) (res ctrl.Result, done bool) {
	cfg := dm.Spec.GitOps
	if cfg == nil {
		return ctrl.Result{}, false
	}

	spanCtx, span := monitoring.StartChildSpan(ctx, "SetupGitOps",
		attribute.String("gitops.provider", string(cfg.Provider)))
	err := r.GitOps.Setup(spanCtx, cfg, dm.Namespace)
	monitoring.RecordSpanError(span, err)
	span.End()
	monitoring.RecordProvisionerSetup(monitoring.SubsystemGitOps, string(cfg.Provider), err)

	orig := dm.DeepCopy()
	dm.Status.GitOpsStatus = gitopsStatus(cfg, dm.Status.GitOpsStatus, err, metav1.Now())
	if err != nil {
		res, _ := r.fail(ctx, dm, orig, zergv1.ConditionGitOpsConfigured,
			zergv1.ReasonGitOpsFailed, fmt.Sprintf("gitops setup failed: %v", err))
		return res, true
	}
	status.SetCondition(&dm.Status, zergv1.ConditionGitOpsConfigured, metav1.ConditionTrue,
		zergv1.ReasonSucceeded, "GitOps provider is configured", dm.Generation)
	if err := r.patchStatus(ctx, dm, orig); err != nil {
		res, _ := r.retry(ctx, "status", err)
		return res, true
	}
	return ctrl.Result{}, false
}

// reconcileCICD provisions the pipeline engine and its pipelines.
func (r *DependencyManagerReconciler) reconcileCICD(
	ctx context.Context,
	dm *zergv1.DependencyManager,
) (res ctrl.Result, done bool) {
	cfg := dm.Spec.CICD
	if cfg == nil {
		return ctrl.Result{}, false
	}

	spanCtx, span := monitoring.StartChildSpan(ctx, "SetupPipelines",
		attribute.String("cicd.provider", string(cfg.Provider)),
		attribute.Int("cicd.pipelines", len(cfg.Pipelines)))
	err := r.Pipelines.Setup(spanCtx, cfg, dm.Namespace)
	monitoring.RecordSpanError(span, err)
	span.End()
	monitoring.RecordProvisionerSetup(monitoring.SubsystemCICD, string(cfg.Provider), err)

	orig := dm.DeepCopy()
	dm.Status.CICDStatus = cicdStatus(cfg, err)
	if err != nil {
		res, _ := r.fail(ctx, dm, orig, zergv1.ConditionPipelinesConfigured,
			zergv1.ReasonCICDFailed, fmt.Sprintf("cicd setup failed: %v", err))
		return res, true
	}
	if err := r.patchStatus(ctx, dm, orig); err != nil {
		res, _ := r.retry(ctx, "status", err)
		return res, true
	}
	return ctrl.Result{}, false
}

// fail records a failed pass. reason doubles as the event reason.
func (r *DependencyManagerReconciler) fail(
	ctx context.Context,
	dm, orig *zergv1.DependencyManager,
	condType, reason, message string,
) (ctrl.Result, error) {
	status.MarkFailed(&dm.Status, condType, reason, message, dm.Generation)
	now := metav1.Now()
	dm.Status.LastReconciled = &now

	r.Recorder.Event(dm, corev1.EventTypeWarning, reason, message)
	monitoring.RecordSpanError(trace.SpanFromContext(ctx), errors.New(message))

	if err := r.patchStatus(ctx, dm, orig); err != nil {
		return r.retry(ctx, "status", err)
	}

	after := r.requeue().FailureRequeue
	log.FromContext(ctx).Info("Reconcile pass failed", "reason", reason, "message", message, "requeueAfter", after)
	return ctrl.Result{RequeueAfter: after}, nil
}

func gitopsStatus(
	cfg *zergv1.GitOpsConfig,
	prev *zergv1.GitOpsStatus,
	err error,
	now metav1.Time,
) *zergv1.GitOpsStatus {
	st := &zergv1.GitOpsStatus{Provider: cfg.Provider}
	if err != nil {
		st.SyncStatus = zergv1.SyncStatusFailed
		if prev != nil && prev.Provider == cfg.Provider {
			st.LastSync = prev.LastSync
		}
		return st
	}
	st.SyncStatus = zergv1.SyncStatusConfigured
	st.LastSync = &now
	return st
}

// cicdStatus reports every pipeline before the failing one as Configured and
// the failing one as Failed. Pipelines after it were not attempted and are
// left out. A failure not attributed to a pipeline fails all of them.
func cicdStatus(cfg *zergv1.CICDConfig, err error) *zergv1.CICDStatus {
	st := &zergv1.CICDStatus{Provider: cfg.Provider}

	failed := -1
	if err != nil {
		failed = 0
		var perr *pipeline.PipelineError
		if errors.As(err, &perr) && perr.Pipeline != "" {
			for i := range cfg.Pipelines {
				if cfg.Pipelines[i].Name == perr.Pipeline {
					failed = i
					break
				}
			}
		} else {
			for _, p := range cfg.Pipelines {
				st.Pipelines = append(st.Pipelines, zergv1.PipelineStatus{Name: p.Name, Status: zergv1.SyncStatusFailed})
			}
			return st
		}
	}

	for i, p := range cfg.Pipelines {
		switch {
		case failed < 0 || i < failed:
			st.Pipelines = append(st.Pipelines, zergv1.PipelineStatus{Name: p.Name, Status: zergv1.SyncStatusConfigured})
		case i == failed:
			st.Pipelines = append(st.Pipelines, zergv1.PipelineStatus{Name: p.Name, Status: zergv1.SyncStatusFailed})
		}
	}
	return st
}
