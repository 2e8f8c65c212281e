package dependencymanager

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/config"
	"github.com/zerg-io/dependency-operator/pkg/monitoring"
)

const (
	finalizerName = "zerg.io/finalizer"
	kind          = "DependencyManager"
)

// Installer installs a single dependency and reports its status.
type Installer interface {
	Install(ctx context.Context, dep *zergv1.Dependency, namespace string) zergv1.DependencyStatus
}

// GitOpsProvisioner configures the GitOps provider of a DependencyManager.
type GitOpsProvisioner interface {
	Setup(ctx context.Context, cfg *zergv1.GitOpsConfig, namespace string) error
}

// PipelineProvisioner configures the CI/CD pipelines of a DependencyManager.
type PipelineProvisioner interface {
	Setup(ctx context.Context, cfg *zergv1.CICDConfig, namespace string) error
}

// DependencyManagerReconciler reconciles a DependencyManager object.
type DependencyManagerReconciler struct {
	client.Client
	Scheme    *runtime.Scheme
	Recorder  record.EventRecorder
	Installer Installer
	GitOps    GitOpsProvisioner
	Pipelines PipelineProvisioner
	// Config holds the requeue intervals. Zero values fall back to the
	// defaults of config.Default.
	Config config.Reconcile
}

type lifecycleState int

const (
	stateActive lifecycleState = iota
	stateTerminating
)

func lifecycleOf(dm *zergv1.DependencyManager) lifecycleState {
	if dm.IsBeingDeleted() {
		return stateTerminating
	}
	return stateActive
}

// Reconcile reads the state of the cluster for a DependencyManager object and
// makes changes based on the state read and what is in the
// DependencyManager.Spec.
//
// +kubebuilder:rbac:groups=zerg.io,resources=dependencymanagers,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=zerg.io,resources=dependencymanagers/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=zerg.io,resources=dependencymanagers/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch
func (r *DependencyManagerReconciler) Reconcile(
	ctx context.Context,
	req ctrl.Request,
) (ctrl.Result, error) {
	ctx, span := monitoring.StartReconcileSpan(ctx, "DependencyManager.Reconcile", req.Name, req.Namespace, kind)
	defer span.End()
	ctx = monitoring.EnrichLoggerWithTrace(ctx)
	l := log.FromContext(ctx)

	dm := &zergv1.DependencyManager{}
	if err := r.Get(ctx, req.NamespacedName, dm); err != nil {
		if apierrors.IsNotFound(err) {
			l.V(1).Info("DependencyManager not found, ignoring")
			monitoring.DeleteResourceMetrics(req.Name, req.Namespace)
			return ctrl.Result{}, nil
		}
		return r.retry(ctx, "get", fmt.Errorf("failed to get DependencyManager: %w", err))
	}

	switch lifecycleOf(dm) {
	case stateTerminating:
		return r.handleDelete(ctx, dm)
	default:
		if !controllerutil.ContainsFinalizer(dm, finalizerName) {
			return r.attachFinalizer(ctx, dm)
		}
		return r.converge(ctx, dm)
	}
}

func (r *DependencyManagerReconciler) attachFinalizer(
	ctx context.Context,
	dm *zergv1.DependencyManager,
) (ctrl.Result, error) {
	controllerutil.AddFinalizer(dm, finalizerName)
	if err := r.Update(ctx, dm); err != nil {
		return r.retry(ctx, "finalizer", fmt.Errorf("failed to add finalizer: %w", err))
	}

	orig := dm.DeepCopy()
	dm.Status.Phase = zergv1.PhasePending
	if err := r.patchStatus(ctx, dm, orig); err != nil {
		return r.retry(ctx, "status", err)
	}
	// Neither write passes the watch predicate, so converge in this pass.
	return r.converge(ctx, dm)
}

// handleDelete releases the finalizer. Installed dependencies and provisioned
// subsystems are not removed.
func (r *DependencyManagerReconciler) handleDelete(
	ctx context.Context,
	dm *zergv1.DependencyManager,
) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(dm, finalizerName) {
		return ctrl.Result{}, nil
	}

	r.Recorder.Event(
		dm,
		corev1.EventTypeNormal,
		"Cleanup",
		"Releasing finalizer, installed dependencies are left in place",
	)
	controllerutil.RemoveFinalizer(dm, finalizerName)
	if err := r.Update(ctx, dm); err != nil {
		return r.retry(ctx, "finalizer", fmt.Errorf("failed to remove finalizer: %w", err))
	}
	monitoring.DeleteResourceMetrics(dm.Name, dm.Namespace)
	log.FromContext(ctx).Info("Finalizer removed")
	return ctrl.Result{}, nil
}

// retry handles errors that cannot be recorded in status. They are retried
// after a fixed interval instead of the controller's exponential backoff.
func (r *DependencyManagerReconciler) retry(
	ctx context.Context,
	stage string,
	err error,
) (ctrl.Result, error) {
	after := r.requeue().ErrorRequeue
	log.FromContext(ctx).Error(err, "Reconcile failed", "stage", stage, "requeueAfter", after)
	monitoring.RecordReconcileError(stage)
	monitoring.RecordSpanError(trace.SpanFromContext(ctx), err)
	return ctrl.Result{RequeueAfter: after}, nil
}

func (r *DependencyManagerReconciler) requeue() config.Reconcile {
	c := r.Config
	d := config.Default().Reconcile
	if c.FailureRequeue <= 0 {
		c.FailureRequeue = d.FailureRequeue
	}
	if c.ReadyRequeue <= 0 {
		c.ReadyRequeue = d.ReadyRequeue
	}
	if c.ErrorRequeue <= 0 {
		c.ErrorRequeue = d.ErrorRequeue
	}
	return c
}

// SetupWithManager sets up the controller with the Manager.
func (r *DependencyManagerReconciler) SetupWithManager(
	mgr ctrl.Manager,
	opts ...controller.Options,
) error {
	controllerOpts := controller.Options{}
	if len(opts) > 0 {
		controllerOpts = opts[0]
	}

	return ctrl.NewControllerManagedBy(mgr).
		For(&zergv1.DependencyManager{}, builder.WithPredicates(watchPredicate())).
		Named("dependencymanager").
		WithOptions(controllerOpts).
		Complete(r)
}

// watchPredicate admits spec changes and the start of deletion. Status and
// finalizer writes made by the reconciler itself are dropped, so the next
// pass of a converged object is scheduled by RequeueAfter alone.
func watchPredicate() predicate.Predicate {
	return predicate.Or[client.Object](
		predicate.GenerationChangedPredicate{},
		predicate.Funcs{
			UpdateFunc: func(e event.UpdateEvent) bool {
				if e.ObjectOld == nil || e.ObjectNew == nil {
					return false
				}
				return e.ObjectOld.GetDeletionTimestamp().IsZero() &&
					!e.ObjectNew.GetDeletionTimestamp().IsZero()
			},
		},
	)
}
