package dependencymanager

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/monitoring"
	"github.com/zerg-io/dependency-operator/pkg/util/status"
)

// patchStatus writes the difference between orig and dm through the status
// subresource and refreshes the resource metrics.
func (r *DependencyManagerReconciler) patchStatus(
	ctx context.Context,
	dm, orig *zergv1.DependencyManager,
) error {
	if err := r.Status().Patch(ctx, dm, client.MergeFrom(orig)); err != nil {
		return fmt.Errorf("failed to patch status: %w", err)
	}

	if orig.Status.Phase != dm.Status.Phase {
		r.Recorder.Eventf(
			dm,
			corev1.EventTypeNormal,
			"PhaseChange",
			"Transitioned from '%s' to '%s'",
			orig.Status.Phase,
			dm.Status.Phase,
		)
	}

	monitoring.SetResourceInfo(dm.Name, dm.Namespace, string(dm.Status.Phase))
	installed, failed := status.CountDependencies(dm.Status.Dependencies)
	monitoring.SetResourceDependencies(dm.Name, dm.Namespace, installed, failed)
	return nil
}
