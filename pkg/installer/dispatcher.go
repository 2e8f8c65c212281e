package installer

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/log"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/monitoring"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// Handler installs dependencies of one kind. It returns the version to
// report in status.
type Handler interface {
	Apply(ctx context.Context, dep *zergv1.Dependency, namespace string) (string, error)
}

// Options configures a Dispatcher.
type Options struct {
	// ValuesDir holds the transient Helm values files. Empty means the
	// system temp directory.
	ValuesDir string
	// Operators extends or overrides the built-in operator registry.
	Operators map[string]OperatorChart
}

// Dispatcher routes a dependency to the handler of its kind.
type Dispatcher struct {
	handlers map[zergv1.DependencyKind]Handler
	now      func() time.Time
}

// NewDispatcher returns a Dispatcher with handlers for every kind, all
// running their commands through tools.
func NewDispatcher(tools *toolrunner.Tools, opts Options) *Dispatcher {
	helm := &HelmHandler{Tools: tools, ValuesDir: opts.ValuesDir}
	yaml := &YAMLHandler{Tools: tools}

	return &Dispatcher{
		handlers: map[zergv1.DependencyKind]Handler{
			zergv1.DependencyKindHelm:      helm,
			zergv1.DependencyKindKustomize: &KustomizeHandler{Tools: tools},
			zergv1.DependencyKindYaml:      yaml,
			zergv1.DependencyKindOperator: &OperatorHandler{
				Tools:    tools,
				Registry: NewRegistry(opts.Operators),
				Helm:     helm,
				YAML:     yaml,
			},
		},
		now: time.Now,
	}
}

// Install installs dep and reports the outcome. namespace is the fallback
// when the dependency does not name its own.
func (d *Dispatcher) Install(ctx context.Context, dep *zergv1.Dependency, namespace string) zergv1.DependencyStatus {
	logger := log.FromContext(ctx).WithValues("dependency", dep.Name, "type", dep.Kind)

	ctx, span := monitoring.StartChildSpan(ctx, "InstallDependency",
		attribute.String("dependency.name", dep.Name),
		attribute.String("dependency.type", string(dep.Kind)),
	)
	defer span.End()

	start := d.now()
	version, err := d.apply(ctx, dep, namespace)
	monitoring.RecordDependencyInstall(string(dep.Kind), err, d.now().Sub(start))
	monitoring.RecordSpanError(span, err)

	updated := metav1.NewTime(d.now())
	if err != nil {
		logger.Error(err, "Failed to install dependency")
		return zergv1.DependencyStatus{
			Name:        dep.Name,
			Status:      zergv1.DependencyFailed,
			LastUpdated: &updated,
			Error:       err.Error(),
		}
	}

	logger.Info("Dependency installed", "version", version)
	return zergv1.DependencyStatus{
		Name:        dep.Name,
		Status:      zergv1.DependencyInstalled,
		Version:     version,
		LastUpdated: &updated,
	}
}

func (d *Dispatcher) apply(ctx context.Context, dep *zergv1.Dependency, namespace string) (string, error) {
	h, ok := d.handlers[dep.Kind]
	if !ok {
		return "", configErrorf(dep.Name, "unsupported dependency type %q for %q", dep.Kind, dep.Name)
	}
	version, err := h.Apply(ctx, dep, dep.TargetNamespace(namespace))
	if err != nil {
		return "", fmt.Errorf("%s install of %s failed: %w", dep.Kind, dep.Name, err)
	}
	return version, nil
}
