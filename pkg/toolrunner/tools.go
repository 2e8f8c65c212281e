package toolrunner

import (
	"context"
	"errors"
	"fmt"
)

// Default binary names, resolved through PATH.
const (
	DefaultKubectl = "kubectl"
	DefaultHelm    = "helm"
	DefaultFlux    = "flux"
)

// Binaries names the executables used by Tools.
type Binaries struct {
	Kubectl string
	Helm    string
	Flux    string
}

func (b Binaries) withDefaults() Binaries {
	if b.Kubectl == "" {
		b.Kubectl = DefaultKubectl
	}
	if b.Helm == "" {
		b.Helm = DefaultHelm
	}
	if b.Flux == "" {
		b.Flux = DefaultFlux
	}
	return b
}

// Tools wraps a Runner with exit status handling and the kubectl, helm and
// flux invocations shared by the installers and provisioners.
type Tools struct {
	runner   Runner
	binaries Binaries
}

// NewTools returns Tools backed by runner. Empty binary names fall back to
// the defaults.
func NewTools(runner Runner, binaries Binaries) *Tools {
	return &Tools{
		runner:   runner,
		binaries: binaries.withDefaults(),
	}
}

// Exec runs cmd and converts a non-zero exit into a *CommandError.
func (t *Tools) Exec(ctx context.Context, cmd Command) (Result, error) {
	res, err := t.runner.Run(ctx, cmd)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &CommandError{
			Command:  cmd.String(),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}
	return res, nil
}

// Kubectl runs kubectl with args.
func (t *Tools) Kubectl(ctx context.Context, args ...string) error {
	_, err := t.Exec(ctx, Command{Name: t.binaries.Kubectl, Args: args})
	return err
}

// Helm runs helm with args.
func (t *Tools) Helm(ctx context.Context, args ...string) error {
	_, err := t.Exec(ctx, Command{Name: t.binaries.Helm, Args: args})
	return err
}

// Flux runs the flux CLI with args.
func (t *Tools) Flux(ctx context.Context, args ...string) error {
	_, err := t.Exec(ctx, Command{Name: t.binaries.Flux, Args: args})
	return err
}

// ApplyDocument pipes a YAML document into `kubectl apply -f -`. Apply
// creates or updates each object by name.
func (t *Tools) ApplyDocument(ctx context.Context, doc string) error {
	_, err := t.Exec(ctx, Command{
		Name:  t.binaries.Kubectl,
		Args:  []string{"apply", "-f", "-"},
		Stdin: doc,
	})
	if err != nil {
		return fmt.Errorf("failed to apply document: %w", err)
	}
	return nil
}

// NamespaceExists reports whether `kubectl get namespace` finds ns. Any
// non-zero exit is read as absence; only a failure to run kubectl is an
// error.
func (t *Tools) NamespaceExists(ctx context.Context, ns string) (bool, error) {
	res, err := t.runner.Run(ctx, Command{
		Name: t.binaries.Kubectl,
		Args: []string{"get", "namespace", ns},
	})
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// EnsureNamespace creates ns unless it already exists. It reports whether the
// namespace was created by this call. Losing a creation race to another
// client is not an error.
func (t *Tools) EnsureNamespace(ctx context.Context, ns string) (bool, error) {
	exists, err := t.NamespaceExists(ctx, ns)
	if err != nil {
		return false, fmt.Errorf("failed to check namespace %s: %w", ns, err)
	}
	if exists {
		return false, nil
	}
	if err := t.Kubectl(ctx, "create", "namespace", ns); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && IsNamespaceAlreadyExists(cmdErr.Stderr, ns) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create namespace %s: %w", ns, err)
	}
	return true, nil
}
