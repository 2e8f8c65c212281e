package toolrunner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	gocmd "github.com/go-cmd/cmd"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	defaultStartAttempts = 3
	defaultRetryDelay    = 500 * time.Millisecond
)

// ExecRunner runs commands as local processes. Processes that fail to start
// are retried; commands that ran and exited non-zero are not.
type ExecRunner struct {
	attempts uint
	delay    time.Duration
	env      []string
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithAttempts sets how often a process start is attempted.
func WithAttempts(n uint) Option {
	return func(r *ExecRunner) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithRetryDelay sets the delay between start attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(r *ExecRunner) { r.delay = d }
}

// WithEnv sets the environment of spawned processes. When unset the
// operator's environment is inherited.
func WithEnv(env []string) Option {
	return func(r *ExecRunner) { r.env = env }
}

// NewExecRunner returns a Runner that spawns local processes.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		attempts: defaultStartAttempts,
		delay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and blocks until it exits or ctx is done. A cancelled
// context stops the process.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{}, errors.New("command name must not be empty")
	}

	var res Result
	err := retry.Do(
		func() error {
			var runErr error
			res, runErr = r.runOnce(ctx, cmd)
			return runErr
		},
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
	)
	return res, err
}

func (r *ExecRunner) runOnce(ctx context.Context, cmd Command) (Result, error) {
	l := log.FromContext(ctx).WithValues("command", cmd.String())

	proc := gocmd.NewCmdOptions(gocmd.Options{Buffered: true}, cmd.Name, cmd.Args...)
	if r.env != nil {
		proc.Env = r.env
	}

	var statusCh <-chan gocmd.Status
	if cmd.Stdin != "" {
		statusCh = proc.StartWithStdin(strings.NewReader(cmd.Stdin))
	} else {
		statusCh = proc.Start()
	}

	select {
	case <-ctx.Done():
		_ = proc.Stop()
		<-statusCh
		return Result{}, ctx.Err()
	case st := <-statusCh:
		res := Result{
			ExitCode: st.Exit,
			Stdout:   strings.Join(st.Stdout, "\n"),
			Stderr:   strings.Join(st.Stderr, "\n"),
		}
		l.V(1).Info("Command finished", "exit", st.Exit, "runtime", st.Runtime)
		// go-cmd reports exit codes with a nil error; a non-nil error means the
		// process never ran or was killed by a signal.
		if st.Error != nil {
			return res, fmt.Errorf("failed to run %s: %w", cmd.Name, st.Error)
		}
		return res, nil
	}
}
