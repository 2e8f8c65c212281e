package toolrunner

import (
	"context"
	"fmt"
	"strings"
)

// Command is a single invocation of an external binary.
type Command struct {
	Name  string
	Args  []string
	Stdin string
}

// String renders the command line without stdin.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands synchronously. An error is returned only when the
// command could not be run at all; a non-zero exit is reported in Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// CommandError reports a command that exited with a non-zero status.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, stderr)
}

// IsNamespaceAlreadyExists reports whether stderr of `kubectl create
// namespace` says that ns exists, i.e. `namespaces "argo" already exists`.
func IsNamespaceAlreadyExists(stderr, ns string) bool {
	return strings.Contains(stderr, fmt.Sprintf(`namespaces %q already exists`, ns))
}
