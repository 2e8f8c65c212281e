// Package fake provides a recording toolrunner.Runner for tests.
package fake

import (
	"context"
	"strings"
	"sync"

	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

// Matcher selects the commands a Response applies to.
type Matcher func(cmd toolrunner.Command) bool

// Response is a scripted outcome for matching commands.
type Response struct {
	Match  Matcher
	Result toolrunner.Result
	Err    error
}

// Runner records every command it receives and answers with the first
// matching Response. Unmatched commands succeed with exit code 0.
type Runner struct {
	mu        sync.Mutex
	calls     []toolrunner.Command
	responses []Response
}

// NewRunner returns a Runner with the given scripted responses.
func NewRunner(responses ...Response) *Runner {
	return &Runner{responses: responses}
}

// On adds a scripted response and returns the runner for chaining.
func (r *Runner) On(match Matcher, result toolrunner.Result) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, Response{Match: match, Result: result})
	return r
}

// Run implements toolrunner.Runner.
func (r *Runner) Run(_ context.Context, cmd toolrunner.Command) (toolrunner.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recorded := cmd
	recorded.Args = append([]string(nil), cmd.Args...)
	r.calls = append(r.calls, recorded)

	for _, resp := range r.responses {
		if resp.Match(cmd) {
			return resp.Result, resp.Err
		}
	}
	return toolrunner.Result{}, nil
}

// Calls returns the recorded commands in invocation order.
func (r *Runner) Calls() []toolrunner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]toolrunner.Command(nil), r.calls...)
}

// CommandLines returns the recorded commands rendered as command lines.
func (r *Runner) CommandLines() []string {
	var lines []string
	for _, c := range r.Calls() {
		lines = append(lines, c.String())
	}
	return lines
}

// Documents returns the stdin payloads of the recorded commands, i.e. the
// documents passed to `kubectl apply -f -`.
func (r *Runner) Documents() []string {
	var docs []string
	for _, c := range r.Calls() {
		if c.Stdin != "" {
			docs = append(docs, c.Stdin)
		}
	}
	return docs
}

// Reset forgets the recorded commands. Scripted responses are kept.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Prefix matches commands whose name is name and whose arguments start with
// args.
func Prefix(name string, args ...string) Matcher {
	return func(cmd toolrunner.Command) bool {
		if cmd.Name != name || len(cmd.Args) < len(args) {
			return false
		}
		for i, a := range args {
			if cmd.Args[i] != a {
				return false
			}
		}
		return true
	}
}

// StdinContains matches commands whose stdin contains substr.
func StdinContains(substr string) Matcher {
	return func(cmd toolrunner.Command) bool {
		return cmd.Stdin != "" && strings.Contains(cmd.Stdin, substr)
	}
}

// Failure is a non-zero exit with the given stderr.
func Failure(stderr string) toolrunner.Result {
	return toolrunner.Result{ExitCode: 1, Stderr: stderr}
}
