package toolrunner_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner/fake"
)

func TestExec(t *testing.T) {
	tests := map[string]struct {
		result      toolrunner.Result
		runErr      error
		wantErr     string
		wantCmdErr  bool
		wantSuccess bool
	}{
		"zero exit": {
			result:      toolrunner.Result{ExitCode: 0},
			wantSuccess: true,
		},
		"non-zero exit carries stderr": {
			result:     fake.Failure("Error: chart not found"),
			wantErr:    "chart not found",
			wantCmdErr: true,
		},
		"already exists is still a failure": {
			result:     fake.Failure("Error: INSTALLATION FAILED: rendered manifests contain a resource that already exists"),
			wantErr:    "already exists",
			wantCmdErr: true,
		},
		"runner error is passed through": {
			runErr:  errors.New("exec: \"helm\": executable file not found in $PATH"),
			wantErr: "executable file not found",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			runner := fake.NewRunner(fake.Response{
				Match:  fake.Prefix("helm"),
				Result: tc.result,
				Err:    tc.runErr,
			})
			tools := toolrunner.NewTools(runner, toolrunner.Binaries{})

			_, err := tools.Exec(context.Background(), toolrunner.Command{Name: "helm", Args: []string{"version"}})
			if tc.wantSuccess {
				if err != nil {
					t.Fatalf("Exec() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Exec() error = %v, want substring %q", err, tc.wantErr)
			}
			var cmdErr *toolrunner.CommandError
			if got := errors.As(err, &cmdErr); got != tc.wantCmdErr {
				t.Errorf("errors.As(*CommandError) = %v, want %v", got, tc.wantCmdErr)
			}
		})
	}
}

func TestApplyDocument(t *testing.T) {
	runner := fake.NewRunner()
	tools := toolrunner.NewTools(runner, toolrunner.Binaries{Kubectl: "/usr/local/bin/kubectl"})

	doc := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: x\n"
	if err := tools.ApplyDocument(context.Background(), doc); err != nil {
		t.Fatalf("ApplyDocument() unexpected error: %v", err)
	}

	want := []toolrunner.Command{{
		Name:  "/usr/local/bin/kubectl",
		Args:  []string{"apply", "-f", "-"},
		Stdin: doc,
	}}
	if diff := cmp.Diff(want, runner.Calls()); diff != "" {
		t.Errorf("recorded calls mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDocumentFailure(t *testing.T) {
	runner := fake.NewRunner().On(fake.Prefix("kubectl", "apply"), fake.Failure("error validating data"))
	tools := toolrunner.NewTools(runner, toolrunner.Binaries{})

	err := tools.ApplyDocument(context.Background(), "kind: Broken\n")
	if err == nil || !strings.Contains(err.Error(), "error validating data") {
		t.Fatalf("ApplyDocument() error = %v, want stderr in error", err)
	}
}

func TestEnsureNamespace(t *testing.T) {
	tests := map[string]struct {
		runner      *fake.Runner
		wantCreated bool
		wantCalls   []string
		wantErr     bool
	}{
		"namespace present is skipped": {
			runner:    fake.NewRunner(),
			wantCalls: []string{"kubectl get namespace argo"},
		},
		"missing namespace is created": {
			runner: fake.NewRunner().
				On(fake.Prefix("kubectl", "get", "namespace"), fake.Failure(`namespaces "argo" not found`)),
			wantCreated: true,
			wantCalls:   []string{"kubectl get namespace argo", "kubectl create namespace argo"},
		},
		"concurrent creation is tolerated": {
			runner: fake.NewRunner().
				On(fake.Prefix("kubectl", "get", "namespace"), fake.Failure(`namespaces "argo" not found`)).
				On(fake.Prefix("kubectl", "create", "namespace"), fake.Failure(`Error from server (AlreadyExists): namespaces "argo" already exists`)),
			wantCalls: []string{"kubectl get namespace argo", "kubectl create namespace argo"},
		},
		"other existing object is not tolerated": {
			runner: fake.NewRunner().
				On(fake.Prefix("kubectl", "get", "namespace"), fake.Failure(`namespaces "argo" not found`)).
				On(fake.Prefix("kubectl", "create", "namespace"), fake.Failure(`namespaces "argo-events" already exists`)),
			wantCalls: []string{"kubectl get namespace argo", "kubectl create namespace argo"},
			wantErr:   true,
		},
		"create failure": {
			runner: fake.NewRunner().
				On(fake.Prefix("kubectl", "get", "namespace"), fake.Failure("not found")).
				On(fake.Prefix("kubectl", "create", "namespace"), fake.Failure("forbidden")),
			wantCalls: []string{"kubectl get namespace argo", "kubectl create namespace argo"},
			wantErr:   true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tools := toolrunner.NewTools(tc.runner, toolrunner.Binaries{})

			created, err := tools.EnsureNamespace(context.Background(), "argo")
			if (err != nil) != tc.wantErr {
				t.Fatalf("EnsureNamespace() error = %v, wantErr %v", err, tc.wantErr)
			}
			if created != tc.wantCreated {
				t.Errorf("EnsureNamespace() created = %v, want %v", created, tc.wantCreated)
			}
			if diff := cmp.Diff(tc.wantCalls, tc.runner.CommandLines()); diff != "" {
				t.Errorf("command lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommandErrorMessage(t *testing.T) {
	tests := map[string]struct {
		err  *toolrunner.CommandError
		want string
	}{
		"with stderr": {
			err:  &toolrunner.CommandError{Command: "helm repo update a", ExitCode: 1, Stderr: "  boom\n"},
			want: "helm repo update a exited with code 1: boom",
		},
		"without stderr": {
			err:  &toolrunner.CommandError{Command: "flux check --pre", ExitCode: 2},
			want: "flux check --pre exited with code 2",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}
