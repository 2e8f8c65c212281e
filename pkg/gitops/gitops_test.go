package gitops

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/manifest"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner/fake"
)

func fluxConfig() *zergv1.GitOpsConfig {
	return &zergv1.GitOpsConfig{
		Provider:   zergv1.GitOpsProviderFlux,
		Repository: "https://github.com/org/fleet",
		Branch:     "main",
		Path:       "./clusters/prod",
	}
}

func argoConfig(policy *zergv1.SyncPolicy) *zergv1.GitOpsConfig {
	return &zergv1.GitOpsConfig{
		Provider:   zergv1.GitOpsProviderArgoCD,
		Repository: "https://github.com/org/apps",
		Branch:     "main",
		Path:       "apps",
		SyncPolicy: policy,
	}
}

func decode(t *testing.T, stream string) []*unstructured.Unstructured {
	t.Helper()
	objs, err := manifest.Objects(stream)
	if err != nil {
		t.Fatalf("Objects() unexpected error: %v", err)
	}
	return objs
}

func TestSetupFlux(t *testing.T) {
	t.Parallel()

	bootstrap := "flux bootstrap git --url https://github.com/org/fleet --branch main --path ./clusters/prod --namespace flux-system"

	tests := map[string]struct {
		runner    *fake.Runner
		wantErr   string
		wantCalls []string
	}{
		"prerequisites met": {
			runner:    fake.NewRunner(),
			wantCalls: []string{"flux check --pre", bootstrap, "kubectl apply -f -"},
		},
		"failed check installs flux": {
			runner:    fake.NewRunner().On(fake.Prefix("flux", "check"), fake.Failure("✗ flux-system namespace not found")),
			wantCalls: []string{"flux check --pre", "flux install", bootstrap, "kubectl apply -f -"},
		},
		"install failure": {
			runner: fake.NewRunner().
				On(fake.Prefix("flux", "check"), fake.Failure("not found")).
				On(fake.Prefix("flux", "install"), fake.Failure("connection refused")),
			wantErr:   "flux install failed",
			wantCalls: []string{"flux check --pre", "flux install"},
		},
		"bootstrap failure": {
			runner:    fake.NewRunner().On(fake.Prefix("flux", "bootstrap"), fake.Failure("authentication required")),
			wantErr:   "flux bootstrap failed",
			wantCalls: []string{"flux check --pre", bootstrap},
		},
		"apply failure": {
			runner:    fake.NewRunner().On(fake.Prefix("kubectl", "apply"), fake.Failure("no matches for kind \"GitRepository\"")),
			wantErr:   "failed to apply flux sync objects",
			wantCalls: []string{"flux check --pre", bootstrap, "kubectl apply -f -"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := NewProvisioner(toolrunner.NewTools(tc.runner, toolrunner.Binaries{}), Options{})

			err := p.Setup(context.Background(), fluxConfig(), "team-a")
			if tc.wantErr == "" && err != nil {
				t.Fatalf("Setup() unexpected error: %v", err)
			}
			if tc.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tc.wantErr)) {
				t.Fatalf("Setup() error = %v, want substring %q", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.wantCalls, tc.runner.CommandLines()); diff != "" {
				t.Errorf("command lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFluxDocuments(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		policy    *zergv1.SyncPolicy
		wantPrune bool
	}{
		"no sync policy never prunes": {},
		"prune requested": {
			policy:    &zergv1.SyncPolicy{Prune: true},
			wantPrune: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := fluxConfig()
			cfg.SyncPolicy = tc.policy

			doc, err := FluxDocuments(cfg, "team-a")
			if err != nil {
				t.Fatalf("FluxDocuments() unexpected error: %v", err)
			}
			objs := decode(t, doc)
			if len(objs) != 2 {
				t.Fatalf("got %d objects, want 2", len(objs))
			}

			repo, ks := objs[0], objs[1]
			for _, o := range objs {
				if got := o.GetLabels()["app.kubernetes.io/component"]; got != "gitops" {
					t.Errorf("%s component label = %q, want gitops", o.GetKind(), got)
				}
			}
			if repo.GetKind() != "GitRepository" || repo.GetName() != "zerg-repo" || repo.GetNamespace() != "team-a" {
				t.Errorf("unexpected first object %s %s/%s", repo.GetKind(), repo.GetNamespace(), repo.GetName())
			}
			if repo.GetAPIVersion() != "source.toolkit.fluxcd.io/v1" {
				t.Errorf("GitRepository apiVersion = %s", repo.GetAPIVersion())
			}
			url, _, _ := unstructured.NestedString(repo.Object, "spec", "url")
			branch, _, _ := unstructured.NestedString(repo.Object, "spec", "ref", "branch")
			interval, _, _ := unstructured.NestedString(repo.Object, "spec", "interval")
			if url != "https://github.com/org/fleet" || branch != "main" || interval != "5m0s" {
				t.Errorf("GitRepository spec url=%q branch=%q interval=%q", url, branch, interval)
			}
			if _, found := repo.Object["status"]; found {
				t.Error("GitRepository document must not carry status")
			}

			if ks.GetKind() != "Kustomization" || ks.GetName() != "zerg-kustomization" {
				t.Errorf("unexpected second object %s/%s", ks.GetKind(), ks.GetName())
			}
			prune, _, _ := unstructured.NestedBool(ks.Object, "spec", "prune")
			if prune != tc.wantPrune {
				t.Errorf("prune = %v, want %v", prune, tc.wantPrune)
			}
			target, _, _ := unstructured.NestedString(ks.Object, "spec", "targetNamespace")
			source, _, _ := unstructured.NestedString(ks.Object, "spec", "sourceRef", "name")
			path, _, _ := unstructured.NestedString(ks.Object, "spec", "path")
			if target != "team-a" || source != "zerg-repo" || path != "./clusters/prod" {
				t.Errorf("Kustomization spec target=%q source=%q path=%q", target, source, path)
			}
		})
	}
}

func TestSetupArgoCD(t *testing.T) {
	t.Parallel()

	install := "kubectl apply -n argocd -f " + DefaultArgoCDInstallURL

	tests := map[string]struct {
		runner    *fake.Runner
		opts      Options
		wantErr   string
		wantCalls []string
	}{
		"namespace present": {
			runner:    fake.NewRunner(),
			wantCalls: []string{"kubectl get namespace argocd", install, "kubectl apply -f -"},
		},
		"namespace created": {
			runner: fake.NewRunner().On(fake.Prefix("kubectl", "get", "namespace"), fake.Failure("not found")),
			wantCalls: []string{
				"kubectl get namespace argocd", "kubectl create namespace argocd", install, "kubectl apply -f -",
			},
		},
		"custom install manifest": {
			runner:    fake.NewRunner(),
			opts:      Options{ArgoCDInstallURL: "https://mirror.internal/argocd.yaml"},
			wantCalls: []string{"kubectl get namespace argocd", "kubectl apply -n argocd -f https://mirror.internal/argocd.yaml", "kubectl apply -f -"},
		},
		"install failure": {
			runner:    fake.NewRunner().On(fake.Prefix("kubectl", "apply", "-n"), fake.Failure("unable to recognize")),
			wantErr:   "argocd install failed",
			wantCalls: []string{"kubectl get namespace argocd", install},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := NewProvisioner(toolrunner.NewTools(tc.runner, toolrunner.Binaries{}), tc.opts)

			err := p.Setup(context.Background(), argoConfig(nil), "team-a")
			if tc.wantErr == "" && err != nil {
				t.Fatalf("Setup() unexpected error: %v", err)
			}
			if tc.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tc.wantErr)) {
				t.Fatalf("Setup() error = %v, want substring %q", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.wantCalls, tc.runner.CommandLines()); diff != "" {
				t.Errorf("command lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplicationDocument(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		policy        *zergv1.SyncPolicy
		wantAutomated map[string]any
	}{
		"automated with prune and self heal": {
			policy:        &zergv1.SyncPolicy{Automated: true, Prune: true, SelfHeal: true},
			wantAutomated: map[string]any{"prune": true, "selfHeal": true},
		},
		"automated without self heal": {
			policy:        &zergv1.SyncPolicy{Automated: true, Prune: true},
			wantAutomated: map[string]any{"prune": true, "selfHeal": false},
		},
		"manual sync omits the block": {
			policy: &zergv1.SyncPolicy{Automated: false, Prune: true, SelfHeal: true},
		},
		"no policy omits the block": {},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc, err := ApplicationDocument(argoConfig(tc.policy), "team-a")
			if err != nil {
				t.Fatalf("ApplicationDocument() unexpected error: %v", err)
			}
			objs := decode(t, doc)
			if len(objs) != 1 {
				t.Fatalf("got %d objects, want 1", len(objs))
			}
			app := objs[0]

			if app.GetName() != "zerg-app" || app.GetNamespace() != "argocd" {
				t.Errorf("Application = %s/%s, want argocd/zerg-app", app.GetNamespace(), app.GetName())
			}
			wantSpec := map[string]any{
				"project": "default",
				"source": map[string]any{
					"repoURL":        "https://github.com/org/apps",
					"targetRevision": "main",
					"path":           "apps",
				},
				"destination": map[string]any{
					"server":    "https://kubernetes.default.svc",
					"namespace": "team-a",
				},
			}
			if tc.wantAutomated != nil {
				wantSpec["syncPolicy"] = map[string]any{"automated": tc.wantAutomated}
			}
			if diff := cmp.Diff(wantSpec, app.Object["spec"]); diff != "" {
				t.Errorf("spec mismatch (-want +got):\n%s", diff)
			}
			if tc.wantAutomated == nil && strings.Contains(doc, "syncPolicy") {
				t.Errorf("document must not mention syncPolicy:\n%s", doc)
			}
		})
	}
}

func TestSetupUnsupportedProvider(t *testing.T) {
	t.Parallel()

	runner := fake.NewRunner()
	p := NewProvisioner(toolrunner.NewTools(runner, toolrunner.Binaries{}), Options{})

	err := p.Setup(context.Background(), &zergv1.GitOpsConfig{Provider: "jenkins-x"}, "team-a")
	if err == nil || !strings.Contains(err.Error(), `unsupported gitops provider "jenkins-x"`) {
		t.Fatalf("Setup() error = %v", err)
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("expected no tool calls, got %v", runner.CommandLines())
	}
}
