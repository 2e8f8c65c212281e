package dependencymanager

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
	"github.com/zerg-io/dependency-operator/pkg/pipeline"
)

func TestCICDStatus(t *testing.T) {
	t.Parallel()

	cfg := &zergv1.CICDConfig{
		Provider: zergv1.CICDProviderTekton,
		Pipelines: []zergv1.Pipeline{
			{Name: "build"}, {Name: "test"}, {Name: "deploy"},
		},
	}
	configured := func(name string) zergv1.PipelineStatus {
		return zergv1.PipelineStatus{Name: name, Status: zergv1.SyncStatusConfigured}
	}
	failedPipeline := func(name string) zergv1.PipelineStatus {
		return zergv1.PipelineStatus{Name: name, Status: zergv1.SyncStatusFailed}
	}

	tests := map[string]struct {
		err  error
		want []zergv1.PipelineStatus
	}{
		"success": {
			want: []zergv1.PipelineStatus{configured("build"), configured("test"), configured("deploy")},
		},
		"middle pipeline fails": {
			err:  &pipeline.PipelineError{Pipeline: "test", Err: errors.New("denied")},
			want: []zergv1.PipelineStatus{configured("build"), failedPipeline("test")},
		},
		"wrapped pipeline error": {
			err:  fmt.Errorf("setup: %w", &pipeline.PipelineError{Pipeline: "build", Err: errors.New("denied")}),
			want: []zergv1.PipelineStatus{failedPipeline("build")},
		},
		"engine failure": {
			err:  &pipeline.PipelineError{Err: errors.New("forbidden")},
			want: []zergv1.PipelineStatus{failedPipeline("build"), failedPipeline("test"), failedPipeline("deploy")},
		},
		"unattributed error": {
			err:  errors.New("boom"),
			want: []zergv1.PipelineStatus{failedPipeline("build"), failedPipeline("test"), failedPipeline("deploy")},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := cicdStatus(cfg, tc.err)
			if got.Provider != zergv1.CICDProviderTekton {
				t.Errorf("provider = %q", got.Provider)
			}
			if diff := cmp.Diff(tc.want, got.Pipelines); diff != "" {
				t.Errorf("pipelines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGitOpsStatus(t *testing.T) {
	t.Parallel()

	earlier := metav1.NewTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	now := metav1.NewTime(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	flux := &zergv1.GitOpsConfig{Provider: zergv1.GitOpsProviderFlux}

	tests := map[string]struct {
		prev *zergv1.GitOpsStatus
		err  error
		want *zergv1.GitOpsStatus
	}{
		"configured": {
			want: &zergv1.GitOpsStatus{Provider: zergv1.GitOpsProviderFlux, SyncStatus: zergv1.SyncStatusConfigured, LastSync: &now},
		},
		"failure keeps last sync": {
			prev: &zergv1.GitOpsStatus{Provider: zergv1.GitOpsProviderFlux, SyncStatus: zergv1.SyncStatusConfigured, LastSync: &earlier},
			err:  errors.New("bootstrap failed"),
			want: &zergv1.GitOpsStatus{Provider: zergv1.GitOpsProviderFlux, SyncStatus: zergv1.SyncStatusFailed, LastSync: &earlier},
		},
		"failure after provider switch": {
			prev: &zergv1.GitOpsStatus{Provider: zergv1.GitOpsProviderArgoCD, SyncStatus: zergv1.SyncStatusConfigured, LastSync: &earlier},
			err:  errors.New("bootstrap failed"),
			want: &zergv1.GitOpsStatus{Provider: zergv1.GitOpsProviderFlux, SyncStatus: zergv1.SyncStatusFailed},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, gitopsStatus(flux, tc.prev, tc.err, now)); diff != "" {
				t.Errorf("gitopsStatus() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
