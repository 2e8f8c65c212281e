// Package config loads the operator configuration file.
//
// The file is optional: every setting has a default, and any setting can be
// overridden with an environment variable named DEPENDENCY_OPERATOR_ plus
// the upper-cased key path, e.g. DEPENDENCY_OPERATOR_RECONCILE_READYREQUEUE.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/zerg-io/dependency-operator/pkg/gitops"
	"github.com/zerg-io/dependency-operator/pkg/installer"
	"github.com/zerg-io/dependency-operator/pkg/pipeline"
	"github.com/zerg-io/dependency-operator/pkg/toolrunner"
)

const envPrefix = "DEPENDENCY_OPERATOR"

// Config is the operator configuration.
type Config struct {
	Reconcile Reconcile `mapstructure:"reconcile"`
	Tools     Tools     `mapstructure:"tools"`
	Manifests Manifests `mapstructure:"manifests"`
	// Operators extends the built-in operator registry, keyed by the
	// dependency name that selects the entry.
	Operators map[string]installer.OperatorChart `mapstructure:"operators" validate:"dive"`
}

// Reconcile holds the requeue policy and worker count.
type Reconcile struct {
	// FailureRequeue is the delay after a pass that ended in Failed.
	FailureRequeue time.Duration `mapstructure:"failureRequeue" validate:"gt=0"`
	// ReadyRequeue is the delay before a Ready resource is verified again.
	ReadyRequeue time.Duration `mapstructure:"readyRequeue" validate:"gt=0"`
	// ErrorRequeue is the delay after an error that could not be written
	// to status.
	ErrorRequeue            time.Duration `mapstructure:"errorRequeue" validate:"gt=0"`
	MaxConcurrentReconciles int           `mapstructure:"maxConcurrentReconciles" validate:"min=1"`
}

// Tools names the external binaries and their working directory.
type Tools struct {
	Kubectl       string `mapstructure:"kubectl" validate:"required"`
	Helm          string `mapstructure:"helm" validate:"required"`
	Flux          string `mapstructure:"flux" validate:"required"`
	ValuesDir     string `mapstructure:"valuesDir"`
	StartAttempts uint   `mapstructure:"startAttempts" validate:"min=1"`
}

// Manifests locates the release manifests of the provisioned engines.
type Manifests struct {
	ArgoCDInstall        string `mapstructure:"argocdInstall" validate:"required,url"`
	TektonRelease        string `mapstructure:"tektonRelease" validate:"required,url"`
	TektonDashboard      string `mapstructure:"tektonDashboard" validate:"required,url"`
	ArgoWorkflowsInstall string `mapstructure:"argoWorkflowsInstall" validate:"required,url"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Reconcile: Reconcile{
			FailureRequeue:          5 * time.Minute,
			ReadyRequeue:            time.Hour,
			ErrorRequeue:            time.Minute,
			MaxConcurrentReconciles: 5,
		},
		Tools: Tools{
			Kubectl:       toolrunner.DefaultKubectl,
			Helm:          toolrunner.DefaultHelm,
			Flux:          toolrunner.DefaultFlux,
			StartAttempts: 3,
		},
		Manifests: Manifests{
			ArgoCDInstall:        gitops.DefaultArgoCDInstallURL,
			TektonRelease:        pipeline.DefaultTektonReleaseURL,
			TektonDashboard:      pipeline.DefaultTektonDashboardURL,
			ArgoWorkflowsInstall: pipeline.DefaultArgoWorkflowsInstallURL,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("reconcile.failureRequeue", d.Reconcile.FailureRequeue)
	v.SetDefault("reconcile.readyRequeue", d.Reconcile.ReadyRequeue)
	v.SetDefault("reconcile.errorRequeue", d.Reconcile.ErrorRequeue)
	v.SetDefault("reconcile.maxConcurrentReconciles", d.Reconcile.MaxConcurrentReconciles)
	v.SetDefault("tools.kubectl", d.Tools.Kubectl)
	v.SetDefault("tools.helm", d.Tools.Helm)
	v.SetDefault("tools.flux", d.Tools.Flux)
	v.SetDefault("tools.valuesDir", d.Tools.ValuesDir)
	v.SetDefault("tools.startAttempts", d.Tools.StartAttempts)
	v.SetDefault("manifests.argocdInstall", d.Manifests.ArgoCDInstall)
	v.SetDefault("manifests.tektonRelease", d.Manifests.TektonRelease)
	v.SetDefault("manifests.tektonDashboard", d.Manifests.TektonDashboard)
	v.SetDefault("manifests.argoWorkflowsInstall", d.Manifests.ArgoWorkflowsInstall)
}

// Load reads the configuration from path, which may be empty, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Binaries returns the tool binaries for toolrunner.NewTools.
func (c *Config) Binaries() toolrunner.Binaries {
	return toolrunner.Binaries{
		Kubectl: c.Tools.Kubectl,
		Helm:    c.Tools.Helm,
		Flux:    c.Tools.Flux,
	}
}

// InstallerOptions returns the options of the installation dispatcher.
func (c *Config) InstallerOptions() installer.Options {
	return installer.Options{
		ValuesDir: c.Tools.ValuesDir,
		Operators: c.Operators,
	}
}

// GitOpsOptions returns the options of the GitOps provisioner.
func (c *Config) GitOpsOptions() gitops.Options {
	return gitops.Options{ArgoCDInstallURL: c.Manifests.ArgoCDInstall}
}

// PipelineOptions returns the options of the pipeline provisioner.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		TektonReleaseURL:        c.Manifests.TektonRelease,
		TektonDashboardURL:      c.Manifests.TektonDashboard,
		ArgoWorkflowsInstallURL: c.Manifests.ArgoWorkflowsInstall,
	}
}
