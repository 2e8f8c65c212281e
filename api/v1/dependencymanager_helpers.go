/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// TargetNamespace returns the namespace the dependency is installed into.
// The dependency-level namespace wins over the fallback, which is normally the
// namespace of the owning DependencyManager.
func (d *Dependency) TargetNamespace(fallback string) string {
	if d.Namespace != "" {
		return d.Namespace
	}
	return fallback
}

// ValuesYAML renders Values as a YAML document suitable for `helm --values`.
// It returns nil when no values are declared. Values that are not a JSON
// object cannot be passed to Helm and are reported as an error.
func (d *Dependency) ValuesYAML() ([]byte, error) {
	if d.Values == nil || len(d.Values.Raw) == 0 {
		return nil, nil
	}

	var values map[string]any
	if err := json.Unmarshal(d.Values.Raw, &values); err != nil {
		return nil, fmt.Errorf("values of dependency %q must be an object: %w", d.Name, err)
	}
	if values == nil {
		return nil, nil
	}

	out, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to render values of dependency %q: %w", d.Name, err)
	}
	return out, nil
}

// EnabledDependencies returns the enabled dependencies in declaration order.
func (s *DependencyManagerSpec) EnabledDependencies() []Dependency {
	enabled := make([]Dependency, 0, len(s.Dependencies))
	for _, dep := range s.Dependencies {
		if dep.Enabled {
			enabled = append(enabled, dep)
		}
	}
	return enabled
}

// PruneEnabled reports whether resources removed from git should be pruned.
// Unset sync policies never prune.
func (c *GitOpsConfig) PruneEnabled() bool {
	return c.SyncPolicy != nil && c.SyncPolicy.Prune
}

// AutomatedSync returns the sync policy when automated sync is requested and
// nil otherwise.
func (c *GitOpsConfig) AutomatedSync() *SyncPolicy {
	if c.SyncPolicy == nil || !c.SyncPolicy.Automated {
		return nil
	}
	return c.SyncPolicy
}

// IsBeingDeleted reports whether the object carries a deletion timestamp.
func (dm *DependencyManager) IsBeingDeleted() bool {
	return !dm.DeletionTimestamp.IsZero()
}
