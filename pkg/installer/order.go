package installer

import (
	"strings"

	zergv1 "github.com/zerg-io/dependency-operator/api/v1"
)

// Order returns the enabled dependencies in install order. A dependency
// follows everything it depends on; otherwise declaration order is kept, so
// a list without forward references comes back unchanged. References to
// disabled dependencies are ignored. Unknown references, duplicate names
// and cycles are reported as a *ConfigError.
func Order(spec *zergv1.DependencyManagerSpec) ([]zergv1.Dependency, error) {
	declared := make(map[string]bool, len(spec.Dependencies))
	for _, d := range spec.Dependencies {
		declared[d.Name] = true
	}

	enabled := spec.EnabledDependencies()
	index := make(map[string]int, len(enabled))
	for i, d := range enabled {
		if _, dup := index[d.Name]; dup {
			return nil, configErrorf(d.Name, "dependency %q is declared more than once", d.Name)
		}
		index[d.Name] = i
	}

	// Kahn's algorithm, always releasing the earliest declared ready node.
	indegree := make([]int, len(enabled))
	dependents := make([][]int, len(enabled))
	for i, d := range enabled {
		for _, ref := range d.DependsOn {
			j, ok := index[ref]
			if !ok {
				if declared[ref] {
					continue
				}
				return nil, configErrorf(d.Name, "dependency %q depends on unknown dependency %q", d.Name, ref)
			}
			if j == i {
				return nil, configErrorf(d.Name, "dependency %q depends on itself", d.Name)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	done := make([]bool, len(enabled))
	ordered := make([]zergv1.Dependency, 0, len(enabled))
	for len(ordered) < len(enabled) {
		next := -1
		for i := range enabled {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var cycle []string
			for i, d := range enabled {
				if !done[i] {
					cycle = append(cycle, d.Name)
				}
			}
			return nil, configErrorf(cycle[0], "dependency cycle between %s", strings.Join(cycle, ", "))
		}
		done[next] = true
		ordered = append(ordered, enabled[next])
		for _, k := range dependents[next] {
			indegree[k]--
		}
	}
	return ordered, nil
}
