// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// TaskTypes returns the task types of every registered activity, sorted.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	sort.Strings(out)
	return out
}

// Find looks up an activity by task type.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Verify reports task types that have a handler but no activity, and
// activities with no handler.
func (r *ActivityRegistry) Verify(handled []string) error {
	known := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		known[a.TaskType] = true
	}

	var unregistered, unhandled []string
	seen := make(map[string]bool, len(handled))
	for _, t := range handled {
		seen[t] = true
		if !known[t] {
			unregistered = append(unregistered, t)
		}
	}
	for _, t := range r.TaskTypes() {
		if !seen[t] {
			unhandled = append(unhandled, t)
		}
	}
	sort.Strings(unregistered)

	var problems []string
	if len(unregistered) > 0 {
		problems = append(problems, "not in registry: "+strings.Join(unregistered, ", "))
	}
	if len(unhandled) > 0 {
		problems = append(problems, "no handler: "+strings.Join(unhandled, ", "))
	}
	if len(problems) > 0 {
		return fmt.Errorf("activity registry mismatch (%s)", strings.Join(problems, "; "))
	}
	return nil
}
