// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*EndpointRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg EndpointRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

func SaveRegistry(path string, reg *EndpointRegistry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the endpoint with the given id.
func (r *EndpointRegistry) Find(id string) (*Endpoint, bool) {
	for i := range r.Endpoints {
		if r.Endpoints[i].ID == id {
			return &r.Endpoints[i], true
		}
	}
	return nil, false
}

// Check reports structural problems: empty or duplicate ids and missing routes.
func (r *EndpointRegistry) Check() []string {
	var problems []string
	seen := make(map[string]bool, len(r.Endpoints))
	for i, ep := range r.Endpoints {
		if ep.ID == "" {
			problems = append(problems, fmt.Sprintf("endpoints[%d]: id is empty", i))
			continue
		}
		if seen[ep.ID] {
			problems = append(problems, fmt.Sprintf("endpoints[%d]: duplicate id %q", i, ep.ID))
		}
		seen[ep.ID] = true
		if ep.Method == "" || ep.Path == "" {
			problems = append(problems, fmt.Sprintf("%s: method and path are required", ep.ID))
		}
	}
	return problems
}
