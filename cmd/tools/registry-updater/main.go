// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"player-api/internal/common/validation"
	"player-api/pkg/registry"
)

const defaultRegistryPath = "configs/endpoint-registry.json"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	exportPath := exportCmd.String("path", defaultRegistryPath, "Where to write the built-in catalog")

	// Update command flags
	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Endpoint ID to update (e.g., player-summary)")
	field := updateCmd.String("field", "", "Field to update (description, method, path)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		n, err := exportRegistry(*exportPath)
		if err != nil {
			fmt.Printf("Error exporting registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d endpoints to %s\n", n, *exportPath)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateEndpoint(*updatePath, *idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating endpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated endpoint %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		n, problems, err := validateRegistry(*validatePath)
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d endpoints.\n", n)

	case "help":
		fallthrough
	default:
		help()
	}
}

// exportRegistry writes the built-in catalog and returns its endpoint count.
func exportRegistry(path string) (int, error) {
	reg := registry.Default()
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	if err := saveRegistry(reg, path); err != nil {
		return 0, err
	}
	return len(reg.Endpoints), nil
}

func updateEndpoint(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	ep, ok := reg.Find(id)
	if !ok {
		return fmt.Errorf("endpoint with ID %s not found", id)
	}
	switch field {
	case "description":
		ep.Description = value
	case "method":
		ep.Method = value
	case "path":
		ep.Path = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, path)
}

// validateRegistry checks structure and that every input schema compiles.
// It returns the endpoint count and any structural problems found.
func validateRegistry(path string) (int, []string, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Endpoints) == 0 {
		return 0, nil, fmt.Errorf("registry contains no endpoints")
	}
	if problems := reg.Check(); len(problems) > 0 {
		return len(reg.Endpoints), problems, fmt.Errorf("%d structural problems", len(problems))
	}

	for _, ep := range reg.Endpoints {
		if len(ep.InputSchema) == 0 {
			continue
		}
		if _, err := validation.CompileSchema(ep.InputSchema); err != nil {
			return len(reg.Endpoints), nil, fmt.Errorf("endpoint %s: %w", ep.ID, err)
		}
	}
	return len(reg.Endpoints), nil, nil
}

// saveRegistry creates the parent directory before writing
func saveRegistry(reg *registry.EndpointRegistry, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := registry.SaveRegistry(path, reg); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  export   Write the built-in endpoint catalog to a JSON file
  update   Update an existing endpoint's field
  validate Validate a registry file and compile its schemas
  help     Show this help message

Examples:
  registry-updater export -path configs/endpoint-registry.json
  registry-updater update -id player-summary -field description -value "Career summary"
  registry-updater validate -path configs/endpoint-registry.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
