package mcp

import (
	"sort"
	"testing"
)

func TestToolSchemaRegistryComplete(t *testing.T) {
	for _, name := range ToolNames {
		schema, ok := toolSchemaRegistry[name]
		if !ok {
			t.Errorf("toolSchemaRegistry missing tool: %s", name)
			continue
		}
		if schema.Name != name {
			t.Errorf("schema name mismatch: got %q, want %q", schema.Name, name)
		}
		if schema.Description == "" {
			t.Errorf("tool %s has empty description", name)
		}
	}

	if len(toolSchemaRegistry) != len(ToolNames) {
		t.Errorf("toolSchemaRegistry has %d tools, want %d", len(toolSchemaRegistry), len(ToolNames))
	}
}

func TestToolSchemasRequireProjectPath(t *testing.T) {
	// Every tool takes the project path and nothing else is required.
	for _, name := range ToolNames {
		schema := toolSchemaRegistry[name]

		found := false
		for _, p := range schema.Parameters {
			if p.Name == "projectPath" {
				found = true
				if !p.Required {
					t.Errorf("tool %s: projectPath should be required", name)
				}
				if p.Type != "string" {
					t.Errorf("tool %s: projectPath type = %q, want string", name, p.Type)
				}
			} else if p.Required {
				t.Errorf("tool %s: param %s is marked required but should not be", name, p.Name)
			}
		}
		if !found {
			t.Errorf("tool %s missing projectPath parameter", name)
		}
	}
}

func TestToolNamesMatchRegistry(t *testing.T) {
	registryNames := make([]string, 0, len(toolSchemaRegistry))
	for name := range toolSchemaRegistry {
		registryNames = append(registryNames, name)
	}
	sort.Strings(registryNames)

	declared := make([]string, len(ToolNames))
	copy(declared, ToolNames)
	sort.Strings(declared)

	if len(registryNames) != len(declared) {
		t.Fatalf("schema registry has %d tools, ToolNames has %d", len(registryNames), len(declared))
	}
	for i, name := range registryNames {
		if name != declared[i] {
			t.Errorf("mismatch at index %d: registry=%s, ToolNames=%s", i, name, declared[i])
		}
	}
}

func TestGetToolSchemasOrder(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	schemas := srv.GetToolSchemas()
	if len(schemas) != len(ToolNames) {
		t.Fatalf("GetToolSchemas returned %d schemas, want %d", len(schemas), len(ToolNames))
	}
	for i, name := range ToolNames {
		if schemas[i].Name != name {
			t.Errorf("schemas[%d] = %s, want %s", i, schemas[i].Name, name)
		}
	}
}
