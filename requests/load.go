package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/ramvfs/adapters"
)

// UnmarshalYAMLDefinitions decodes a YAML list of node definitions. Entries
// are re-encoded as JSON so both formats share one decoding path.
func UnmarshalYAMLDefinitions(data []byte, reg *adapters.Registry) (*Definitions, error) {
	var entries []map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}
	if entries == nil {
		entries = []map[string]any{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("re-encode definitions: %w", err)
	}
	return UnmarshalDefinitions(raw, reg)
}

// LoadFile reads definitions from a .json, .yaml or .yml file
func LoadFile(path string, reg *adapters.Registry) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return UnmarshalYAMLDefinitions(data, reg)
	case ".json":
		return UnmarshalDefinitions(data, reg)
	default:
		return nil, fmt.Errorf("unsupported definitions file extension: %s (supported: .yaml, .yml, .json)", ext)
	}
}
