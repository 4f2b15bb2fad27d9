package provision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSpecs reads the desired-state file. An error here is fatal to the
// run; there is nothing sensible to do without the spec list.
func LoadSpecs(path string) ([]RepoSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository spec file: %w", err)
	}

	var specs []RepoSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse repository spec file: %w", err)
	}

	return specs, nil
}

// SaveSpecs rewrites the desired-state file in full, including entries that
// were not touched this run. Marshalling is deterministic, so saving an
// unchanged list reproduces the same bytes.
func SaveSpecs(path string, specs []RepoSpec) error {
	data, err := yaml.Marshal(specs)
	if err != nil {
		return fmt.Errorf("failed to marshal repository specs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write repository spec file: %w", err)
	}

	return nil
}
