package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bibbank/refinance-service/internal/domain/service"
)

// LoadPolicy returns the default underwriting policy overlaid with the YAML
// file at path. Keys missing from the file keep their defaults. An empty path
// returns the defaults.
func LoadPolicy(path string) (service.Policy, error) {
	policy := service.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return service.Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return service.Policy{}, fmt.Errorf("parse policy file: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return service.Policy{}, fmt.Errorf("validate policy: %w", err)
	}
	return policy, nil
}
