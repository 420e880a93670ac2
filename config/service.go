package config

import (
	"fmt"
	"slices"
)

// ServiceName names the gateway in logs, telemetry and config file lookup.
const ServiceName = "validator-gateway"

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
}

// ApplyDefaults applies default values to the service identity.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// Validate validates the service identity.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("service.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("service.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	return nil
}
