package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithLookup loads configuration using lookup instead of the process
// environment. A nil lookup behaves like an empty environment.
func ParseEnvWithLookup(target any, lookup func(string) (string, bool)) error {
	environment := map[string]string{}
	if lookup != nil {
		environment = lookupEnvironment(target, lookup)
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func lookupEnvironment(target any, lookup func(string) (string, bool)) map[string]string {
	keys, err := env.GetFieldParams(target)
	if err != nil {
		return map[string]string{}
	}
	environment := make(map[string]string, len(keys))
	for _, field := range keys {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}
		if value, ok := lookup(key); ok {
			environment[key] = value
		}
	}
	return environment
}
