package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"ONBOARDING_TEST_PORT" envDefault:"123"`
	Name    string        `env:"ONBOARDING_TEST_NAME" envDefault:"default"`
	Timeout time.Duration `env:"ONBOARDING_TEST_TIMEOUT" envDefault:"2s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("expected default timeout 2s, got %s", cfg.Timeout)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ONBOARDING_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithLookupUsesLookupValues(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"ONBOARDING_TEST_PORT": "8080",
		"ONBOARDING_TEST_NAME": "lookup",
	}
	var cfg envTestConfig
	err := ParseEnvWithLookup(&cfg, func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("ParseEnvWithLookup() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d, want %d", cfg.Port, 8080)
	}
	if cfg.Name != "lookup" {
		t.Fatalf("Name = %q, want %q", cfg.Name, "lookup")
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("Timeout = %s, want %s", cfg.Timeout, 2*time.Second)
	}
}

func TestParseEnvWithNilLookupAppliesDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvWithLookup(&cfg, nil); err != nil {
		t.Fatalf("ParseEnvWithLookup() error = %v", err)
	}
	if cfg.Port != 123 || cfg.Name != "default" {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
