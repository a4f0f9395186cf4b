// Package seed loads organization fixtures from YAML into a store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"gopkg.in/yaml.v3"
)

type document struct {
	Organizations []organization.Organization `yaml:"organizations"`
}

// Parse reads and validates fixtures. Slugs must be unique across the file.
func Parse(r io.Reader) ([]organization.Organization, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	out := make([]organization.Organization, 0, len(doc.Organizations))
	seen := make(map[string]struct{}, len(doc.Organizations))
	for _, org := range doc.Organizations {
		normalized, err := organization.Normalize(org)
		if err != nil {
			return nil, fmt.Errorf("parse seed: %w", err)
		}
		if _, dup := seen[normalized.Slug]; dup {
			return nil, fmt.Errorf("parse seed: %w: duplicate organization %q", organization.ErrInvalid, normalized.Slug)
		}
		seen[normalized.Slug] = struct{}{}
		out = append(out, normalized)
	}
	return out, nil
}

// Apply writes every organization to w and returns how many were written.
func Apply(ctx context.Context, w organization.Writer, orgs []organization.Organization) (int, error) {
	if w == nil {
		return 0, errors.New("seed writer is required")
	}
	for idx, org := range orgs {
		if err := w.PutOrganization(ctx, org); err != nil {
			return idx, fmt.Errorf("seed organization %s: %w", org.Slug, err)
		}
	}
	return len(orgs), nil
}

// ApplyFile parses path and writes its organizations to w.
func ApplyFile(ctx context.Context, w organization.Writer, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed: %w", err)
	}
	defer file.Close()
	orgs, err := Parse(file)
	if err != nil {
		return 0, err
	}
	return Apply(ctx, w, orgs)
}
