// Package memory provides an in-process organization store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
)

// Store keeps organizations in a map guarded by a RWMutex.
type Store struct {
	mu   sync.RWMutex
	orgs map[string]organization.Organization
}

// New returns a store holding orgs. Invalid organizations are rejected.
func New(orgs ...organization.Organization) (*Store, error) {
	s := &Store{orgs: make(map[string]organization.Organization, len(orgs))}
	for _, org := range orgs {
		if err := s.PutOrganization(context.Background(), org); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// GetOrganization returns a copy of the organization stored under slug.
func (s *Store) GetOrganization(ctx context.Context, slug string) (organization.Organization, error) {
	if err := ctx.Err(); err != nil {
		return organization.Organization{}, err
	}
	slug = organization.NormalizeSlug(slug)
	s.mu.RLock()
	org, ok := s.orgs[slug]
	s.mu.RUnlock()
	if !ok {
		return organization.Organization{}, fmt.Errorf("%w: %s", organization.ErrNotFound, slug)
	}
	return org.Clone(), nil
}

// PutOrganization replaces the organization stored under its slug.
func (s *Store) PutOrganization(ctx context.Context, org organization.Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := organization.Normalize(org)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orgs == nil {
		s.orgs = map[string]organization.Organization{}
	}
	s.orgs[normalized.Slug] = normalized
	return nil
}
