package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
)

func TestStoreGetReturnsNormalizedCopy(t *testing.T) {
	t.Parallel()

	store, err := New(organization.Organization{
		Slug:     "Acme",
		Name:     "Acme",
		Projects: []organization.Project{{Slug: "web", Name: "Web"}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	org, err := store.GetOrganization(context.Background(), " ACME ")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if org.Slug != "acme" || len(org.Projects) != 1 {
		t.Fatalf("GetOrganization() = %+v", org)
	}
	org.Projects[0].Slug = "mutated"

	again, err := store.GetOrganization(context.Background(), "acme")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if again.Projects[0].Slug != "web" {
		t.Fatalf("store mutated through returned value: %+v", again)
	}
}

func TestStoreGetUnknownReturnsNotFound(t *testing.T) {
	t.Parallel()

	var store Store
	_, err := store.GetOrganization(context.Background(), "missing")
	if !errors.Is(err, organization.ErrNotFound) {
		t.Fatalf("GetOrganization() error = %v, want ErrNotFound", err)
	}
}

func TestStorePutReplacesAndValidates(t *testing.T) {
	t.Parallel()

	var store Store
	ctx := context.Background()
	if err := store.PutOrganization(ctx, organization.Organization{Slug: "acme", Projects: []organization.Project{{Slug: "a"}}}); err != nil {
		t.Fatalf("PutOrganization() error = %v", err)
	}
	if err := store.PutOrganization(ctx, organization.Organization{Slug: "acme"}); err != nil {
		t.Fatalf("PutOrganization() replace error = %v", err)
	}
	org, err := store.GetOrganization(ctx, "acme")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if len(org.Projects) != 0 {
		t.Fatalf("Projects = %v, want replaced with none", org.Projects)
	}
	if err := store.PutOrganization(ctx, organization.Organization{Slug: ""}); !errors.Is(err, organization.ErrInvalid) {
		t.Fatalf("PutOrganization(invalid) error = %v, want ErrInvalid", err)
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var store Store
	if _, err := store.GetOrganization(ctx, "acme"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetOrganization() error = %v, want context.Canceled", err)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store, err := New(organization.Organization{Slug: "acme"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.GetOrganization(context.Background(), "acme")
		}()
		go func() {
			defer wg.Done()
			_ = store.PutOrganization(context.Background(), organization.Organization{Slug: "acme"})
		}()
	}
	wg.Wait()
}
