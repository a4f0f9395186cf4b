package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected path error")
	}
}

func TestPutAndGetOrganizationPreservesProjectOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	want := organization.Organization{
		Slug: "acme",
		Name: "Acme",
		Projects: []organization.Project{
			{Slug: "web", Name: "Web"},
			{Slug: "api", Name: "API"},
			{Slug: "ios", Name: "iOS"},
		},
	}
	if err := store.PutOrganization(ctx, want); err != nil {
		t.Fatalf("PutOrganization() error = %v", err)
	}

	got, err := store.GetOrganization(ctx, "ACME")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if got.Slug != "acme" || got.Name != "Acme" {
		t.Fatalf("GetOrganization() = %+v", got)
	}
	if len(got.Projects) != len(want.Projects) {
		t.Fatalf("projects = %v, want %v", got.Projects, want.Projects)
	}
	for idx := range want.Projects {
		if got.Projects[idx] != want.Projects[idx] {
			t.Fatalf("projects[%d] = %+v, want %+v", idx, got.Projects[idx], want.Projects[idx])
		}
	}
}

func TestPutOrganizationReplacesProjects(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.PutOrganization(ctx, organization.Organization{
		Slug:     "acme",
		Projects: []organization.Project{{Slug: "web"}, {Slug: "api"}},
	}); err != nil {
		t.Fatalf("PutOrganization() error = %v", err)
	}
	if err := store.PutOrganization(ctx, organization.Organization{
		Slug:     "acme",
		Name:     "Renamed",
		Projects: []organization.Project{{Slug: "api"}},
	}); err != nil {
		t.Fatalf("PutOrganization() replace error = %v", err)
	}

	got, err := store.GetOrganization(ctx, "acme")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if got.Name != "Renamed" || len(got.Projects) != 1 || got.Projects[0].Slug != "api" {
		t.Fatalf("GetOrganization() = %+v", got)
	}
}

func TestGetOrganizationWithoutProjects(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.PutOrganization(ctx, organization.Organization{Slug: "empty"}); err != nil {
		t.Fatalf("PutOrganization() error = %v", err)
	}
	got, err := store.GetOrganization(ctx, "empty")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if got.Projects == nil || len(got.Projects) != 0 {
		t.Fatalf("Projects = %#v, want empty non-nil slice", got.Projects)
	}
}

func TestGetOrganizationUnknownReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetOrganization(context.Background(), "missing"); !errors.Is(err, organization.ErrNotFound) {
		t.Fatalf("GetOrganization() error = %v, want ErrNotFound", err)
	}
}

func TestPutOrganizationRejectsInvalid(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.PutOrganization(context.Background(), organization.Organization{
		Slug:     "acme",
		Projects: []organization.Project{{Slug: "web"}, {Slug: "web"}},
	})
	if !errors.Is(err, organization.ErrInvalid) {
		t.Fatalf("PutOrganization() error = %v, want ErrInvalid", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "onboarding.db")
	ctx := context.Background()
	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := first.PutOrganization(ctx, organization.Organization{Slug: "acme", Projects: []organization.Project{{Slug: "web"}}}); err != nil {
		t.Fatalf("PutOrganization() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })
	got, err := second.GetOrganization(ctx, "acme")
	if err != nil {
		t.Fatalf("GetOrganization() error = %v", err)
	}
	if len(got.Projects) != 1 {
		t.Fatalf("Projects = %v, want 1", got.Projects)
	}
}

func TestNilStore(t *testing.T) {
	t.Parallel()

	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := store.GetOrganization(context.Background(), "acme"); err == nil {
		t.Fatal("expected unconfigured store error")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "onboarding.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
