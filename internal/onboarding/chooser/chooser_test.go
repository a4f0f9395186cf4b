package chooser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	"golang.org/x/text/language"
)

func testRegistry(t *testing.T) task.Registry {
	t.Helper()

	registry, err := task.New([]task.Descriptor{
		{ID: 1, Title: "Create a project", FeatureLocation: task.FeatureOrganization, Location: "projects/new/"},
		{ID: 2, Title: "Send your first event", FeatureLocation: task.FeatureProject, Location: "getting-started"},
		{ID: 3, Title: "Read the docs", FeatureLocation: task.FeatureAbsolute, Location: "https://docs.example.com/"},
	})
	if err != nil {
		t.Fatalf("task.New() error = %v", err)
	}
	return registry
}

func orgWith(projects ...organization.Project) organization.Organization {
	return organization.Organization{Slug: "acme", Name: "Acme", Projects: projects}
}

func TestActivateWithoutProjectsRedirectsToCreateProject(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	for _, query := range []string{"", "2", "99", "junk"} {
		got := Activate(orgWith(), registry, query)
		want := Decision{Outcome: OutcomeRedirect, Reason: ReasonNoProjects, Location: "/organizations/acme/projects/new/"}
		if got != want {
			t.Fatalf("Activate(task=%q) = %+v, want %+v", query, got, want)
		}
	}
}

func TestActivateWithSingleProjectAndMatchingTaskRedirectsToTask(t *testing.T) {
	t.Parallel()

	got := Activate(orgWith(organization.Project{Slug: "web", Name: "Web"}), testRegistry(t), "2")
	want := Decision{Outcome: OutcomeRedirect, Reason: ReasonSingleProject, Location: "/acme/web/getting-started"}
	if got != want {
		t.Fatalf("Activate() = %+v, want %+v", got, want)
	}
}

func TestActivateWithSingleProjectAndNoMatchingTaskRenders(t *testing.T) {
	t.Parallel()

	got := Activate(orgWith(organization.Project{Slug: "web"}), testRegistry(t), "42")
	if got.Outcome != OutcomeRender || got.Location != "" {
		t.Fatalf("Activate() = %+v, want render", got)
	}
}

func TestActivateWithManyProjectsNeverRedirects(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	org := orgWith(organization.Project{Slug: "web"}, organization.Project{Slug: "api"})
	for _, query := range []string{"", "1", "2", "3", "99"} {
		if got := Activate(org, registry, query); got.Outcome != OutcomeRender {
			t.Fatalf("Activate(task=%q) = %+v, want render", query, got)
		}
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	orgs := []organization.Organization{
		orgWith(),
		orgWith(organization.Project{Slug: "web"}),
		orgWith(organization.Project{Slug: "web"}, organization.Project{Slug: "api"}),
	}
	for _, org := range orgs {
		first := Activate(org, registry, "2")
		for i := 0; i < 3; i++ {
			if again := Activate(org, registry, "2"); again != first {
				t.Fatalf("Activate() run %d = %+v, want %+v", i, again, first)
			}
		}
	}
}

func TestRenderSortsProjectsAndBuildsTaskLinks(t *testing.T) {
	t.Parallel()

	org := orgWith(
		organization.Project{Slug: "b", Name: "Beta"},
		organization.Project{Slug: "a", Name: "Alpha"},
	)
	listing, err := Render(org, testRegistry(t), "2", language.English)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := []Row{
		{Project: organization.Project{Slug: "a", Name: "Alpha"}, Location: "/acme/a/getting-started"},
		{Project: organization.Project{Slug: "b", Name: "Beta"}, Location: "/acme/b/getting-started"},
	}
	if !reflect.DeepEqual(listing.Rows, want) {
		t.Fatalf("Rows = %+v, want %+v", listing.Rows, want)
	}
	if listing.Task.ID != 2 {
		t.Fatalf("Task.ID = %d, want 2", listing.Task.ID)
	}
	if org.Projects[0].Slug != "b" {
		t.Fatalf("Render() reordered the organization's projects")
	}
}

func TestRenderAcceptsLooselyFormattedTaskIDs(t *testing.T) {
	t.Parallel()

	org := orgWith(organization.Project{Slug: "web"}, organization.Project{Slug: "api"})
	for _, query := range []string{"2", " 2", "02"} {
		listing, err := Render(org, testRegistry(t), query, language.English)
		if err != nil {
			t.Fatalf("Render(task=%q) error = %v", query, err)
		}
		if len(listing.Rows) != 2 {
			t.Fatalf("Render(task=%q) rows = %d, want 2", query, len(listing.Rows))
		}
	}
}

func TestRenderRejectsInvalidTasks(t *testing.T) {
	t.Parallel()

	org := orgWith(organization.Project{Slug: "web"}, organization.Project{Slug: "api"})
	for _, query := range []string{"", "99", "abc", "1", "3"} {
		listing, err := Render(org, testRegistry(t), query, language.English)
		if !errors.Is(err, ErrInvalidTask) {
			t.Fatalf("Render(task=%q) error = %v, want ErrInvalidTask", query, err)
		}
		if len(listing.Rows) != 0 {
			t.Fatalf("Render(task=%q) returned partial rows %v", query, listing.Rows)
		}
	}
}

func TestActivateThenRenderForManyProjects(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	org := orgWith(
		organization.Project{Slug: "web", Name: "Web"},
		organization.Project{Slug: "api", Name: "API"},
		organization.Project{Slug: "ios", Name: "iOS"},
	)
	if decision := Activate(org, registry, "2"); decision.Outcome != OutcomeRender {
		t.Fatalf("Activate() = %+v, want render", decision)
	}
	listing, err := Render(org, registry, "2", language.English)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var slugs []string
	for _, row := range listing.Rows {
		slugs = append(slugs, row.Project.Slug)
	}
	if want := []string{"api", "ios", "web"}; !reflect.DeepEqual(slugs, want) {
		t.Fatalf("row order = %v, want %v", slugs, want)
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	if OutcomeRender.String() != "render" || OutcomeRedirect.String() != "redirect" {
		t.Fatalf("unexpected outcome names %q %q", OutcomeRender, OutcomeRedirect)
	}
	if got := Outcome(7).String(); got != "outcome(7)" {
		t.Fatalf("Outcome(7).String() = %q", got)
	}
}
