package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, component templ.Component, ctx context.Context) string {
	t.Helper()

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestLayoutWrapsChildrenAndAppliesNarrowClass(t *testing.T) {
	t.Parallel()

	child := ChooserPage(ChooserView{TaskTitle: "Send"}, nil)
	ctx := templ.WithChildren(context.Background(), child)
	got := render(t, Layout(LayoutOptions{Title: "Projects", AppName: "Onboarding", Lang: "en-US", Narrow: true}), ctx)

	for _, marker := range []string{`<html lang="en-US">`, "<title>Projects | Onboarding</title>", `<body class="narrow">`, `class="project-chooser"`} {
		if !strings.Contains(got, marker) {
			t.Fatalf("layout missing %q in %q", marker, got)
		}
	}
}

func TestLayoutWithoutNarrowFlag(t *testing.T) {
	t.Parallel()

	got := render(t, Layout(LayoutOptions{AppName: "Onboarding"}), context.Background())
	if strings.Contains(got, NarrowBodyClass) {
		t.Fatalf("layout rendered narrow class: %q", got)
	}
	if !strings.Contains(got, "<title>Onboarding</title>") {
		t.Fatalf("layout title missing: %q", got)
	}
}

func TestChooserPageRendersRowsInOrderAndEscapes(t *testing.T) {
	t.Parallel()

	got := render(t, ChooserPage(ChooserView{
		TaskTitle: "Send your first event",
		Rows: []ChooserRow{
			{Name: "Alpha", Slug: "a", URL: "/acme/a/getting-started/"},
			{Name: "<Beta>", Slug: "b", URL: "/acme/b/getting-started/"},
		},
	}, nil), context.Background())

	alpha := strings.Index(got, `href="/acme/a/getting-started/"`)
	beta := strings.Index(got, `href="/acme/b/getting-started/"`)
	if alpha < 0 || beta < 0 || alpha > beta {
		t.Fatalf("rows out of order or missing: %q", got)
	}
	if strings.Contains(got, "<Beta>") || !strings.Contains(got, "&lt;Beta&gt;") {
		t.Fatalf("project name not escaped: %q", got)
	}
}

func TestChooserPageRendersEmptyState(t *testing.T) {
	t.Parallel()

	got := render(t, ChooserPage(ChooserView{}, nil), context.Background())
	if !strings.Contains(got, `class="empty"`) || strings.Contains(got, "project-list") {
		t.Fatalf("unexpected empty chooser markup: %q", got)
	}
}

func TestChecklistPageMarksExternalAndOptionalTasks(t *testing.T) {
	t.Parallel()

	got := render(t, ChecklistPage(ChecklistView{
		OrganizationName: "Acme",
		Items: []ChecklistItem{
			{ID: 1, Title: "Create", URL: "/organizations/acme/projects/new/"},
			{ID: 7, Title: "Docs", URL: "https://docs.example.com/", External: true, Skippable: true, Requires: []string{"Create"}},
		},
	}, nil), context.Background())

	for _, marker := range []string{`data-task="1"`, `data-task="7"`, `target="_blank"`, `class="optional"`, `class="requires"`} {
		if !strings.Contains(got, marker) {
			t.Fatalf("checklist missing %q in %q", marker, got)
		}
	}
}

func TestErrorStateRendersStatusAndBackLink(t *testing.T) {
	t.Parallel()

	got := render(t, ErrorState(ErrorView{StatusCode: 400, Message: "bad task", BackURL: "/organizations/acme/onboarding/"}, nil), context.Background())
	for _, marker := range []string{`data-status="400"`, "bad task", `href="/organizations/acme/onboarding/"`} {
		if !strings.Contains(got, marker) {
			t.Fatalf("error state missing %q in %q", marker, got)
		}
	}
}

func TestUnsafeURLsAreSanitized(t *testing.T) {
	t.Parallel()

	got := render(t, ChooserPage(ChooserView{Rows: []ChooserRow{{Name: "x", URL: "javascript:alert(1)"}}}, nil), context.Background())
	if strings.Contains(got, "javascript:") {
		t.Fatalf("unsafe URL rendered: %q", got)
	}
}

func TestTFallsBackToKeyFormatting(t *testing.T) {
	t.Parallel()

	if got := T(nil, "Hello %s", "Ana"); got != "Hello Ana" {
		t.Fatalf("T() = %q, want %q", got, "Hello Ana")
	}
	if got := T(nil, 42); got != "" {
		t.Fatalf("T(non-string) = %q, want empty", got)
	}
}
