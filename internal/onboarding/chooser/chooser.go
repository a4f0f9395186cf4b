// Package chooser decides whether an onboarding task needs a project choice
// screen and builds the list shown when it does.
package chooser

import (
	"errors"
	"fmt"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
	"golang.org/x/text/language"
)

// ErrInvalidTask reports that the chooser was reached without a task id that
// resolves to a project-scoped task.
var ErrInvalidTask = errors.New("project chooser requires a project-scoped task")

// Outcome is the result of activation.
type Outcome int

const (
	// OutcomeRender means the project list must be shown.
	OutcomeRender Outcome = iota
	// OutcomeRedirect means the caller navigates to Decision.Location instead.
	OutcomeRedirect
)

// String returns a stable name for logs and span attributes.
func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeRedirect:
		return "redirect"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Reason explains a redirect.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoProjects    Reason = "no_projects"
	ReasonSingleProject Reason = "single_project"
)

// Decision is the activation result.
type Decision struct {
	Outcome  Outcome
	Reason   Reason
	Location string
}

// Row is one selectable project.
type Row struct {
	Project  organization.Project
	Location string
}

// Listing is everything the chooser page renders.
type Listing struct {
	Organization organization.Organization
	Task         task.Descriptor
	Rows         []Row
}

// Activate decides whether the chooser can be skipped.
//
// An organization without projects redirects to project creation. A single
// project with exactly one task matching taskQuery redirects straight to that
// project's task location. Anything else renders.
func Activate(org organization.Organization, registry task.Registry, taskQuery string) Decision {
	matches := registry.Match(taskQuery)
	switch {
	case len(org.Projects) == 0:
		return Decision{
			Outcome:  OutcomeRedirect,
			Reason:   ReasonNoProjects,
			Location: routepath.ProjectsNew(org.Slug),
		}
	case len(org.Projects) == 1 && len(matches) == 1:
		return Decision{
			Outcome:  OutcomeRedirect,
			Reason:   ReasonSingleProject,
			Location: routepath.ProjectTask(org.Slug, org.Projects[0].Slug, matches[0].Location),
		}
	default:
		return Decision{Outcome: OutcomeRender}
	}
}

// Render builds the sorted project list for a project-scoped task. It fails
// with ErrInvalidTask when taskQuery does not name one; no partial listing is
// ever returned.
func Render(org organization.Organization, registry task.Registry, taskQuery string, tag language.Tag) (Listing, error) {
	descriptor, ok := registry.Lookup(taskQuery)
	if !ok {
		return Listing{}, fmt.Errorf("%w: no task matches %q", ErrInvalidTask, taskQuery)
	}
	if descriptor.FeatureLocation != task.FeatureProject {
		return Listing{}, fmt.Errorf("%w: task %d is %s-scoped", ErrInvalidTask, descriptor.ID, descriptor.FeatureLocation)
	}

	projects := organization.SortProjects(org.Projects, tag)
	rows := make([]Row, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, Row{
			Project:  project,
			Location: routepath.ProjectTask(org.Slug, project.Slug, descriptor.Location),
		})
	}
	return Listing{
		Organization: org.Clone(),
		Task:         descriptor,
		Rows:         rows,
	}, nil
}
