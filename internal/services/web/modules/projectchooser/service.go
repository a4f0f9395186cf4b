package projectchooser

import (
	"github.com/louisbranch/onboarding/internal/onboarding/chooser"
	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	webtemplates "github.com/louisbranch/onboarding/internal/services/web/templates"
	"golang.org/x/text/language"
)

type service struct {
	tasks task.Registry
}

func newService(tasks task.Registry) service {
	return service{tasks: tasks}
}

// decide runs chooser activation for org.
func (s service) decide(org organization.Organization, taskQuery string) chooser.Decision {
	return chooser.Activate(org, s.tasks, taskQuery)
}

// view builds the page model. It fails with chooser.ErrInvalidTask when the
// query does not name a project-scoped task.
func (s service) view(org organization.Organization, taskQuery string, tag language.Tag) (webtemplates.ChooserView, error) {
	listing, err := chooser.Render(org, s.tasks, taskQuery, tag)
	if err != nil {
		return webtemplates.ChooserView{}, err
	}
	rows := make([]webtemplates.ChooserRow, 0, len(listing.Rows))
	for _, row := range listing.Rows {
		rows = append(rows, webtemplates.ChooserRow{
			Name: row.Project.DisplayName(),
			Slug: row.Project.Slug,
			URL:  row.Location,
		})
	}
	return webtemplates.ChooserView{
		OrganizationName: listing.Organization.DisplayName(),
		TaskTitle:        listing.Task.Title,
		Rows:             rows,
	}, nil
}
