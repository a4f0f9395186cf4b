package checklist

import (
	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/onboarding/internal/services/web/templates"
)

type service struct {
	tasks task.Registry
}

func newService(tasks task.Registry) service {
	return service{tasks: tasks}
}

// view lists every task in id order with the link for its feature location.
func (s service) view(org organization.Organization) webtemplates.ChecklistView {
	descriptors := s.tasks.All()
	items := make([]webtemplates.ChecklistItem, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, webtemplates.ChecklistItem{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			URL:         taskURL(org.Slug, d),
			External:    d.FeatureLocation == task.FeatureAbsolute,
			Skippable:   d.Skippable,
			Requires:    s.prerequisiteTitles(d),
		})
	}
	return webtemplates.ChecklistView{
		OrganizationName: org.DisplayName(),
		Items:            items,
	}
}

func (s service) prerequisiteTitles(d task.Descriptor) []string {
	if len(d.Prerequisites) == 0 {
		return nil
	}
	titles := make([]string, 0, len(d.Prerequisites))
	for _, id := range d.Prerequisites {
		if prerequisite, ok := s.tasks.Get(id); ok {
			titles = append(titles, prerequisite.Title)
		}
	}
	return titles
}

func taskURL(orgSlug string, d task.Descriptor) string {
	switch d.FeatureLocation {
	case task.FeatureProject:
		return routepath.ProjectChooser(orgSlug, d.ID)
	case task.FeatureOrganization:
		return routepath.OrganizationTask(orgSlug, d.Location)
	default:
		return d.Location
	}
}
