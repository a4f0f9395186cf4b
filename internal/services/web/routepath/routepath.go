// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root                     = "/"
	Health                   = "/up"
	OrganizationsPrefix      = "/organizations/"
	ProjectChooserPattern    = OrganizationsPrefix + "{orgSlug}/projects/choose/"
	OnboardingPattern        = OrganizationsPrefix + "{orgSlug}/onboarding/"
	OrgSlugPathValue         = "orgSlug"
	TaskQueryKey             = "task"
	OnboardingQueryKey       = "onboarding"
	LanguageQueryKey         = "lang"
	projectsNewSuffix        = "/projects/new/"
	projectChooserPathSuffix = "/projects/choose/"
	onboardingPathSuffix     = "/onboarding/"
)

// Organization returns the organization root route.
func Organization(orgSlug string) string {
	return OrganizationsPrefix + escapeSegment(orgSlug) + "/"
}

// ProjectsNew returns the organization create-project route.
func ProjectsNew(orgSlug string) string {
	return OrganizationsPrefix + escapeSegment(orgSlug) + projectsNewSuffix
}

// Onboarding returns the organization onboarding checklist route.
func Onboarding(orgSlug string) string {
	return OrganizationsPrefix + escapeSegment(orgSlug) + onboardingPathSuffix
}

// ProjectChooser returns the project chooser route for a task.
func ProjectChooser(orgSlug string, taskID int) string {
	query := url.Values{}
	query.Set(OnboardingQueryKey, "1")
	query.Set(TaskQueryKey, strconv.Itoa(taskID))
	return OrganizationsPrefix + escapeSegment(orgSlug) + projectChooserPathSuffix + "?" + query.Encode()
}

// OrganizationTask returns an organization-scoped task route.
func OrganizationTask(orgSlug string, location string) string {
	return OrganizationsPrefix + escapeSegment(orgSlug) + "/" + trimLocation(location)
}

// ProjectTask returns the project-scoped task route /{org}/{project}/{location}.
func ProjectTask(orgSlug string, projectSlug string, location string) string {
	return "/" + escapeSegment(orgSlug) + "/" + escapeSegment(projectSlug) + "/" + trimLocation(location)
}

func trimLocation(location string) string {
	return strings.TrimLeft(strings.TrimSpace(location), "/")
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
