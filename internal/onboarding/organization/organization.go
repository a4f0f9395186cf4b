// Package organization defines the read model of organizations and their
// projects consumed by onboarding pages.
package organization

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound reports that no organization exists for a slug.
var ErrNotFound = errors.New("organization not found")

// ErrInvalid marks organizations that fail validation.
var ErrInvalid = errors.New("invalid organization")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Project is a unit inside an organization that onboarding tasks can target.
type Project struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
}

// Organization is a tenant owning an ordered list of projects.
type Organization struct {
	Slug     string    `json:"slug" yaml:"slug"`
	Name     string    `json:"name" yaml:"name"`
	Projects []Project `json:"projects" yaml:"projects"`
}

// Store reads organizations by slug. Implementations return ErrNotFound
// (possibly wrapped) for unknown slugs and are safe for concurrent use.
type Store interface {
	GetOrganization(ctx context.Context, slug string) (Organization, error)
}

// Writer replaces an organization and its projects.
type Writer interface {
	PutOrganization(ctx context.Context, org Organization) error
}

// ReadWriter is a store that also accepts writes.
type ReadWriter interface {
	Store
	Writer
}

// Clone returns a deep copy of o.
func (o Organization) Clone() Organization {
	o.Projects = append([]Project(nil), o.Projects...)
	return o
}

// DisplayName returns the name, or the slug when no name is set.
func (o Organization) DisplayName() string {
	if name := strings.TrimSpace(o.Name); name != "" {
		return name
	}
	return o.Slug
}

// DisplayName returns the name, or the slug when no name is set.
func (p Project) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Slug
}

// NormalizeSlug trims and lowercases a slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// ValidSlug reports whether slug is a normalized URL-safe slug.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// Normalize trims names, normalizes slugs and validates the organization.
// Project order is preserved.
func Normalize(org Organization) (Organization, error) {
	out := Organization{
		Slug:     NormalizeSlug(org.Slug),
		Name:     strings.TrimSpace(org.Name),
		Projects: make([]Project, 0, len(org.Projects)),
	}
	if !ValidSlug(out.Slug) {
		return Organization{}, fmt.Errorf("%w: slug %q", ErrInvalid, org.Slug)
	}
	seen := make(map[string]struct{}, len(org.Projects))
	for _, project := range org.Projects {
		project.Slug = NormalizeSlug(project.Slug)
		project.Name = strings.TrimSpace(project.Name)
		if !ValidSlug(project.Slug) {
			return Organization{}, fmt.Errorf("%w: %s: project slug %q", ErrInvalid, out.Slug, project.Slug)
		}
		if _, dup := seen[project.Slug]; dup {
			return Organization{}, fmt.Errorf("%w: %s: duplicate project slug %q", ErrInvalid, out.Slug, project.Slug)
		}
		seen[project.Slug] = struct{}{}
		out.Projects = append(out.Projects, project)
	}
	return out, nil
}
