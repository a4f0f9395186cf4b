// Package web serves the browser-facing onboarding pages: the organization
// checklist and the project chooser reached from project-scoped tasks.
package web
