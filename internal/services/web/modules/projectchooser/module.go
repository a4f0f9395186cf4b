// Package projectchooser serves the page that picks a project for a
// project-scoped onboarding task.
package projectchooser

import (
	"net/http"

	module "github.com/louisbranch/onboarding/internal/services/web/module"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
)

// Module provides the project chooser route.
type Module struct{}

// New returns a project chooser module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "projectchooser" }

// Mount wires project chooser route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps.Tasks), deps))
	return module.Mount{Prefix: routepath.ProjectChooserPattern, Handler: mux}, nil
}
