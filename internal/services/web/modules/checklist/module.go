// Package checklist serves the organization onboarding checklist.
package checklist

import (
	"net/http"

	module "github.com/louisbranch/onboarding/internal/services/web/module"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
)

// Module provides the onboarding checklist route.
type Module struct{}

// New returns a checklist module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "checklist" }

// Mount wires checklist route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps.Tasks), deps))
	return module.Mount{Prefix: routepath.OnboardingPattern, Handler: mux}, nil
}
