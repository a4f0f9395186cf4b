// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	webi18n "github.com/louisbranch/onboarding/internal/services/web/platform/i18n"
	"github.com/louisbranch/onboarding/internal/services/web/platform/requestmeta"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Dependencies carries the shared services handed to every module.
type Dependencies struct {
	Organizations organization.Store
	Tasks         task.Registry
	Languages     *webi18n.Resolver
	SchemePolicy  requestmeta.SchemePolicy
	Logger        zerolog.Logger
	// Tracer defaults to a no-op tracer when nil.
	Tracer trace.Tracer
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
