// Package modulehandler provides a composable base for web module handlers.
//
// Modules share request localization, page rendering, error pages, logging
// and tracing. Module handler structs embed Base rather than duplicating it.
package modulehandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	"github.com/louisbranch/onboarding/internal/platform/logging"
	"github.com/louisbranch/onboarding/internal/platform/timeouts"
	module "github.com/louisbranch/onboarding/internal/services/web/module"
	apperrors "github.com/louisbranch/onboarding/internal/services/web/platform/errors"
	"github.com/louisbranch/onboarding/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/onboarding/internal/services/web/platform/i18n"
	"github.com/louisbranch/onboarding/internal/services/web/platform/pagerender"
	"github.com/louisbranch/onboarding/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/onboarding/internal/services/web/platform/weberror"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	notFoundKey    = "web.error.not_found"
	unavailableKey = "web.error.unavailable"
)

// Base carries the shared request-scoped helpers used by module handlers.
type Base struct {
	organizations organization.Store
	tasks         task.Registry
	languages     *webi18n.Resolver
	policy        requestmeta.SchemePolicy
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewBase builds a handler base for the module named moduleID.
func NewBase(moduleID string, deps module.Dependencies) Base {
	tracer := deps.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(moduleID)
	}
	return Base{
		organizations: deps.Organizations,
		tasks:         deps.Tasks,
		languages:     deps.Languages,
		policy:        deps.SchemePolicy,
		logger:        logging.Component(deps.Logger, logging.ComponentHTTP).With().Str("module", moduleID).Logger(),
		tracer:        tracer,
	}
}

// Tasks returns the task registry.
func (b Base) Tasks() task.Registry { return b.tasks }

// SchemePolicy returns the cookie scheme policy.
func (b Base) SchemePolicy() requestmeta.SchemePolicy { return b.policy }

// Logger returns the module logger annotated with the request id.
func (b Base) Logger(r *http.Request) zerolog.Logger {
	return b.logger.With().Str("request_id", httpx.RequestIDFrom(r)).Logger()
}

// StartSpan starts a handler span on the request context.
func (b Base) StartSpan(r *http.Request, name string, opts ...trace.SpanStartOption) (*http.Request, trace.Span) {
	ctx, span := b.tracer.Start(httpx.RequestContext(r), name, opts...)
	return r.WithContext(ctx), span
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(r *http.Request) (*message.Printer, language.Tag) {
	return b.languages.ResolveLocalizer(r)
}

// LoadOrganization reads the organization named by the path, mapping store
// failures to typed web errors.
func (b Base) LoadOrganization(ctx context.Context, rawSlug string) (organization.Organization, error) {
	slug := organization.NormalizeSlug(rawSlug)
	if !organization.ValidSlug(slug) {
		return organization.Organization{}, apperrors.Wrap(apperrors.KindNotFound, notFoundKey, organization.ErrNotFound)
	}
	if b.organizations == nil {
		return organization.Organization{}, apperrors.EK(apperrors.KindUnavailable, unavailableKey, "organization store is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreLookup)
	defer cancel()
	org, err := b.organizations.GetOrganization(ctx, slug)
	switch {
	case err == nil:
		return org, nil
	case errors.Is(err, organization.ErrNotFound):
		return organization.Organization{}, apperrors.Wrap(apperrors.KindNotFound, notFoundKey, err)
	default:
		return organization.Organization{}, apperrors.Wrap(apperrors.KindUnavailable, unavailableKey, err)
	}
}

// WritePage renders a localized page.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	loc, tag := b.PageLocalizer(r)
	if err := pagerender.WritePage(w, r, loc, tag, page); err != nil {
		b.WriteError(w, r, err, "")
	}
}

// WriteError logs err and renders the shared error page.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error, backURL string) {
	logger := b.Logger(r)
	event := logger.Warn()
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("kind", string(apperrors.KindOf(err))).Msg("request failed")
	loc, tag := b.PageLocalizer(r)
	weberror.Write(w, r, err, loc, tag, backURL)
}
