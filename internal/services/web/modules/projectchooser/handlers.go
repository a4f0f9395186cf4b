package projectchooser

import (
	"net/http"

	"github.com/louisbranch/onboarding/internal/onboarding/chooser"
	module "github.com/louisbranch/onboarding/internal/services/web/module"
	apperrors "github.com/louisbranch/onboarding/internal/services/web/platform/errors"
	"github.com/louisbranch/onboarding/internal/services/web/platform/httpx"
	"github.com/louisbranch/onboarding/internal/services/web/platform/layoutflag"
	"github.com/louisbranch/onboarding/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/onboarding/internal/services/web/platform/pagerender"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/onboarding/internal/services/web/templates"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const invalidTaskKey = "web.error.invalid_task"

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase("projectchooser", deps), service: s}
}

// handleChoose takes over the narrow layout flag set by the checklist. The
// page renders narrow only when the request carried the flag, and every exit
// path releases it before the response is written.
func (h handlers) handleChoose(w http.ResponseWriter, r *http.Request) {
	scope := layoutflag.Acquire(w, r, layoutflag.Narrow, h.SchemePolicy())
	defer scope.Release()
	narrow := scope.Active()
	w = scope.ResponseWriter()

	r, span := h.StartSpan(r, "projectchooser.choose")
	defer span.End()

	orgSlug := r.PathValue(routepath.OrgSlugPathValue)
	taskQuery := r.URL.Query().Get(routepath.TaskQueryKey)
	span.SetAttributes(
		attribute.String("onboarding.org", orgSlug),
		attribute.String("onboarding.task", taskQuery),
	)

	org, err := h.LoadOrganization(r.Context(), orgSlug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		h.WriteError(w, r, err, "")
		return
	}

	decision := h.service.decide(org, taskQuery)
	span.SetAttributes(
		attribute.String("onboarding.outcome", decision.Outcome.String()),
		attribute.Int("onboarding.projects", len(org.Projects)),
	)
	if decision.Outcome == chooser.OutcomeRedirect {
		logger := h.Logger(r)
		logger.Debug().
			Str("org", org.Slug).
			Str("reason", string(decision.Reason)).
			Str("location", decision.Location).
			Msg("project chooser skipped")
		httpx.WriteRedirect(w, r, decision.Location)
		return
	}

	loc, tag := h.PageLocalizer(r)
	view, err := h.service.view(org, taskQuery, tag)
	if err != nil {
		err = apperrors.Wrap(apperrors.KindInvalidState, invalidTaskKey, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.KindInvalidState))
		h.WriteError(w, r, err, routepath.Onboarding(org.Slug))
		return
	}

	h.WritePage(w, r, pagerender.Page{
		Title:  webtemplates.T(loc, "web.chooser.title"),
		Narrow: narrow,
		Body:   webtemplates.ChooserPage(view, loc),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "web.error.not_found", "no route"), "")
}
