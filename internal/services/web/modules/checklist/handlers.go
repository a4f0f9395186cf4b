package checklist

import (
	"net/http"

	module "github.com/louisbranch/onboarding/internal/services/web/module"
	apperrors "github.com/louisbranch/onboarding/internal/services/web/platform/errors"
	"github.com/louisbranch/onboarding/internal/services/web/platform/layoutflag"
	"github.com/louisbranch/onboarding/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/onboarding/internal/services/web/platform/pagerender"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/onboarding/internal/services/web/templates"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase("checklist", deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	r, span := h.StartSpan(r, "checklist.index")
	defer span.End()

	orgSlug := r.PathValue(routepath.OrgSlugPathValue)
	span.SetAttributes(attribute.String("onboarding.org", orgSlug))
	org, err := h.LoadOrganization(r.Context(), orgSlug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		h.WriteError(w, r, err, "")
		return
	}

	// The project chooser reached from this page releases the flag.
	layoutflag.Set(w, r, layoutflag.Narrow, h.SchemePolicy())
	loc, _ := h.PageLocalizer(r)
	h.WritePage(w, r, pagerender.Page{
		Title:  webtemplates.T(loc, "web.checklist.title"),
		Narrow: true,
		Body:   webtemplates.ChecklistPage(h.service.view(org), loc),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "web.error.not_found", "no route"), "")
}
