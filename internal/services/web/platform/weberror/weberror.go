// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/onboarding/internal/services/web/platform/errors"
	"github.com/louisbranch/onboarding/internal/services/web/platform/httpx"
	"github.com/louisbranch/onboarding/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/onboarding/internal/services/web/templates"
	"golang.org/x/text/language"
)

const (
	titleKey       = "web.error.title"
	notFoundKey    = "web.error.not_found"
	unavailableKey = "web.error.unavailable"
	internalKey    = "web.error.internal"
)

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	key := apperrors.LocalizationKey(err)
	if key == "" {
		key = defaultKey(apperrors.HTTPStatus(err))
	}
	if loc != nil {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

func defaultKey(statusCode int) string {
	switch statusCode {
	case http.StatusNotFound:
		return notFoundKey
	case http.StatusServiceUnavailable:
		return unavailableKey
	default:
		return internalKey
	}
}

// Write renders err as the shared error page with its mapped status. backURL
// is optional.
func Write(w http.ResponseWriter, r *http.Request, err error, loc webtemplates.Localizer, tag language.Tag, backURL string) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	body := webtemplates.ErrorState(webtemplates.ErrorView{
		StatusCode: statusCode,
		Message:    PublicMessage(loc, err),
		BackURL:    backURL,
	}, loc)
	if renderErr := pagerender.WritePage(w, r, loc, tag, pagerender.Page{
		Title:      webtemplates.T(loc, titleKey),
		StatusCode: statusCode,
		Body:       body,
	}); renderErr != nil {
		httpx.WriteError(w, err)
	}
}
