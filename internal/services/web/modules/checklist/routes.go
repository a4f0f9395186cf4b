package checklist

import (
	"net/http"

	"github.com/louisbranch/onboarding/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.OnboardingPattern+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.OnboardingPattern+"{rest...}", h.handleNotFound)
}
