package projectchooser

import (
	"net/http"

	"github.com/louisbranch/onboarding/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectChooserPattern+"{$}", h.handleChoose)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectChooserPattern+"{rest...}", h.handleNotFound)
}
