package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	"github.com/louisbranch/onboarding/internal/platform/i18n/catalog"
	"github.com/louisbranch/onboarding/internal/platform/logging"
	"github.com/louisbranch/onboarding/internal/platform/timeouts"
	module "github.com/louisbranch/onboarding/internal/services/web/module"
	"github.com/louisbranch/onboarding/internal/services/web/modules"
	apperrors "github.com/louisbranch/onboarding/internal/services/web/platform/errors"
	"github.com/louisbranch/onboarding/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/onboarding/internal/services/web/platform/i18n"
	"github.com/louisbranch/onboarding/internal/services/web/platform/observability"
	"github.com/louisbranch/onboarding/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/onboarding/internal/services/web/platform/weberror"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr      string
	Organizations organization.Store
	Tasks         task.Registry
	// Catalog defaults to the embedded locale catalogs.
	Catalog             *catalog.Bundle
	TrustForwardedProto bool
	Logger              zerolog.Logger
	Tracer              trace.Tracer
	// Modules defaults to modules.Default().
	Modules []module.Module
}

// Server hosts the onboarding web pages.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(config Config) (http.Handler, error) {
	if config.Organizations == nil {
		return nil, errors.New("organization store is required")
	}
	if config.Tasks.Len() == 0 {
		return nil, errors.New("task registry is empty")
	}
	bundle := config.Catalog
	if bundle == nil {
		loaded, err := catalog.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("load locale catalogs: %w", err)
		}
		bundle = loaded
	}
	languages := webi18n.NewResolver(bundle)
	deps := module.Dependencies{
		Organizations: config.Organizations,
		Tasks:         config.Tasks,
		Languages:     languages,
		SchemePolicy:  requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
		Logger:        config.Logger,
		Tracer:        config.Tracer,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, handleHealth)

	mods := config.Modules
	if mods == nil {
		mods = modules.Default()
	}
	for _, m := range mods {
		mount, err := m.Mount(deps)
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", m.ID(), err)
		}
		if strings.TrimSpace(mount.Prefix) == "" || mount.Handler == nil {
			return nil, fmt.Errorf("mount module %s: prefix and handler are required", m.ID())
		}
		mux.Handle(mount.Prefix, mount.Handler)
	}
	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		loc, tag := languages.ResolveLocalizer(r)
		weberror.Write(w, r, apperrors.EK(apperrors.KindNotFound, "web.error.not_found", "no route"), loc, tag, "")
	})

	httpLogger := logging.Component(config.Logger, logging.ComponentHTTP)
	return httpx.Chain(mux,
		httpx.RequestID(),
		observability.RequestLogger(httpLogger),
		httpx.RecoverPanic(httpLogger),
	), nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: config.Logger,
	}, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe serves HTTP until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Str("addr", s.httpAddr).Msg("web listening")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info().Msg("web stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the HTTP server immediately.
func (s *Server) Close() error {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}
