package http

import (
	"net/http"
	"time"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/http/middleware"
	"github.com/docspace/docspace/internal/session"
	"github.com/docspace/docspace/pkg/logger"
)

// RouterDeps is everything the API mux is built from
type RouterDeps struct {
	Workspaces  domain.WorkspaceService
	Invitations domain.InvitationService
	Files       domain.FileService
	Auth        *middleware.AuthConfig
	DB          pinger
	Version     string
	AllowOrigin string
	// Metrics is mounted on /metrics when set
	Metrics http.Handler
	Logger  logger.Logger

	// Feed serves /api/files.watch when set
	Feed             session.Subscriber
	AutosaveInterval time.Duration
}

// NewRouter builds the API handler with CORS and tracing applied
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()
	requireAuth := func(next http.Handler) http.Handler {
		return deps.Auth.RequireAuth(middleware.AnnotateUser(next))
	}

	NewWorkspaceHandler(deps.Workspaces, deps.Logger).RegisterRoutes(mux, requireAuth)
	NewInvitationHandler(deps.Invitations, deps.Logger).RegisterRoutes(mux, requireAuth)
	NewFileHandler(deps.Files, deps.Logger).RegisterRoutes(mux, requireAuth)
	if deps.Feed != nil {
		NewWatchHandler(deps.Files, deps.Feed, deps.AutosaveInterval, deps.Logger).RegisterRoutes(mux, requireAuth)
	}
	NewHealthHandler(deps.DB, deps.Version, deps.Logger).RegisterRoutes(mux)
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics)
	}

	return middleware.TracingMiddleware(middleware.CORS(deps.AllowOrigin)(mux))
}
