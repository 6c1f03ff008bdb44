package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	"golang.org/x/sync/errgroup"

	"github.com/docspace/docspace/config"
	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/domain"
	httpHandler "github.com/docspace/docspace/internal/http"
	"github.com/docspace/docspace/internal/http/middleware"
	"github.com/docspace/docspace/internal/realtime"
	"github.com/docspace/docspace/internal/repository"
	"github.com/docspace/docspace/internal/service"
	"github.com/docspace/docspace/pkg/cache"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/mailer"
	"github.com/docspace/docspace/pkg/ratelimiter"
	"github.com/docspace/docspace/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetHandler() http.Handler
	GetDB() *sql.DB
	GetMailer() mailer.Mailer
	GetHub() *realtime.Hub

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitTracing() error
	InitDB() error
	InitCache() error
	InitMailer() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
}

// runner is a background worker stopped by cancelling its context
type runner interface {
	Run(ctx context.Context) error
}

// App encapsulates the application dependencies and configuration
type App struct {
	config  *config.Config
	logger  logger.Logger
	db      *sql.DB
	mailer  mailer.Mailer
	cache   cache.Cache
	limiter *ratelimiter.Limiter
	metrics http.Handler

	stopDBStats func()

	// Repositories
	userRepo         domain.UserRepository
	workspaceRepo    domain.WorkspaceRepository
	collaboratorRepo domain.CollaboratorRepository
	invitationRepo   domain.InvitationRepository
	fileRepo         domain.FileRepository
	fileVersionRepo  domain.FileVersionRepository
	activityRepo     domain.ActivityRepository
	cleanupRepo      domain.WorkspaceCleanupRepository

	// Services
	accessService     *service.AccessService
	workspaceService  *service.WorkspaceService
	invitationService *service.InvitationService
	userService       *service.UserService
	fileService       *service.FileService

	// Change feed and background workers
	hub     *realtime.Hub
	source  runner
	sweeper runner

	handler http.Handler
	server  *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithCache replaces the snapshot cache
func WithCache(c cache.Cache) AppOption {
	return func(a *App) {
		a.cache = c
	}
}

// WithChangeSource replaces the LISTEN/NOTIFY source feeding the hub
func WithChangeSource(source runner) AppOption {
	return func(a *App) {
		a.source = source
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	if app.shutdownTimeout <= 0 {
		app.shutdownTimeout = 30 * time.Second
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and the metrics exporter
func (a *App) InitTracing() error {
	metrics, err := tracing.Init(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.metrics = metrics
	return nil
}

// InitDB connects to Postgres and applies pending migrations
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	a.logger.WithField("host", a.config.Database.Host).
		WithField("port", a.config.Database.Port).
		WithField("dbname", a.config.Database.DBName).
		WithField("sslmode", a.config.Database.SSLMode).
		Info("Connecting to database")

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = tracing.RegisterDriver(driverName)
		if err != nil {
			return err
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, driverName, &a.config.Database)
	if err != nil {
		return err
	}

	if err := database.InitializeDatabase(ctx, db, a.logger); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if a.config.Tracing.Enabled {
		a.stopDBStats = ocsql.RecordStats(db, 5*time.Second)
	}

	a.db = db
	return nil
}

// InitCache selects Redis when configured and the in-process cache otherwise
func (a *App) InitCache() error {
	if a.cache != nil {
		return nil
	}

	if a.config.HasRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     a.config.Redis.Addr,
			Password: a.config.Redis.Password,
			DB:       a.config.Redis.DB,
			Prefix:   "docspace:",
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.cache = redisCache
		a.logger.WithField("addr", a.config.Redis.Addr).Info("Using redis snapshot cache")
		return nil
	}

	a.cache = cache.NewInMemoryCache(time.Minute)
	a.logger.Info("Using in-memory snapshot cache")
	return nil
}

// InitMailer initializes the mailer service
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	if a.config.IsDevelopment() || a.config.SMTP.Host == "" {
		a.mailer = mailer.NewConsoleMailer(a.logger)
		a.logger.Info("Using console mailer")
		return nil
	}

	a.mailer = mailer.NewSMTPMailer(&mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,
		Timeout:      10 * time.Second,
	}, a.logger)
	a.logger.WithField("smtp_host", a.config.SMTP.Host).Info("Using SMTP mailer")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.userRepo = repository.NewUserRepository(a.db)
	a.workspaceRepo = repository.NewWorkspaceRepository(a.db)
	a.collaboratorRepo = repository.NewCollaboratorRepository(a.db)
	a.invitationRepo = repository.NewInvitationRepository(a.db)
	a.fileRepo = repository.NewFileRepository(a.db)
	a.fileVersionRepo = repository.NewFileVersionRepository(a.db)
	a.activityRepo = repository.NewActivityRepository(a.db)
	a.cleanupRepo = repository.NewWorkspaceCleanupRepository(a.db)
	return nil
}

// InitServices wires the services, the change feed and the sweeper
func (a *App) InitServices() error {
	if a.userRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}
	if a.cache == nil {
		return fmt.Errorf("cache must be initialized before services")
	}

	wsCfg := &a.config.Workspace

	a.accessService = service.NewAccessService(
		a.workspaceRepo,
		a.collaboratorRepo,
		a.cache,
		wsCfg.SnapshotCacheTTL,
		a.logger,
	)

	a.workspaceService = service.NewWorkspaceService(
		a.workspaceRepo,
		a.collaboratorRepo,
		a.userRepo,
		a.cleanupRepo,
		a.activityRepo,
		a.accessService,
		a.logger,
	)

	a.limiter = ratelimiter.New()
	a.invitationService = service.NewInvitationService(
		a.invitationRepo,
		a.workspaceRepo,
		a.collaboratorRepo,
		a.userRepo,
		a.activityRepo,
		a.accessService,
		a.mailer,
		a.limiter,
		wsCfg,
		a.logger,
	)
	a.workspaceService.SetMembershipHooks(a.invitationService)

	a.userService = service.NewUserService(a.userRepo, a.invitationService, a.logger)

	a.fileService = service.NewFileService(
		a.fileRepo,
		a.fileVersionRepo,
		a.accessService,
		a.activityRepo,
		a.logger,
	)

	a.hub = realtime.NewHub(wsCfg.SubscriptionBacklog, a.logger)
	if a.source == nil {
		a.source = realtime.NewPostgresSource(
			database.GetDSN(&a.config.Database),
			a.hub,
			a.fileRepo,
			a.fileVersionRepo,
			a.logger,
		)
	}
	a.sweeper = service.NewInvitationSweeper(a.invitationService, wsCfg.SweepSchedule, a.logger)
	return nil
}

// InitHandlers builds the HTTP router
func (a *App) InitHandlers() error {
	if a.userService == nil {
		return fmt.Errorf("services must be initialized before handlers")
	}

	auth := middleware.NewAuthMiddleware(
		a.config.Security.JWTSecret,
		a.config.Security.JWTIssuer,
		a.userService,
		a.logger,
	)

	a.handler = httpHandler.NewRouter(httpHandler.RouterDeps{
		Workspaces:  a.workspaceService,
		Invitations: a.invitationService,
		Files:       a.fileService,
		Auth:        auth,
		DB:          a.db,
		Version:     a.config.Version,
		AllowOrigin: a.config.Workspace.AppOrigin,
		Metrics:     a.metrics,
		Logger:      a.logger,

		Feed:             a.hub,
		AutosaveInterval: a.config.Workspace.AutosaveInterval,
	})
	return nil
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting docspace")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitCache,
		a.InitMailer,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start serves HTTP and runs the change feed and the invitation sweeper
// until Shutdown is called or one of them fails.
func (a *App) Start() error {
	if a.handler == nil {
		return fmt.Errorf("handlers must be initialized before starting")
	}

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)

	a.serverMu.Lock()
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.gracefulShutdownMiddleware(a.handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := a.server
	serverStarted := a.serverStarted
	a.serverMu.Unlock()
	close(serverStarted)

	a.logger.WithField("address", addr).Info("Server starting")

	g, ctx := errgroup.WithContext(a.shutdownCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.source.Run(ctx)
	})
	g.Go(func() error {
		return a.sweeper.Run(ctx)
	})
	g.Go(func() error {
		// a failing worker takes the server down with it
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil {
		a.logger.WithField("error", err.Error()).Error("Server stopped")
	}
	return err
}

// Shutdown stops accepting requests, waits for active ones and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	var shutdownErr error
	if server != nil {
		timeout := a.shutdownTimeout
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining < timeout {
				timeout = remaining
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Shutting down HTTP server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErr = err
		}

		done := make(chan struct{})
		go func() {
			a.requestWg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
			if shutdownErr == nil {
				shutdownErr = fmt.Errorf("shutdown timeout exceeded")
			}
		}
	}

	if err := a.cleanupResources(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.hub != nil {
		a.hub.Close()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Error closing cache")
		}
	}
	if a.stopDBStats != nil {
		a.stopDBStats()
	}
	if a.db != nil {
		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created.
// Returns false if ctx expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetHandler returns the API handler
func (a *App) GetHandler() http.Handler {
	return a.handler
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetMailer returns the app's mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}

// GetHub returns the change feed hub
func (a *App) GetHub() *realtime.Hub {
	return a.hub
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks active requests and rejects new ones
// once shutdown has started
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
