package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/config"
	"github.com/docspace/docspace/pkg/cache"
	"github.com/docspace/docspace/pkg/logger"
	pkgmocks "github.com/docspace/docspace/pkg/mocks"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Version:     "test",
		Database: config.DatabaseConfig{
			User:     "docspace_test",
			Password: "docspace_test",
			Host:     "localhost",
			Port:     5432,
			DBName:   "docspace_test",
		},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: 5 * time.Second,
		},
		Security: config.SecurityConfig{
			JWTSecret: "test-jwt-secret-key-32-bytes-min",
			JWTIssuer: "docspace-test",
		},
		Workspace: config.WorkspaceConfig{
			AppOrigin:           "http://localhost:3000",
			InvitationTTL:       7 * 24 * time.Hour,
			ExpiredPurgeAge:     30 * 24 * time.Hour,
			SweepSchedule:       "@every 1h",
			InvitesPerHour:      20,
			SnapshotCacheTTL:    time.Minute,
			SubscriptionBacklog: 16,
		},
	}
}

type fakeSource struct {
	runs atomic.Int32
	err  error
}

func (s *fakeSource) Run(ctx context.Context) error {
	s.runs.Add(1)
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return nil
}

// setupTestApp wires an app against sqlmock without starting it
func setupTestApp(t *testing.T, source *fakeSource) (*App, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	a := NewApp(createTestConfig(),
		WithMockDB(db),
		WithMockMailer(pkgmocks.NewMockMailer(ctrl)),
		WithLogger(logger.NewTestLogger(t)),
		WithCache(cache.NewInMemoryCache(time.Minute)),
		WithChangeSource(source),
	).(*App)

	require.NoError(t, a.InitTracing())
	require.NoError(t, a.InitDB())
	require.NoError(t, a.InitCache())
	require.NoError(t, a.InitMailer())
	require.NoError(t, a.InitRepositories())
	require.NoError(t, a.InitServices())
	require.NoError(t, a.InitHandlers())
	return a, mock
}

func TestNewApp(t *testing.T) {
	cfg := createTestConfig()
	a := NewApp(cfg)

	assert.Equal(t, cfg, a.GetConfig())
	assert.NotNil(t, a.GetLogger())
	assert.False(t, a.IsServerCreated())
	assert.Equal(t, int64(0), a.GetActiveRequestCount())
}

func TestApp_InitOrder(t *testing.T) {
	a := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)))

	assert.Error(t, a.InitRepositories())
	assert.Error(t, a.InitServices())
	assert.Error(t, a.InitHandlers())
}

func TestApp_InitMailerDefaultsToConsole(t *testing.T) {
	a := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)))

	require.NoError(t, a.InitMailer())
	assert.NotNil(t, a.GetMailer())
}

func TestApp_Wiring(t *testing.T) {
	a, mock := setupTestApp(t, &fakeSource{})

	assert.NotNil(t, a.GetHub())
	assert.NotNil(t, a.GetDB())
	require.NotNil(t, a.GetHandler())

	t.Run("health checks the database", func(t *testing.T) {
		mock.ExpectPing()

		w := httptest.NewRecorder()
		a.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api requires a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		a.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/workspaces.list", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestApp_StartAndShutdown(t *testing.T) {
	source := &fakeSource{}
	a, mock := setupTestApp(t, source)
	mock.ExpectClose()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.True(t, a.WaitForServerStart(ctx))

	require.Eventually(t, func() bool { return source.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, a.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after shutdown")
	}
}

func TestApp_StartStopsWhenChangeFeedFails(t *testing.T) {
	feedErr := errors.New("listen failed")
	a, _ := setupTestApp(t, &fakeSource{err: feedErr})

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, feedErr)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after the change feed failed")
	}
}

func TestApp_GracefulShutdownMiddleware(t *testing.T) {
	a := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t))).(*App)

	var during int64
	handler := a.gracefulShutdownMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = a.GetActiveRequestCount()
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(1), during)
	assert.Equal(t, int64(0), a.GetActiveRequestCount())

	require.NoError(t, a.Shutdown(context.Background()))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
