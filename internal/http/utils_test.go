package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/domain/mocks"
	"github.com/docspace/docspace/pkg/logger"
)

const (
	testWorkspaceID  = "7b0c6a4e-3d1f-4c55-9a2b-8e6f0d1c2a01"
	testFileID       = "5d8e2f41-6a0b-4c7d-9e13-2b4f6a8c0d02"
	testVersionID    = "9a1b3c5d-7e9f-4a2b-8c4d-6e8f0a1b2c03"
	testInvitationID = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e05"
)

// fakeAuth authenticates every request as userID
func fakeAuth(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := domain.WithIdentity(r.Context(), domain.Identity{UserID: userID, Email: userID + "@x.com"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type handlerMocks struct {
	workspaces  *mocks.MockWorkspaceService
	invitations *mocks.MockInvitationService
	files       *mocks.MockFileService
}

// setupHandlerTest mounts every API handler on a mux authenticated as alice
func setupHandlerTest(t *testing.T) (*http.ServeMux, *handlerMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &handlerMocks{
		workspaces:  mocks.NewMockWorkspaceService(ctrl),
		invitations: mocks.NewMockInvitationService(ctrl),
		files:       mocks.NewMockFileService(ctrl),
	}
	log := logger.NewTestLogger(t)
	mux := http.NewServeMux()
	auth := fakeAuth("alice")
	NewWorkspaceHandler(m.workspaces, log).RegisterRoutes(mux, auth)
	NewInvitationHandler(m.invitations, log).RegisterRoutes(mux, auth)
	NewFileHandler(m.files, log).RegisterRoutes(mux, auth)
	return mux, m
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "Bad thing", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Bad thing"}`, w.Body.String())
}

func TestWriteServiceError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("name is required"), http.StatusBadRequest},
		{"permission", domain.NewPermissionError(domain.ActionDeleteWorkspace, testWorkspaceID), http.StatusForbidden},
		{"not found", domain.NewNotFound("file", testFileID), http.StatusNotFound},
		{"expired", &domain.ErrInvitationExpired{InvitationID: testInvitationID}, http.StatusGone},
		{"already member", &domain.ErrAlreadyMember{WorkspaceID: testWorkspaceID, Email: "bob@x.com"}, http.StatusConflict},
		{"duplicate", &domain.ErrDuplicateInvitation{WorkspaceID: testWorkspaceID, Email: "bob@x.com"}, http.StatusConflict},
		{"conflict", &domain.ErrConflict{Entity: "file_version", Message: "taken"}, http.StatusConflict},
		{"unavailable", &domain.ErrDependencyUnavailable{Dependency: "database", Err: errors.New("down")}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(w, logger.NewTestLogger(t), tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	t.Run("unknown errors hide detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeServiceError(w, logger.NewTestLogger(t), errors.New("pq: password authentication failed"))
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("rate limited sets Retry-After", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeServiceError(w, logger.NewTestLogger(t), &domain.ErrRateLimited{Action: "invitation", RetryAfter: 42})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "42", w.Header().Get("Retry-After"))
	})

	t.Run("deletion step is named", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := &domain.DeletionStepError{WorkspaceID: testWorkspaceID, Step: domain.StepFiles, Err: errors.New("timeout")}
		writeServiceError(w, logger.NewTestLogger(t), err)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, string(domain.StepFiles), decodeBody(t, w)["step"])
	})
}
