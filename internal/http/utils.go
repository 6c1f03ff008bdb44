package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// maxBodyBytes leaves room for a full file body plus the JSON envelope
const maxBodyBytes = domain.MaxContentSize + 64<<10

type errorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error to its status code. Unknown errors
// are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	var stepErr *domain.DeletionStepError
	var rateErr *domain.ErrRateLimited

	switch {
	case errors.As(err, &stepErr):
		log.WithField("workspace_id", stepErr.WorkspaceID).WithField("step", string(stepErr.Step)).WithField("error", err.Error()).Error("Workspace deletion stopped")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "workspace deletion failed, retry to resume",
			Step:  string(stepErr.Step),
		})
	case errors.As(err, &rateErr):
		w.Header().Set("Retry-After", strconv.Itoa(rateErr.RetryAfter))
		WriteJSONError(w, err.Error(), http.StatusTooManyRequests)
	case domain.IsValidation(err):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case domain.IsPermissionDenied(err):
		WriteJSONError(w, err.Error(), http.StatusForbidden)
	case domain.IsNotFound(err):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case domain.IsExpired(err):
		WriteJSONError(w, err.Error(), http.StatusGone)
	case domain.IsAlreadyMember(err), domain.IsDuplicateInvitation(err), domain.IsConflict(err):
		WriteJSONError(w, err.Error(), http.StatusConflict)
	case domain.IsDependencyUnavailable(err):
		log.WithField("error", err.Error()).Warn("Dependency unavailable")
		WriteJSONError(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		log.WithField("error", err.Error()).Error("Unhandled service error")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads a POST body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// actorID returns the authenticated user. Routes are mounted behind
// RequireAuth so the identity is always present.
func actorID(r *http.Request) string {
	identity, _ := domain.IdentityFromContext(r.Context())
	return identity.UserID
}
