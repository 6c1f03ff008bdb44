package http

import (
	"net/http"
	"strconv"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// WorkspaceHandler handles HTTP requests for workspaces, their collaborators
// and the activity log
type WorkspaceHandler struct {
	workspaceService domain.WorkspaceService
	logger           logger.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService domain.WorkspaceService, logger logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           logger,
	}
}

// RegisterRoutes registers the workspace RPC-style routes behind requireAuth
func (h *WorkspaceHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api/workspaces.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/workspaces.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/workspaces.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/workspaces.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/workspaces.delete", requireAuth(http.HandlerFunc(h.handleDelete)))

	mux.Handle("/api/collaborators.list", requireAuth(http.HandlerFunc(h.handleListCollaborators)))
	mux.Handle("/api/collaborators.add", requireAuth(http.HandlerFunc(h.handleAddCollaborator)))
	mux.Handle("/api/collaborators.remove", requireAuth(http.HandlerFunc(h.handleRemoveCollaborator)))
	mux.Handle("/api/collaborators.setRole", requireAuth(http.HandlerFunc(h.handleSetRole)))

	mux.Handle("/api/activity.list", requireAuth(http.HandlerFunc(h.handleListActivity)))
}

func (h *WorkspaceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(r.Context(), actorID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspaces": workspaces,
	})
}

func (h *WorkspaceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.WorkspaceIDRequest{WorkspaceID: r.URL.Query().Get("id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(r.Context(), actorID(r), req.WorkspaceID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateWorkspaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(r.Context(), actorID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateWorkspaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(r.Context(), actorID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.WorkspaceIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.workspaceService.DeleteWorkspace(r.Context(), actorID(r), req.WorkspaceID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}

func (h *WorkspaceHandler) handleListCollaborators(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.WorkspaceIDRequest{WorkspaceID: r.URL.Query().Get("workspace_id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	collaborators, err := h.workspaceService.ListCollaborators(r.Context(), actorID(r), req.WorkspaceID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collaborators": collaborators,
	})
}

func (h *WorkspaceHandler) handleAddCollaborator(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.AddCollaboratorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	collaborator, err := h.workspaceService.AddCollaborator(r.Context(), actorID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"collaborator": collaborator,
	})
}

func (h *WorkspaceHandler) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.RemoveCollaboratorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.workspaceService.RemoveCollaborator(r.Context(), actorID(r), req.WorkspaceID, req.UserID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "removed",
	})
}

func (h *WorkspaceHandler) handleSetRole(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SetRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	collaborator, err := h.workspaceService.ChangeRole(r.Context(), actorID(r), req.WorkspaceID, req.UserID, req.Role)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collaborator": collaborator,
	})
}

func (h *WorkspaceHandler) handleListActivity(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query()
	req := domain.ListActivityRequest{WorkspaceID: query.Get("workspace_id")}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			WriteJSONError(w, "limit must be a number", http.StatusBadRequest)
			return
		}
		req.Limit = limit
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	entries, err := h.workspaceService.ListActivity(r.Context(), actorID(r), req.WorkspaceID, req.Limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity": entries,
	})
}
