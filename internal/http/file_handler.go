package http

import (
	"net/http"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// FileHandler handles HTTP requests for files and their version history
type FileHandler struct {
	fileService domain.FileService
	logger      logger.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService domain.FileService, logger logger.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// RegisterRoutes registers the file RPC-style routes behind requireAuth
func (h *FileHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api/files.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/files.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/files.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/files.save", requireAuth(http.HandlerFunc(h.handleSave)))
	mux.Handle("/api/files.rename", requireAuth(http.HandlerFunc(h.handleRename)))
	mux.Handle("/api/files.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/files.versions", requireAuth(http.HandlerFunc(h.handleVersions)))
	mux.Handle("/api/files.restore", requireAuth(http.HandlerFunc(h.handleRestore)))
	mux.Handle("/api/files.clearHistory", requireAuth(http.HandlerFunc(h.handleClearHistory)))
	mux.Handle("/api/files.diff", requireAuth(http.HandlerFunc(h.handleDiff)))
}

func (h *FileHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.WorkspaceIDRequest{WorkspaceID: r.URL.Query().Get("workspace_id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	files, err := h.fileService.ListFiles(r.Context(), actorID(r), req.WorkspaceID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"files": files,
	})
}

func (h *FileHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.FileIDRequest{FileID: r.URL.Query().Get("file_id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	file, err := h.fileService.GetFile(r.Context(), actorID(r), req.FileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file": file,
	})
}

func (h *FileHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	file, err := h.fileService.CreateFile(r.Context(), actorID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"file": file,
	})
}

func (h *FileHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SaveFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	result, err := h.fileService.SaveContent(r.Context(), actorID(r), req.FileID, req.Content, req.ChangeSummary)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *FileHandler) handleRename(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.RenameFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	file, err := h.fileService.RenameFile(r.Context(), actorID(r), req.FileID, req.Filename)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file": file,
	})
}

func (h *FileHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.FileIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), actorID(r), req.FileID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}

func (h *FileHandler) handleVersions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.FileIDRequest{FileID: r.URL.Query().Get("file_id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	versions, err := h.fileService.ListVersions(r.Context(), actorID(r), req.FileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"versions": versions,
	})
}

func (h *FileHandler) handleRestore(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.RestoreVersionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	file, err := h.fileService.RestoreVersion(r.Context(), actorID(r), req.FileID, req.VersionID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file": file,
	})
}

func (h *FileHandler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.ClearHistoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	deleted, err := h.fileService.ClearHistory(r.Context(), actorID(r), req.FileID, req.Confirm)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}

func (h *FileHandler) handleDiff(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query()
	req := domain.DiffRequest{
		FileID:        query.Get("file_id"),
		FromVersionID: query.Get("from_version_id"),
		ToVersionID:   query.Get("to_version_id"),
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	lines, err := h.fileService.Diff(r.Context(), actorID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
	})
}
