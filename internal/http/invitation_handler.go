package http

import (
	"context"
	"net/http"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// InvitationHandler handles HTTP requests for the invitation lifecycle
type InvitationHandler struct {
	invitationService domain.InvitationService
	logger            logger.Logger
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService domain.InvitationService, logger logger.Logger) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		logger:            logger,
	}
}

// RegisterRoutes registers the invitation RPC-style routes behind requireAuth
func (h *InvitationHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api/invitations.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/invitations.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/invitations.mine", requireAuth(http.HandlerFunc(h.handleMine)))
	mux.Handle("/api/invitations.resolve", requireAuth(http.HandlerFunc(h.handleResolve)))
	mux.Handle("/api/invitations.accept", requireAuth(http.HandlerFunc(h.handleAccept)))
	mux.Handle("/api/invitations.decline", requireAuth(http.HandlerFunc(h.handleDecline)))
	mux.Handle("/api/invitations.revoke", requireAuth(http.HandlerFunc(h.handleRevoke)))
}

func (h *InvitationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	result, err := h.invitationService.CreateInvitation(r.Context(), actorID(r), req.WorkspaceID, req.Email, req.Role)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *InvitationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.WorkspaceIDRequest{WorkspaceID: r.URL.Query().Get("workspace_id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	invitations, err := h.invitationService.ListInvitations(r.Context(), actorID(r), req.WorkspaceID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invitations": invitations,
	})
}

func (h *InvitationHandler) handleMine(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	invitations, err := h.invitationService.ListMyInvitations(r.Context(), actorID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invitations": invitations,
	})
}

// handleResolve takes the token in the body so it stays out of access logs
func (h *InvitationHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.ResolveInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	invitation, err := h.invitationService.ResolveByToken(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invitation": invitation,
	})
}

func (h *InvitationHandler) handleAccept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invitationService.Accept)
}

func (h *InvitationHandler) handleDecline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invitationService.Decline)
}

// transition runs accept or decline for the authenticated user
func (h *InvitationHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, actorID, invitationID string) (*domain.Invitation, error)) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.InvitationIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	invitation, err := apply(r.Context(), actorID(r), req.InvitationID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invitation": invitation,
	})
}

func (h *InvitationHandler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.InvitationIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.invitationService.Revoke(r.Context(), actorID(r), req.InvitationID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "revoked",
	})
}
