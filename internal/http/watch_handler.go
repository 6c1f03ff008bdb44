package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/session"
	"github.com/docspace/docspace/pkg/logger"
)

// watchKeepAlive is the interval of SSE comment lines sent on an idle stream
const watchKeepAlive = 25 * time.Second

// watchBacklog bounds the external changes waiting to be written to the client
const watchBacklog = 16

const (
	watchEventState          = "state"
	watchEventExternalChange = "external_change"
	watchEventDeleted        = "deleted"
)

// watchEvent is one server-sent event of a file watch
type watchEvent struct {
	Type    string                  `json:"type"`
	FileID  string                  `json:"file_id"`
	State   session.State           `json:"state,omitempty"`
	Content *string                 `json:"content,omitempty"`
	Change  *session.ExternalChange `json:"change,omitempty"`
}

// WatchHandler streams changes made by others to an open file
type WatchHandler struct {
	files    domain.FileService
	feed     session.Subscriber
	autosave time.Duration
	logger   logger.Logger
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(files domain.FileService, feed session.Subscriber, autosave time.Duration, logger logger.Logger) *WatchHandler {
	return &WatchHandler{
		files:    files,
		feed:     feed,
		autosave: autosave,
		logger:   logger,
	}
}

// RegisterRoutes registers the streaming route behind requireAuth
func (h *WatchHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api/files.watch", requireAuth(http.HandlerFunc(h.handleWatch)))
}

func (h *WatchHandler) handleWatch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.WatchFileRequest{
		WorkspaceID: r.URL.Query().Get("workspace_id"),
		FileID:      r.URL.Query().Get("file_id"),
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("Streaming not supported")
		WriteJSONError(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// the session callbacks run on the session goroutine and must not block
	// once the handler is gone
	ctx, cancel := context.WithCancel(r.Context())
	changes := make(chan session.ExternalChange, watchBacklog)
	deleted := make(chan struct{}, 1)

	ws := session.NewWorkspace(req.WorkspaceID, actorID(r), h.files, h.feed, session.Options{
		AutosaveInterval: h.autosave,
		OnExternalChange: func(change session.ExternalChange) {
			select {
			case changes <- change:
			case <-ctx.Done():
			}
		},
		OnDeleted: func() {
			select {
			case deleted <- struct{}{}:
			default:
			}
		},
	}, h.logger)
	defer ws.Close()
	defer cancel()

	doc, err := ws.Open(r.Context(), req.FileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	log := h.logger.WithField("file_id", req.FileID).WithField("user_id", actorID(r))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	send := func(event watchEvent) error {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
		flusher.Flush()
		return nil
	}

	if err := send(stateEvent(doc.View())); err != nil {
		log.WithField("error", err.Error()).Warn("Watch stream closed")
		return
	}

	keepAlive := time.NewTicker(watchKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Watch stream cancelled by client")
			return

		case change := <-changes:
			event := watchEvent{Type: watchEventExternalChange, FileID: req.FileID, Change: &change}
			if err := send(event); err != nil {
				log.WithField("error", err.Error()).Warn("Watch stream closed")
				return
			}
			if err := send(stateEvent(doc.View())); err != nil {
				log.WithField("error", err.Error()).Warn("Watch stream closed")
				return
			}

		case <-deleted:
			_ = send(watchEvent{Type: watchEventDeleted, FileID: req.FileID})
			return

		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func stateEvent(view session.View) watchEvent {
	content := view.Live
	return watchEvent{
		Type:    watchEventState,
		FileID:  view.FileID,
		State:   view.State,
		Content: &content,
	}
}
