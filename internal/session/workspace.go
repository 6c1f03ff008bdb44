package session

import (
	"context"
	"sync"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// Workspace is one user's view of a workspace. It keeps at most one document
// open and tears the previous subscription down before opening the next, so
// no event from an old scope is ever applied.
type Workspace struct {
	workspaceID string
	actorID     string
	files       FileStore
	feed        Subscriber
	opts        Options
	logger      logger.Logger

	mu      sync.Mutex
	current *DocumentSession
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWorkspace creates a session manager scoped to workspaceID
func NewWorkspace(workspaceID, actorID string, files FileStore, feed Subscriber, opts Options, log logger.Logger) *Workspace {
	return &Workspace{
		workspaceID: workspaceID,
		actorID:     actorID,
		files:       files,
		feed:        feed,
		opts:        opts,
		logger:      log.WithField("workspace_id", workspaceID),
	}
}

// ID returns the workspace the manager is scoped to
func (w *Workspace) ID() string {
	return w.workspaceID
}

// Open closes the current document, if any, and opens fileID. A file from
// another workspace is reported as not found.
func (w *Workspace) Open(ctx context.Context, fileID string) (*DocumentSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closeCurrent()

	doc, err := Open(ctx, w.files, w.feed, w.actorID, fileID, w.opts, w.logger)
	if err != nil {
		return nil, err
	}
	if doc.WorkspaceID() != w.workspaceID {
		doc.Close()
		return nil, domain.NewNotFound("file", fileID)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := doc.Run(runCtx); err != nil {
			w.logger.WithField("file_id", fileID).WithField("error", err.Error()).Error("Document session stopped")
		}
	}()

	w.current = doc
	w.cancel = cancel
	w.done = done
	return doc, nil
}

// Current returns the open document or nil
func (w *Workspace) Current() *DocumentSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close closes the open document
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeCurrent()
}

func (w *Workspace) closeCurrent() {
	if w.current == nil {
		return
	}
	w.cancel()
	<-w.done
	w.current.Close()
	w.current = nil
	w.cancel = nil
	w.done = nil
}
