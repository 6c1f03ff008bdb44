package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/realtime"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/textdiff"
)

// DefaultAutosaveInterval is used when the session is opened without one
const DefaultAutosaveInterval = 30 * time.Second

// State is the editing state of an open document
type State string

const (
	StateClean             State = "clean"
	StateDirty             State = "dirty"
	StateExternallyChanged State = "externally_changed"
	StateSaving            State = "saving"
)

var (
	// ErrSaveInProgress is returned when Save is called while a save is running
	ErrSaveInProgress = errors.New("a save is already in progress")
	// ErrFileDeleted is returned once the open file was deleted elsewhere
	ErrFileDeleted = errors.New("file was deleted")
)

// ExternalChange describes content written by someone else while the
// document was open. Conflict is set only when the local buffer held edits
// that had not been saved.
type ExternalChange struct {
	Previous string          `json:"previous"`
	Incoming string          `json:"incoming"`
	Diff     []textdiff.Line `json:"diff"`
	Conflict bool            `json:"conflict"`
	At       time.Time       `json:"at"`
}

// View is a consistent copy of the session state
type View struct {
	FileID    string
	State     State
	LastKnown string
	Live      string
	Pending   *ExternalChange
	Deleted   bool
}

// FileStore is the part of the file service a session needs
type FileStore interface {
	GetFile(ctx context.Context, actorID, fileID string) (*domain.File, error)
	SaveContent(ctx context.Context, actorID, fileID, content string, summary *string) (*domain.SaveResult, error)
}

// Subscriber opens change feed subscriptions
type Subscriber interface {
	Subscribe(scope realtime.Scope) (*realtime.Subscription, error)
}

// Options tune a document session
type Options struct {
	AutosaveInterval time.Duration
	// OnExternalChange is called, outside the session lock, after an external
	// change was applied to the buffer
	OnExternalChange func(change ExternalChange)
	// OnDeleted is called, outside the session lock, once the file is deleted
	OnDeleted func()
}

// DocumentSession reconciles one user's buffer of a file with changes that
// arrive from the feed. Storage is last write wins; the session only decides
// what to surface.
type DocumentSession struct {
	actorID string
	fileID  string
	files   FileStore
	sub     *realtime.Subscription
	logger  logger.Logger
	opts    Options

	mu          sync.Mutex
	workspaceID string
	lastKnown   string
	live        string
	baseline    string
	inFlight    *string
	state       State
	pending     *ExternalChange
	deleted     bool
}

// Open subscribes to the file and loads its content. The subscription is
// opened first so no write between the read and the subscribe is missed.
func Open(ctx context.Context, files FileStore, feed Subscriber, actorID, fileID string, opts Options, log logger.Logger) (*DocumentSession, error) {
	if opts.AutosaveInterval <= 0 {
		opts.AutosaveInterval = DefaultAutosaveInterval
	}

	sub, err := feed.Subscribe(realtime.FileScope(fileID))
	if err != nil {
		return nil, &domain.ErrDependencyUnavailable{Dependency: "change feed", Err: err}
	}

	file, err := files.GetFile(ctx, actorID, fileID)
	if err != nil {
		sub.Close()
		return nil, err
	}

	return &DocumentSession{
		actorID:     actorID,
		fileID:      fileID,
		files:       files,
		sub:         sub,
		logger:      log.WithField("file_id", fileID).WithField("user_id", actorID),
		opts:        opts,
		workspaceID: file.WorkspaceID,
		lastKnown:   file.Content,
		live:        file.Content,
		baseline:    file.Content,
		state:       StateClean,
	}, nil
}

// FileID returns the open file
func (s *DocumentSession) FileID() string {
	return s.fileID
}

// WorkspaceID returns the workspace of the open file
func (s *DocumentSession) WorkspaceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspaceID
}

// View returns a copy of the current state
func (s *DocumentSession) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		FileID:    s.fileID,
		State:     s.state,
		LastKnown: s.lastKnown,
		Live:      s.live,
		Deleted:   s.deleted,
	}
	if s.pending != nil {
		pending := *s.pending
		v.Pending = &pending
	}
	return v
}

// Edit replaces the local buffer
func (s *DocumentSession) Edit(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live = content
	switch s.state {
	case StateClean, StateDirty:
		if content == s.lastKnown {
			s.state = StateClean
		} else {
			s.state = StateDirty
		}
	}
}

// Save writes the buffer when it differs from the content of the last save.
// It returns nil when nothing had to be written. A successful save also
// resolves a pending external change.
func (s *DocumentSession) Save(ctx context.Context) (*domain.SaveResult, error) {
	return s.save(ctx, nil)
}

// SaveWithSummary is Save with a change summary recorded on the version
func (s *DocumentSession) SaveWithSummary(ctx context.Context, summary string) (*domain.SaveResult, error) {
	return s.save(ctx, &summary)
}

// Accept resolves a pending external change, saving the reviewed buffer if
// it differs from the incoming content.
func (s *DocumentSession) Accept(ctx context.Context) (*domain.SaveResult, error) {
	s.mu.Lock()
	if s.state != StateExternallyChanged {
		s.mu.Unlock()
		return nil, domain.NewValidationError("there is no external change to accept")
	}
	s.mu.Unlock()
	return s.save(ctx, nil)
}

func (s *DocumentSession) save(ctx context.Context, summary *string) (*domain.SaveResult, error) {
	s.mu.Lock()
	if s.deleted {
		s.mu.Unlock()
		return nil, ErrFileDeleted
	}
	if s.state == StateSaving {
		s.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	content := s.live
	if content == s.baseline {
		if s.state == StateExternallyChanged {
			s.pending = nil
		}
		s.state = StateClean
		s.mu.Unlock()
		return nil, nil
	}
	previous := s.state
	s.state = StateSaving
	s.inFlight = &content
	s.mu.Unlock()

	result, err := s.files.SaveContent(ctx, s.actorID, s.fileID, content, summary)

	s.mu.Lock()
	s.inFlight = nil
	if err != nil {
		if s.state == StateSaving {
			s.state = previous
		}
		s.mu.Unlock()
		s.logger.WithField("error", err.Error()).Warn("Failed to save document")
		return nil, err
	}

	if s.state == StateExternallyChanged {
		// another write landed while saving, it stays up for review
		s.mu.Unlock()
		return result, nil
	}
	s.lastKnown = content
	s.baseline = content
	s.pending = nil
	if s.live == content {
		s.state = StateClean
	} else {
		s.state = StateDirty
	}
	s.mu.Unlock()
	return result, nil
}

// HandleChange applies one event from the feed. Events for other rows and
// events that carry no new content are ignored.
func (s *DocumentSession) HandleChange(evt domain.ChangeEvent) {
	if evt.Table != domain.TableFiles || evt.File == nil || evt.File.ID != s.fileID {
		return
	}
	// a delete carries no content to reconcile, omitted or not
	if evt.Op == domain.OpDelete {
		s.mu.Lock()
		s.deleted = true
		s.mu.Unlock()
		s.logger.Info("Open document was deleted")
		if s.opts.OnDeleted != nil {
			s.opts.OnDeleted()
		}
		return
	}
	if evt.ContentOmitted {
		s.logger.Warn("Dropping change notification without content")
		return
	}

	s.mu.Lock()
	if evt.File.WorkspaceID != "" {
		s.workspaceID = evt.File.WorkspaceID
	}

	incoming := evt.File.Content
	if incoming == s.live || (s.inFlight != nil && incoming == *s.inFlight) {
		// our own write coming back
		s.mu.Unlock()
		return
	}
	if incoming == s.lastKnown {
		s.mu.Unlock()
		return
	}

	change := s.pending
	if change == nil {
		change = &ExternalChange{Previous: s.live}
	}
	change.Incoming = incoming
	change.Conflict = change.Conflict || s.live != s.lastKnown
	change.Diff = textdiff.Lines(change.Previous, incoming)
	change.At = time.Now().UTC()

	s.pending = change
	s.live = incoming
	s.lastKnown = incoming
	s.baseline = incoming
	s.state = StateExternallyChanged
	notify := *change
	s.mu.Unlock()

	s.logger.WithField("conflict", notify.Conflict).WithField("synthetic", evt.Synthetic).Info("External change applied to open document")
	if s.opts.OnExternalChange != nil {
		s.opts.OnExternalChange(notify)
	}
}

// Refresh re-reads the file and feeds it through HandleChange as a synthetic
// update, so a manual reload converges the same way a notification does.
func (s *DocumentSession) Refresh(ctx context.Context) error {
	file, err := s.files.GetFile(ctx, s.actorID, s.fileID)
	if err != nil {
		if domain.IsNotFound(err) {
			s.HandleChange(domain.ChangeEvent{Op: domain.OpDelete, Table: domain.TableFiles, File: &domain.File{ID: s.fileID}, Synthetic: true})
		}
		return err
	}
	evt := domain.NewFileChange(domain.OpUpdate, file)
	evt.Synthetic = true
	s.HandleChange(evt)
	return nil
}

// Run pumps the subscription and autosaves dirty buffers until ctx is
// cancelled or the subscription is closed. A lagging subscription triggers
// a Refresh.
func (s *DocumentSession) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.AutosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-s.sub.Events():
			if !ok {
				return nil
			}
			s.HandleChange(evt)
		case <-s.sub.Lagged():
			// buffered events predate the refetch
			if !s.drain() {
				return nil
			}
			if err := s.Refresh(ctx); err != nil && !domain.IsNotFound(err) {
				s.logger.WithField("error", err.Error()).Warn("Failed to resync document after missed changes")
			}
		case <-ticker.C:
			s.autosave(ctx)
		}
	}
}

// drain applies buffered events and reports false once the subscription is closed
func (s *DocumentSession) drain() bool {
	for {
		select {
		case evt, ok := <-s.sub.Events():
			if !ok {
				return false
			}
			s.HandleChange(evt)
		default:
			return true
		}
	}
}

func (s *DocumentSession) autosave(ctx context.Context) {
	s.mu.Lock()
	due := s.state == StateDirty && s.live != s.baseline
	s.mu.Unlock()
	if !due {
		return
	}
	if _, err := s.Save(ctx); err != nil && !errors.Is(err, ErrSaveInProgress) {
		s.logger.WithField("error", err.Error()).Warn("Autosave failed")
	}
}

// Close tears down the subscription
func (s *DocumentSession) Close() {
	s.sub.Close()
}
