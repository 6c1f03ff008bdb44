package realtime

import (
	"errors"
	"sync"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// DefaultBacklog is the per subscription buffer used when none is configured
const DefaultBacklog = 64

// ErrHubClosed is returned by Subscribe after Close
var ErrHubClosed = errors.New("realtime hub is closed")

// Scope selects the events a subscription receives. An empty Column matches
// every row of Table.
type Scope struct {
	Table  domain.Table
	Column string
	Value  string
}

// FileScope follows a single file row
func FileScope(fileID string) Scope {
	return Scope{Table: domain.TableFiles, Column: "id", Value: fileID}
}

// WorkspaceFilesScope follows every file of a workspace
func WorkspaceFilesScope(workspaceID string) Scope {
	return Scope{Table: domain.TableFiles, Column: "workspace_id", Value: workspaceID}
}

// Matches reports whether evt falls inside the scope
func (s Scope) Matches(evt domain.ChangeEvent) bool {
	if evt.Table != s.Table {
		return false
	}
	if s.Column == "" {
		return true
	}
	value, ok := evt.Column(s.Column)
	return ok && value == s.Value
}

// Subscription is a scoped stream of change events. Events of the same row
// arrive in publish order.
type Subscription struct {
	hub    *Hub
	id     uint64
	scope  Scope
	events chan domain.ChangeEvent
	lagged chan struct{}
	once   sync.Once
}

// Events returns the event stream. It is closed by Close or when the hub shuts down.
func (s *Subscription) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Lagged fires once per overflow. Events were dropped and the consumer must
// resync from the store.
func (s *Subscription) Lagged() <-chan struct{} {
	return s.lagged
}

// Scope returns the scope the subscription was opened with
func (s *Subscription) Scope() Scope {
	return s.scope
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Hub fans change events out to scoped subscriptions. Publish never blocks on
// a slow subscriber.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]*Subscription
	nextID  uint64
	backlog int
	closed  bool
	logger  logger.Logger
}

// NewHub creates a hub whose subscriptions buffer up to backlog events
func NewHub(backlog int, logger logger.Logger) *Hub {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	return &Hub{
		subs:    make(map[uint64]*Subscription),
		backlog: backlog,
		logger:  logger,
	}
}

// Subscribe opens a subscription for scope
func (h *Hub) Subscribe(scope Scope) (*Subscription, error) {
	if !scope.Table.IsValid() {
		return nil, domain.NewValidationError("unknown table " + string(scope.Table))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}

	h.nextID++
	sub := &Subscription{
		hub:    h,
		id:     h.nextID,
		scope:  scope,
		events: make(chan domain.ChangeEvent, h.backlog),
		lagged: make(chan struct{}, 1),
	}
	h.subs[sub.id] = sub
	return sub, nil
}

// Publish delivers evt to every matching subscription. A full subscription
// loses the event and is flagged as lagged.
func (h *Hub) Publish(evt domain.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.scope.Matches(evt) {
			continue
		}
		select {
		case sub.events <- evt:
		default:
			select {
			case sub.lagged <- struct{}{}:
				h.logger.WithField("table", string(sub.scope.Table)).
					WithField("column", sub.scope.Column).
					WithField("value", sub.scope.Value).
					Warn("Subscriber is lagging, dropping change events")
			default:
			}
		}
	}
}

// MarkLagged flags every subscription, used when the feed itself lost events
func (h *Hub) MarkLagged() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		select {
		case sub.lagged <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount returns the number of open subscriptions
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		sub.once.Do(func() { close(sub.events) })
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub.id)
	sub.once.Do(func() { close(sub.events) })
}
