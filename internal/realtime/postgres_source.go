package realtime

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

const (
	minReconnectInterval = 500 * time.Millisecond
	maxReconnectInterval = time.Minute
	listenerPingInterval = 90 * time.Second
)

// notifier is the subset of *pq.Listener the source drives
type notifier interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

type fileReader interface {
	GetByID(ctx context.Context, id string) (*domain.File, error)
}

type versionReader interface {
	GetByID(ctx context.Context, id string) (*domain.FileVersion, error)
}

// PostgresSource feeds the hub from the LISTEN/NOTIFY change channel. Rows
// whose content was too large for a notification are re-read before publishing.
type PostgresSource struct {
	hub      *Hub
	files    fileReader
	versions versionReader
	logger   logger.Logger
	connect  func() notifier
}

// NewPostgresSource creates a source listening with its own connection to dsn
func NewPostgresSource(dsn string, hub *Hub, files fileReader, versions versionReader, log logger.Logger) *PostgresSource {
	s := &PostgresSource{
		hub:      hub,
		files:    files,
		versions: versions,
		logger:   log,
	}
	s.connect = func() notifier {
		return pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, s.onListenerEvent)
	}
	return s
}

// Run listens until ctx is cancelled
func (s *PostgresSource) Run(ctx context.Context) error {
	listener := s.connect()
	defer listener.Close()

	if err := listener.Listen(database.ChangeChannel); err != nil {
		return &domain.ErrDependencyUnavailable{Dependency: "change feed", Err: err}
	}
	s.logger.WithField("channel", database.ChangeChannel).Info("Listening for change notifications")

	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()

	notifications := listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-notifications:
			if !ok {
				return &domain.ErrDependencyUnavailable{Dependency: "change feed", Err: errors.New("listener closed")}
			}
			if n == nil {
				// reconnected, anything sent meanwhile is gone
				s.hub.MarkLagged()
				continue
			}
			s.Handle(ctx, []byte(n.Extra))
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					s.logger.WithField("error", err.Error()).Warn("Change listener ping failed")
				}
			}()
		}
	}
}

// Handle decodes one payload and publishes it. Malformed payloads are dropped.
func (s *PostgresSource) Handle(ctx context.Context, payload []byte) {
	evt, err := DecodeChange(payload)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Dropping malformed change notification")
		return
	}

	if evt.ContentOmitted && evt.Op != domain.OpDelete {
		if err := s.hydrate(ctx, &evt); err != nil {
			if domain.IsNotFound(err) {
				// deleted since, the delete event follows
				return
			}
			s.logger.WithField("table", string(evt.Table)).WithField("error", err.Error()).Warn("Failed to load omitted content")
			s.hub.MarkLagged()
			return
		}
	}
	s.hub.Publish(evt)
}

func (s *PostgresSource) hydrate(ctx context.Context, evt *domain.ChangeEvent) error {
	switch {
	case evt.File != nil:
		file, err := s.files.GetByID(ctx, evt.File.ID)
		if err != nil {
			return err
		}
		evt.File = file
	case evt.FileVersion != nil:
		version, err := s.versions.GetByID(ctx, evt.FileVersion.ID)
		if err != nil {
			return err
		}
		evt.FileVersion = version
	}
	evt.ContentOmitted = false
	return nil
}

func (s *PostgresSource) onListenerEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		s.logger.Debug("Change listener connected")
	case pq.ListenerEventDisconnected:
		msg := "unknown"
		if err != nil {
			msg = err.Error()
		}
		s.logger.WithField("error", msg).Warn("Change listener disconnected")
	case pq.ListenerEventReconnected:
		s.logger.Info("Change listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		if err != nil {
			s.logger.WithField("error", err.Error()).Warn("Change listener connection attempt failed")
		}
	}
}
