package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/tracing"
)

// ExpirySweeper is the part of the invitation service the sweeper drives
type ExpirySweeper interface {
	ExpireSweep(ctx context.Context, now time.Time) (*domain.InvitationSweep, error)
}

// InvitationSweeper runs the invitation expiry sweep on a cron schedule
type InvitationSweeper struct {
	invitations ExpirySweeper
	schedule    string
	logger      logger.Logger
	now         func() time.Time
}

// NewInvitationSweeper creates a sweeper. schedule accepts standard cron
// expressions and descriptors such as "@every 1h".
func NewInvitationSweeper(invitations ExpirySweeper, schedule string, logger logger.Logger) *InvitationSweeper {
	return &InvitationSweeper{
		invitations: invitations,
		schedule:    schedule,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps once, then on every tick until ctx is cancelled. A tick is
// skipped while the previous sweep is still running.
func (s *InvitationSweeper) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.logger})),
	)
	if _, err := c.AddFunc(s.schedule, func() { _, _ = s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.logger.WithField("schedule", s.schedule).Info("Starting invitation sweeper")
	_, _ = s.RunOnce(ctx)
	c.Start()

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	s.logger.Info("Invitation sweeper stopped")
	return nil
}

// RunOnce performs a single sweep
func (s *InvitationSweeper) RunOnce(ctx context.Context) (result *domain.InvitationSweep, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "InvitationSweeper", "RunOnce")
	defer func() { tracing.EndSpan(span, err) }()

	start := time.Now()
	result, err = s.invitations.ExpireSweep(ctx, s.now())
	if err != nil {
		s.logger.WithField("error", err.Error()).WithField("elapsed", time.Since(start)).Error("Invitation sweep failed")
		return nil, err
	}
	s.logger.WithField("expired", result.Expired).WithField("purged", result.Purged).WithField("elapsed", time.Since(start)).Debug("Invitation sweep completed")
	return result, nil
}

// cronLogger adapts logger.Logger to cron.Logger
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).WithField("error", err.Error()).Error(msg)
}

func (l cronLogger) with(keysAndValues []interface{}) logger.Logger {
	log := l.log
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		log = log.WithField(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	return log
}
