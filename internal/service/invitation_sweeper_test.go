package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/domain/mocks"
	"github.com/docspace/docspace/pkg/logger"
)

func TestInvitationSweeper_RunOnce(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invitations := mocks.NewMockInvitationService(ctrl)
	sweeper := NewInvitationSweeper(invitations, "@every 1h", logger.NewTestLogger(t))
	sweeper.now = func() time.Time { return testNow }

	t.Run("passes the clock through", func(t *testing.T) {
		invitations.EXPECT().ExpireSweep(gomock.Any(), testNow).Return(&domain.InvitationSweep{Expired: 2, Purged: 1}, nil)

		result, err := sweeper.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Expired)
	})

	t.Run("errors are returned", func(t *testing.T) {
		invitations.EXPECT().ExpireSweep(gomock.Any(), testNow).Return(nil, errors.New("db down"))

		_, err := sweeper.RunOnce(ctx)
		require.Error(t, err)
	})
}

type countingSweeper struct {
	calls int32
}

func (c *countingSweeper) ExpireSweep(_ context.Context, _ time.Time) (*domain.InvitationSweep, error) {
	atomic.AddInt32(&c.calls, 1)
	return &domain.InvitationSweep{}, nil
}

func TestInvitationSweeper_Run(t *testing.T) {
	t.Run("sweeps at start and stops with the context", func(t *testing.T) {
		counter := &countingSweeper{}
		sweeper := NewInvitationSweeper(counter, "@every 1h", logger.NewTestLogger(t))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- sweeper.Run(ctx) }()

		require.Eventually(t, func() bool { return atomic.LoadInt32(&counter.calls) >= 1 }, time.Second, 10*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("sweeper did not stop")
		}
	})

	t.Run("invalid schedule", func(t *testing.T) {
		sweeper := NewInvitationSweeper(&countingSweeper{}, "every now and then", logger.NewTestLogger(t))

		err := sweeper.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sweep schedule")
	})
}
