package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

func fileEvent(id, workspaceID, content string) domain.ChangeEvent {
	return domain.NewFileChange(domain.OpUpdate, &domain.File{ID: id, WorkspaceID: workspaceID, Content: content})
}

func receive(t *testing.T, sub *Subscription) domain.ChangeEvent {
	t.Helper()
	select {
	case evt, ok := <-sub.Events():
		require.True(t, ok, "subscription closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
	return domain.ChangeEvent{}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case evt := <-sub.Events():
		t.Fatalf("unexpected event for %s", evt.Table)
	default:
	}
}

func TestScope_Matches(t *testing.T) {
	evt := fileEvent("f1", "ws-1", "a")

	assert.True(t, FileScope("f1").Matches(evt))
	assert.False(t, FileScope("f2").Matches(evt))
	assert.True(t, WorkspaceFilesScope("ws-1").Matches(evt))
	assert.True(t, Scope{Table: domain.TableFiles}.Matches(evt))
	assert.False(t, Scope{Table: domain.TableInvitations}.Matches(evt))
	assert.False(t, Scope{Table: domain.TableFiles, Column: "owner_id", Value: "x"}.Matches(evt))

	invitee := "bob"
	inv := domain.NewInvitationChange(domain.OpUpdate, &domain.Invitation{ID: "i1", WorkspaceID: "ws-1", InviteeEmail: "Bob@X.com", InviteeID: &invitee})
	assert.True(t, Scope{Table: domain.TableInvitations, Column: "invitee_email", Value: "bob@x.com"}.Matches(inv))
	assert.True(t, Scope{Table: domain.TableInvitations, Column: "invitee_id", Value: "bob"}.Matches(inv))
}

func TestHub_DeliversToMatchingSubscribers(t *testing.T) {
	hub := NewHub(8, logger.NewTestLogger(t))
	defer hub.Close()

	fileSub, err := hub.Subscribe(FileScope("f1"))
	require.NoError(t, err)
	wsSub, err := hub.Subscribe(WorkspaceFilesScope("ws-1"))
	require.NoError(t, err)
	otherSub, err := hub.Subscribe(FileScope("f2"))
	require.NoError(t, err)

	hub.Publish(fileEvent("f1", "ws-1", "a"))
	hub.Publish(fileEvent("f1", "ws-1", "b"))

	assert.Equal(t, "a", receive(t, fileSub).File.Content)
	assert.Equal(t, "b", receive(t, fileSub).File.Content)
	assert.Equal(t, "a", receive(t, wsSub).File.Content)
	assert.Equal(t, "b", receive(t, wsSub).File.Content)
	assertNoEvent(t, otherSub)
}

func TestHub_SlowSubscriberIsFlaggedNotBlocking(t *testing.T) {
	hub := NewHub(2, logger.NewTestLogger(t))
	defer hub.Close()

	slow, err := hub.Subscribe(FileScope("f1"))
	require.NoError(t, err)
	fast, err := hub.Subscribe(FileScope("f1"))
	require.NoError(t, err)

	for i, content := range []string{"a", "b", "c", "d"} {
		hub.Publish(fileEvent("f1", "ws-1", content))
		if i < 2 {
			assert.Equal(t, content, receive(t, fast).File.Content)
		} else {
			receive(t, fast)
		}
	}

	select {
	case <-slow.Lagged():
	default:
		t.Fatal("slow subscriber was not flagged")
	}
	assert.Equal(t, "a", receive(t, slow).File.Content)
	assert.Equal(t, "b", receive(t, slow).File.Content)
	assertNoEvent(t, slow)

	select {
	case <-fast.Lagged():
		t.Fatal("fast subscriber should not lag")
	default:
	}
}

func TestHub_CloseSubscription(t *testing.T) {
	hub := NewHub(4, logger.NewTestLogger(t))
	defer hub.Close()

	sub, err := hub.Subscribe(FileScope("f1"))
	require.NoError(t, err)
	assert.Equal(t, 1, hub.SubscriberCount())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount())

	hub.Publish(fileEvent("f1", "ws-1", "a"))
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(4, logger.NewTestLogger(t))
	sub, err := hub.Subscribe(FileScope("f1"))
	require.NoError(t, err)

	hub.Close()
	_, ok := <-sub.Events()
	assert.False(t, ok)
	sub.Close()

	_, err = hub.Subscribe(FileScope("f1"))
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHub_SubscribeRejectsUnknownTable(t *testing.T) {
	hub := NewHub(4, logger.NewTestLogger(t))
	defer hub.Close()

	_, err := hub.Subscribe(Scope{Table: "chat_messages"})
	assert.True(t, domain.IsValidation(err))
}

func TestHub_MarkLagged(t *testing.T) {
	hub := NewHub(4, logger.NewTestLogger(t))
	defer hub.Close()

	a, _ := hub.Subscribe(FileScope("f1"))
	b, _ := hub.Subscribe(WorkspaceFilesScope("ws-1"))
	hub.MarkLagged()
	hub.MarkLagged()

	for _, sub := range []*Subscription{a, b} {
		select {
		case <-sub.Lagged():
		default:
			t.Fatal("subscription not flagged")
		}
	}
}
