package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_activity_repository.go -package mocks github.com/docspace/docspace/internal/domain ActivityRepository

// ActivityKind names a recorded workspace event
type ActivityKind string

const (
	ActivityFileCreated    ActivityKind = "file_created"
	ActivityFileDeleted    ActivityKind = "file_deleted"
	ActivityFileRenamed    ActivityKind = "file_renamed"
	ActivityVersionRestore ActivityKind = "version_restored"
	ActivityHistoryCleared ActivityKind = "history_cleared"
	ActivityMemberJoined   ActivityKind = "member_joined"
	ActivityMemberRemoved  ActivityKind = "member_removed"
	ActivityRoleChanged    ActivityKind = "role_changed"
)

// ActivityEntry is one row of the workspace activity log
type ActivityEntry struct {
	ID          string       `json:"id"`
	WorkspaceID string       `json:"workspace_id"`
	ActorID     string       `json:"actor_id"`
	Kind        ActivityKind `json:"kind"`
	SubjectID   string       `json:"subject_id"`
	Detail      string       `json:"detail,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ActivityRepository persists the activity log
type ActivityRepository interface {
	Record(ctx context.Context, entry *ActivityEntry) error
	ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]*ActivityEntry, error)
}

type ListActivityRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Limit       int    `json:"limit"`
}

func (r *ListActivityRequest) Validate() error {
	if err := validateID("workspace_id", r.WorkspaceID); err != nil {
		return err
	}
	if r.Limit <= 0 || r.Limit > 200 {
		r.Limit = 50
	}
	return nil
}
