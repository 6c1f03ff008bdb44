package domain

import "context"

//go:generate mockgen -destination mocks/mock_workspace_cleanup_repository.go -package mocks github.com/docspace/docspace/internal/domain WorkspaceCleanupRepository

// DeletionStep names one stage of workspace deletion
type DeletionStep string

const (
	StepFileVersions  DeletionStep = "file_versions"
	StepFiles         DeletionStep = "files"
	StepChatMessages  DeletionStep = "chat_messages"
	StepActivityLog   DeletionStep = "activity_log"
	StepInvitations   DeletionStep = "invitations"
	StepJoinRequests  DeletionStep = "join_requests"
	StepCollaborators DeletionStep = "collaborators"
	StepWorkspace     DeletionStep = "workspace"
)

// DeletionOrder lists steps children first so no row is left pointing at a deleted parent
var DeletionOrder = []DeletionStep{
	StepFileVersions,
	StepFiles,
	StepChatMessages,
	StepActivityLog,
	StepInvitations,
	StepJoinRequests,
	StepCollaborators,
	StepWorkspace,
}

// WorkspaceCleanupRepository deletes everything under a workspace one step at a time.
// Every step deletes by parent id, so repeating a step is a no-op.
type WorkspaceCleanupRepository interface {
	DeleteStep(ctx context.Context, workspaceID string, step DeletionStep) (int64, error)
}
