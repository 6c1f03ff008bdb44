package domain

import (
	"context"
	"time"

	"github.com/docspace/docspace/pkg/textdiff"
)

//go:generate mockgen -destination mocks/mock_access_service.go -package mocks github.com/docspace/docspace/internal/domain AccessService
//go:generate mockgen -destination mocks/mock_workspace_service.go -package mocks github.com/docspace/docspace/internal/domain WorkspaceService
//go:generate mockgen -destination mocks/mock_invitation_service.go -package mocks github.com/docspace/docspace/internal/domain InvitationService
//go:generate mockgen -destination mocks/mock_user_service.go -package mocks github.com/docspace/docspace/internal/domain UserService
//go:generate mockgen -destination mocks/mock_file_service.go -package mocks github.com/docspace/docspace/internal/domain FileService

// AccessService loads role snapshots and gates actions
type AccessService interface {
	// Authorize returns the snapshot the decision was made on, or a *PermissionError.
	// A workspace the actor cannot see is reported as *ErrNotFound.
	Authorize(ctx context.Context, actorID, workspaceID string, action Action) (*AccessSnapshot, error)
	CanPerform(ctx context.Context, actorID, workspaceID string, action Action) (bool, error)
	// Invalidate drops cached snapshots after a membership change
	Invalidate(ctx context.Context, workspaceID string, userIDs ...string)
}

// WorkspaceService manages workspaces and their members
type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, actorID string, req *CreateWorkspaceRequest) (*Workspace, error)
	GetWorkspace(ctx context.Context, actorID, workspaceID string) (*Workspace, error)
	ListWorkspaces(ctx context.Context, actorID string) ([]*Workspace, error)
	UpdateWorkspace(ctx context.Context, actorID string, req *UpdateWorkspaceRequest) (*Workspace, error)
	DeleteWorkspace(ctx context.Context, actorID, workspaceID string) error
	EnsureOwnerCollaborator(ctx context.Context, workspaceID string) error

	ListCollaborators(ctx context.Context, actorID, workspaceID string) ([]*CollaboratorWithUser, error)
	AddCollaborator(ctx context.Context, actorID string, req *AddCollaboratorRequest) (*Collaborator, error)
	RemoveCollaborator(ctx context.Context, actorID, workspaceID, userID string) error
	ChangeRole(ctx context.Context, actorID, workspaceID, userID string, role Role) (*Collaborator, error)

	ListActivity(ctx context.Context, actorID, workspaceID string, limit int) ([]*ActivityEntry, error)
}

// CreateInvitationResult is returned by CreateInvitation. EmailWarning is set
// when delivery failed, the invitation and link remain valid.
type CreateInvitationResult struct {
	Invitation   *Invitation `json:"invitation"`
	Link         string      `json:"link"`
	EmailWarning string      `json:"email_warning,omitempty"`
}

// InvitationService drives the invitation lifecycle
type InvitationService interface {
	CreateInvitation(ctx context.Context, inviterID, workspaceID, email string, role Role) (*CreateInvitationResult, error)
	ResolveByToken(ctx context.Context, token string) (*Invitation, error)
	Accept(ctx context.Context, userID, invitationID string) (*Invitation, error)
	Decline(ctx context.Context, actorID, invitationID string) (*Invitation, error)
	Revoke(ctx context.Context, actorID, invitationID string) error
	ListInvitations(ctx context.Context, actorID, workspaceID string) ([]*Invitation, error)
	ListMyInvitations(ctx context.Context, userID string) ([]*Invitation, error)
	ExpireSweep(ctx context.Context, now time.Time) (*InvitationSweep, error)

	MembershipHooks
	OnUserFirstSeen(ctx context.Context, userID, email string) error
}

// MembershipHooks keeps invitations consistent with membership changes
type MembershipHooks interface {
	OnCollaboratorAdded(ctx context.Context, workspaceID, userID string) error
	OnCollaboratorRemoved(ctx context.Context, workspaceID, userID string) error
}

// UserService reacts to authentication
type UserService interface {
	// EnsureUser creates the user on first sight and links pending invitations
	EnsureUser(ctx context.Context, identity Identity) (*User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
}

// SaveResult is the outcome of writing a file's content
type SaveResult struct {
	File    *File        `json:"file"`
	Version *FileVersion `json:"version"`
}

// FileService manages files and their version history
type FileService interface {
	CreateFile(ctx context.Context, actorID string, req *CreateFileRequest) (*File, error)
	GetFile(ctx context.Context, actorID, fileID string) (*File, error)
	ListFiles(ctx context.Context, actorID, workspaceID string) ([]*File, error)
	SaveContent(ctx context.Context, actorID, fileID, content string, summary *string) (*SaveResult, error)
	RenameFile(ctx context.Context, actorID, fileID, filename string) (*File, error)
	DeleteFile(ctx context.Context, actorID, fileID string) error

	CreateVersion(ctx context.Context, actorID, fileID, content string, summary *string) (*FileVersion, error)
	ListVersions(ctx context.Context, actorID, fileID string) ([]*FileVersion, error)
	RestoreVersion(ctx context.Context, actorID, fileID, versionID string) (*File, error)
	ClearHistory(ctx context.Context, actorID, fileID string, confirm bool) (int64, error)
	Diff(ctx context.Context, actorID string, req *DiffRequest) ([]textdiff.Line, error)
}
