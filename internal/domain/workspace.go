package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_workspace_repository.go -package mocks github.com/docspace/docspace/internal/domain WorkspaceRepository
//go:generate mockgen -destination mocks/mock_collaborator_repository.go -package mocks github.com/docspace/docspace/internal/domain CollaboratorRepository

// Role is a collaborator's role in a workspace
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r includes every permission of other
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] > 0 && roleRank[r] >= roleRank[other]
}

// Workspace is the tenant boundary holding files, chat and membership
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate performs validation on the workspace fields
func (w *Workspace) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return NewValidationError("name is required")
	}
	if len(w.Name) > 120 {
		return NewValidationError("name length must be between 1 and 120")
	}
	if len(w.Description) > 2000 {
		return NewValidationError("description must be at most 2000 characters")
	}
	if w.OwnerID == "" {
		return NewValidationError("owner_id is required")
	}
	return nil
}

// Collaborator is the membership of a user in a workspace
type Collaborator struct {
	WorkspaceID string    `json:"workspace_id"`
	UserID      string    `json:"user_id"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollaboratorWithUser joins the member's profile for listings
type CollaboratorWithUser struct {
	Collaborator
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// WorkspaceRepository persists workspaces
type WorkspaceRepository interface {
	// Create inserts the workspace together with its owner collaborator row
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	// ListVisibleTo returns workspaces owned by the user or where the user collaborates
	ListVisibleTo(ctx context.Context, userID string) ([]*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
}

// CollaboratorRepository persists workspace membership
type CollaboratorRepository interface {
	// Add fails with *ErrConflict when the pair already exists
	Add(ctx context.Context, collaborator *Collaborator) error
	// EnsureOwner inserts an owner row or upgrades an existing row to owner
	EnsureOwner(ctx context.Context, workspaceID, userID string) (repaired bool, err error)
	Get(ctx context.Context, workspaceID, userID string) (*Collaborator, error)
	List(ctx context.Context, workspaceID string) ([]*CollaboratorWithUser, error)
	UpdateRole(ctx context.Context, workspaceID, userID string, role Role) error
	Remove(ctx context.Context, workspaceID, userID string) error
}

type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateWorkspaceRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return NewValidationError("invalid create workspace request: name is required")
	}
	if len(r.Name) > 120 {
		return NewValidationError("invalid create workspace request: name length must be between 1 and 120")
	}
	return nil
}

type UpdateWorkspaceRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *UpdateWorkspaceRequest) Validate() error {
	if err := validateID("workspace_id", r.ID); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" || len(r.Name) > 120 {
		return NewValidationError("invalid update workspace request: name length must be between 1 and 120")
	}
	return nil
}

type WorkspaceIDRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

func (r *WorkspaceIDRequest) Validate() error {
	return validateID("workspace_id", r.WorkspaceID)
}

type AddCollaboratorRequest struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	Role        Role   `json:"role"`
}

func (r *AddCollaboratorRequest) Validate() error {
	if err := validateID("workspace_id", r.WorkspaceID); err != nil {
		return err
	}
	if err := validateUserID(r.UserID); err != nil {
		return err
	}
	if !r.Role.IsValid() {
		return NewValidationError(fmt.Sprintf("invalid role: %q", r.Role))
	}
	return nil
}

type SetRoleRequest struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	Role        Role   `json:"role"`
}

func (r *SetRoleRequest) Validate() error {
	req := AddCollaboratorRequest(*r)
	return req.Validate()
}

type RemoveCollaboratorRequest struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
}

func (r *RemoveCollaboratorRequest) Validate() error {
	if err := validateID("workspace_id", r.WorkspaceID); err != nil {
		return err
	}
	return validateUserID(r.UserID)
}

// validateID accepts UUIDs, the only identifier format the store generates
func validateID(field, value string) error {
	if value == "" {
		return NewValidationError(fmt.Sprintf("%s is required", field))
	}
	if !govalidator.IsUUID(value) {
		return NewValidationError(fmt.Sprintf("%s must be a UUID", field))
	}
	return nil
}

// validateUserID checks ids issued by the identity provider, which are opaque strings
func validateUserID(value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError("user_id is required")
	}
	if len(value) > 128 {
		return NewValidationError("user_id must be at most 128 characters")
	}
	return nil
}
