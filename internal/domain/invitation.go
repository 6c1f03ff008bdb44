package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_invitation_repository.go -package mocks github.com/docspace/docspace/internal/domain InvitationRepository

// InvitationStatus is the lifecycle state of an invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

// IsTerminal reports whether the status can no longer change
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationAccepted || s == InvitationDeclined || s == InvitationExpired
}

// CanTransition enforces the forward-only state machine
func (s InvitationStatus) CanTransition(to InvitationStatus) bool {
	return s == InvitationPending && to.IsTerminal()
}

// IsInvitable reports whether the role may be offered through an invitation.
// The collaborator role owner is granted only by ChangeRole.
func (r Role) IsInvitable() bool {
	return r == RoleEditor || r == RoleViewer
}

// Invitation is a time-boxed offer of a role to an email address.
// Token is a bearer credential and is never serialized.
type Invitation struct {
	ID           string           `json:"id"`
	WorkspaceID  string           `json:"workspace_id"`
	InviterID    string           `json:"inviter_id"`
	InviteeEmail string           `json:"invitee_email"`
	InviteeID    *string          `json:"invitee_id,omitempty"`
	Role         Role             `json:"role"`
	Status       InvitationStatus `json:"status"`
	Token        string           `json:"-"`
	ExpiresAt    time.Time        `json:"expires_at"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// IsExpiredAt reports whether a pending invitation has reached its expiry.
// The expiry instant itself counts as expired, matching the sweep.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return i.Status == InvitationExpired || (i.Status == InvitationPending && !now.Before(i.ExpiresAt))
}

// IsLiveAt reports whether the invitation is pending and still acceptable
func (i *Invitation) IsLiveAt(now time.Time) bool {
	return i.Status == InvitationPending && now.Before(i.ExpiresAt)
}

// IsAddressedTo reports whether the invitation targets the user by id or email
func (i *Invitation) IsAddressedTo(userID, email string) bool {
	if i.InviteeID != nil && *i.InviteeID == userID {
		return true
	}
	return email != "" && NormalizeEmail(i.InviteeEmail) == NormalizeEmail(email)
}

// InvitationSweep is the outcome of a bulk expiry run
type InvitationSweep struct {
	Expired int64 `json:"expired"`
	Purged  int64 `json:"purged"`
}

// InvitationRepository persists invitations
type InvitationRepository interface {
	// Create fails with *ErrDuplicateInvitation when a pending row exists for the workspace and email
	Create(ctx context.Context, invitation *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	// FindByWorkspaceAndEmail returns the current row for the pair, any status
	FindByWorkspaceAndEmail(ctx context.Context, workspaceID, email string) (*Invitation, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*Invitation, error)
	ListPendingForUser(ctx context.Context, userID, email string) ([]*Invitation, error)
	// TransitionStatus moves a pending row to a terminal status. It reports false
	// when the row was no longer pending.
	TransitionStatus(ctx context.Context, id string, to InvitationStatus, inviteeID *string) (bool, error)
	Delete(ctx context.Context, id string) error
	// DeleteForMember removes every row in the workspace addressed to the user id or email
	DeleteForMember(ctx context.Context, workspaceID, userID, email string) (int64, error)
	// DeletePendingForEmail retires pending rows when a member is added directly
	DeletePendingForEmail(ctx context.Context, workspaceID, email string) (int64, error)
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
	PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error)
	// LinkInvitee sets invitee_id on pending rows for the email whose invitee_id is null
	LinkInvitee(ctx context.Context, userID, email string) (int64, error)
}

type CreateInvitationRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

func (r *CreateInvitationRequest) Validate() error {
	if err := validateID("workspace_id", r.WorkspaceID); err != nil {
		return err
	}
	email, err := ValidateEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	if r.Role == "" {
		r.Role = RoleEditor
	}
	if !r.Role.IsInvitable() {
		return NewValidationError(fmt.Sprintf("invalid role: %q", r.Role))
	}
	return nil
}

type InvitationIDRequest struct {
	InvitationID string `json:"invitation_id"`
}

func (r *InvitationIDRequest) Validate() error {
	return validateID("invitation_id", r.InvitationID)
}

type ResolveInvitationRequest struct {
	Token string `json:"token"`
}

func (r *ResolveInvitationRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	if r.Token == "" {
		return NewValidationError("token is required")
	}
	if len(r.Token) > 256 {
		return NewValidationError("token is not valid")
	}
	return nil
}
