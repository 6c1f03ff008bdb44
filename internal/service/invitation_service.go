package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docspace/docspace/config"
	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/mailer"
	"github.com/docspace/docspace/pkg/ratelimiter"
	"github.com/docspace/docspace/pkg/tracing"
)

const (
	invitationRateNamespace = "invitations"
	invitationTokenBytes    = 32
	defaultInvitationTTL    = 7 * 24 * time.Hour
	defaultPurgeAge         = 30 * 24 * time.Hour
)

type InvitationService struct {
	repo          domain.InvitationRepository
	workspaces    domain.WorkspaceRepository
	collaborators domain.CollaboratorRepository
	users         domain.UserRepository
	activity      domain.ActivityRepository
	access        domain.AccessService
	mailer        mailer.Mailer
	limiter       *ratelimiter.Limiter
	logger        logger.Logger

	appOrigin string
	ttl       time.Duration
	purgeAge  time.Duration

	now      func() time.Time
	newToken func() (string, error)
}

// NewInvitationService creates the invitation lifecycle manager. Rate limiting is
// off when limiter is nil or cfg.InvitesPerHour is zero.
func NewInvitationService(
	repo domain.InvitationRepository,
	workspaces domain.WorkspaceRepository,
	collaborators domain.CollaboratorRepository,
	users domain.UserRepository,
	activity domain.ActivityRepository,
	access domain.AccessService,
	mailerInstance mailer.Mailer,
	limiter *ratelimiter.Limiter,
	cfg *config.WorkspaceConfig,
	logger logger.Logger,
) *InvitationService {
	s := &InvitationService{
		repo:          repo,
		workspaces:    workspaces,
		collaborators: collaborators,
		users:         users,
		activity:      activity,
		access:        access,
		mailer:        mailerInstance,
		limiter:       limiter,
		logger:        logger,
		appOrigin:     strings.TrimRight(cfg.AppOrigin, "/"),
		ttl:           cfg.InvitationTTL,
		purgeAge:      cfg.ExpiredPurgeAge,
		now:           func() time.Time { return time.Now().UTC() },
		newToken:      generateInvitationToken,
	}
	if s.ttl <= 0 {
		s.ttl = defaultInvitationTTL
	}
	if s.purgeAge <= 0 {
		s.purgeAge = defaultPurgeAge
	}
	if limiter != nil && cfg.InvitesPerHour > 0 {
		limiter.SetPolicy(invitationRateNamespace, cfg.InvitesPerHour, time.Hour)
	} else {
		// the limiter denies namespaces without a policy
		s.limiter = nil
	}
	return s
}

// generateInvitationToken returns 32 random bytes, hex encoded. The token is a bearer credential.
func generateInvitationToken() (string, error) {
	b := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Link returns the shareable address for a token
func (s *InvitationService) Link(token string) string {
	return s.appOrigin + "/invite/" + token
}

func (s *InvitationService) CreateInvitation(ctx context.Context, inviterID, workspaceID, email string, role domain.Role) (result *domain.CreateInvitationResult, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "InvitationService", "CreateInvitation")
	defer func() { tracing.EndSpan(span, err) }()
	tracing.AddAttribute(ctx, "workspace_id", workspaceID)

	req := &domain.CreateInvitationRequest{WorkspaceID: workspaceID, Email: email, Role: role}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.access.Authorize(ctx, inviterID, workspaceID, domain.ActionManageCollaborators)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(invitationRateNamespace, inviterID) {
		retry := int(math.Ceil(s.limiter.RetryAfter(invitationRateNamespace, inviterID).Seconds()))
		s.logger.WithField("workspace_id", workspaceID).WithField("user_id", inviterID).Warn("Invitation rate limit exceeded")
		return nil, &domain.ErrRateLimited{Action: "invitation", RetryAfter: retry}
	}

	// An existing account for the address may already be a member.
	var inviteeID *string
	invitee, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if invitee.ID == snap.Workspace.OwnerID {
			return nil, &domain.ErrAlreadyMember{WorkspaceID: workspaceID, Email: req.Email}
		}
		if _, err := s.collaborators.Get(ctx, workspaceID, invitee.ID); err == nil {
			return nil, &domain.ErrAlreadyMember{WorkspaceID: workspaceID, Email: req.Email}
		} else if !domain.IsNotFound(err) {
			return nil, err
		}
		inviteeID = &invitee.ID
	case !domain.IsNotFound(err):
		return nil, err
	}

	now := s.now()
	existing, err := s.repo.FindByWorkspaceAndEmail(ctx, workspaceID, req.Email)
	switch {
	case err == nil:
		if existing.IsLiveAt(now) {
			return nil, &domain.ErrDuplicateInvitation{WorkspaceID: workspaceID, Email: req.Email}
		}
		// Stale rows are removed so the address holds one invitation per workspace.
		if err := s.repo.Delete(ctx, existing.ID); err != nil && !domain.IsNotFound(err) {
			return nil, err
		}
	case !domain.IsNotFound(err):
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		return nil, err
	}

	invitation := &domain.Invitation{
		ID:           uuid.New().String(),
		WorkspaceID:  workspaceID,
		InviterID:    inviterID,
		InviteeEmail: req.Email,
		InviteeID:    inviteeID,
		Role:         req.Role,
		Status:       domain.InvitationPending,
		Token:        token,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, invitation); err != nil {
		if !domain.IsDuplicateInvitation(err) {
			s.logger.WithField("workspace_id", workspaceID).WithField("error", err.Error()).Error("Failed to create invitation")
		}
		return nil, err
	}

	result = &domain.CreateInvitationResult{Invitation: invitation, Link: s.Link(token)}
	if err := s.sendInvitationEmail(ctx, snap.Workspace, inviterID, invitation, result.Link); err != nil {
		s.logger.WithField("workspace_id", workspaceID).
			WithField("invitation_id", invitation.ID).
			WithField("error", err.Error()).
			Warn("Failed to send invitation email")
		result.EmailWarning = "invitation email could not be delivered, share the link instead: " + err.Error()
	}

	s.logger.WithField("workspace_id", workspaceID).WithField("invitation_id", invitation.ID).Info("Invitation created")
	return result, nil
}

func (s *InvitationService) sendInvitationEmail(ctx context.Context, workspace *domain.Workspace, inviterID string, invitation *domain.Invitation, link string) error {
	if s.mailer == nil {
		return fmt.Errorf("no mailer configured")
	}

	inviterName := inviterID
	if inviter, err := s.users.GetByID(ctx, inviterID); err == nil {
		inviterName = inviter.DisplayName
		if inviterName == "" {
			inviterName = inviter.Email
		}
	}

	msg, err := mailer.RenderInvitation(mailer.InvitationData{
		WorkspaceName: workspace.Name,
		InviterName:   inviterName,
		Role:          string(invitation.Role),
		Link:          link,
		ExpiresAt:     invitation.ExpiresAt.Format("January 2, 2006"),
	})
	if err != nil {
		return err
	}

	_, err = s.mailer.Send(ctx, invitation.InviteeEmail, msg.Subject, msg.HTML, msg.Text)
	return err
}

// ResolveByToken returns a live pending invitation. Terminal invitations are
// reported as not found so a used link reveals nothing.
func (s *InvitationService) ResolveByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	req := &domain.ResolveInvitationRequest{Token: token}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invitation, err := s.repo.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if invitation.Status != domain.InvitationPending {
		return nil, domain.NewNotFound("invitation", "token")
	}
	if invitation.IsExpiredAt(s.now()) {
		s.markExpired(ctx, invitation)
		return nil, &domain.ErrInvitationExpired{InvitationID: invitation.ID}
	}
	return invitation, nil
}

// Accept makes the user a collaborator. Accepting twice, or while already a
// member, ends in the same state without error.
func (s *InvitationService) Accept(ctx context.Context, userID, invitationID string) (*domain.Invitation, error) {
	req := &domain.InvitationIDRequest{InvitationID: invitationID}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	switch invitation.Status {
	case domain.InvitationAccepted:
		if invitation.InviteeID != nil && *invitation.InviteeID == userID {
			return invitation, nil
		}
		return nil, &domain.ErrConflict{Entity: "invitation", Message: "invitation has already been accepted"}
	case domain.InvitationDeclined:
		return nil, &domain.ErrConflict{Entity: "invitation", Message: "invitation has been declined"}
	case domain.InvitationExpired:
		return nil, &domain.ErrInvitationExpired{InvitationID: invitationID}
	}

	if invitation.IsExpiredAt(s.now()) {
		s.markExpired(ctx, invitation)
		return nil, &domain.ErrInvitationExpired{InvitationID: invitationID}
	}
	if err := s.authorizeInvitee(ctx, userID, invitation); err != nil {
		return nil, err
	}

	collaborator := &domain.Collaborator{WorkspaceID: invitation.WorkspaceID, UserID: userID, Role: invitation.Role}
	if err := s.collaborators.Add(ctx, collaborator); err != nil {
		if !domain.IsConflict(err) {
			s.logger.WithField("invitation_id", invitationID).WithField("error", err.Error()).Error("Failed to add collaborator on accept")
			return nil, err
		}
		// Already a member, possibly through a concurrent accept.
		s.logger.WithField("invitation_id", invitationID).WithField("user_id", userID).Debug("Accepting user is already a collaborator")
	}

	moved, err := s.repo.TransitionStatus(ctx, invitationID, domain.InvitationAccepted, &userID)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetByID(ctx, invitationID)
		if err != nil {
			return nil, err
		}
		if current.Status == domain.InvitationAccepted && current.InviteeID != nil && *current.InviteeID == userID {
			return current, nil
		}
		return nil, &domain.ErrConflict{Entity: "invitation", Message: fmt.Sprintf("invitation is %s", current.Status)}
	}

	s.access.Invalidate(ctx, invitation.WorkspaceID, userID)
	recordActivity(ctx, s.activity, s.logger, invitation.WorkspaceID, userID, domain.ActivityMemberJoined, userID, string(invitation.Role))

	invitation.Status = domain.InvitationAccepted
	invitation.InviteeID = &userID
	invitation.UpdatedAt = s.now()
	s.logger.WithField("workspace_id", invitation.WorkspaceID).WithField("invitation_id", invitationID).Info("Invitation accepted")
	return invitation, nil
}

// Decline may be called by the invitee or by a member allowed to manage collaborators
func (s *InvitationService) Decline(ctx context.Context, actorID, invitationID string) (*domain.Invitation, error) {
	req := &domain.InvitationIDRequest{InvitationID: invitationID}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeResponder(ctx, actorID, invitation); err != nil {
		return nil, err
	}

	switch invitation.Status {
	case domain.InvitationDeclined:
		return invitation, nil
	case domain.InvitationAccepted:
		return nil, &domain.ErrConflict{Entity: "invitation", Message: "invitation has already been accepted"}
	case domain.InvitationExpired:
		return nil, &domain.ErrInvitationExpired{InvitationID: invitationID}
	}
	if invitation.IsExpiredAt(s.now()) {
		s.markExpired(ctx, invitation)
		return nil, &domain.ErrInvitationExpired{InvitationID: invitationID}
	}

	moved, err := s.repo.TransitionStatus(ctx, invitationID, domain.InvitationDeclined, nil)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetByID(ctx, invitationID)
		if err != nil {
			return nil, err
		}
		if current.Status == domain.InvitationDeclined {
			return current, nil
		}
		return nil, &domain.ErrConflict{Entity: "invitation", Message: fmt.Sprintf("invitation is %s", current.Status)}
	}

	invitation.Status = domain.InvitationDeclined
	invitation.UpdatedAt = s.now()
	return invitation, nil
}

// authorizeInvitee lets only the addressed user accept. Rows not yet linked
// to an account are matched on the user's email.
func (s *InvitationService) authorizeInvitee(ctx context.Context, userID string, invitation *domain.Invitation) error {
	denied := &domain.PermissionError{
		WorkspaceID: invitation.WorkspaceID,
		Message:     "invitation is addressed to another user",
	}
	if invitation.InviteeID != nil {
		if *invitation.InviteeID != userID {
			return denied
		}
		return nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return denied
		}
		return err
	}
	if !invitation.IsAddressedTo(userID, user.Email) {
		return denied
	}
	return nil
}

func (s *InvitationService) authorizeResponder(ctx context.Context, actorID string, invitation *domain.Invitation) error {
	var email string
	if user, err := s.users.GetByID(ctx, actorID); err == nil {
		email = user.Email
	} else if !domain.IsNotFound(err) {
		return err
	}
	if invitation.IsAddressedTo(actorID, email) {
		return nil
	}

	ok, err := s.access.CanPerform(ctx, actorID, invitation.WorkspaceID, domain.ActionManageCollaborators)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.PermissionError{
			WorkspaceID: invitation.WorkspaceID,
			Message:     "only the invitee or a workspace manager can respond to this invitation",
		}
	}
	return nil
}

// Revoke deletes a pending invitation
func (s *InvitationService) Revoke(ctx context.Context, actorID, invitationID string) error {
	req := &domain.InvitationIDRequest{InvitationID: invitationID}
	if err := req.Validate(); err != nil {
		return err
	}

	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, actorID, invitation.WorkspaceID, domain.ActionManageCollaborators); err != nil {
		return err
	}
	if invitation.Status != domain.InvitationPending {
		return &domain.ErrConflict{Entity: "invitation", Message: "only pending invitations can be revoked"}
	}
	return s.repo.Delete(ctx, invitationID)
}

// ListInvitations returns the workspace's invitations. Pending rows past
// their expiry are reported as expired even before the sweep flips them.
func (s *InvitationService) ListInvitations(ctx context.Context, actorID, workspaceID string) ([]*domain.Invitation, error) {
	if _, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionManageCollaborators); err != nil {
		return nil, err
	}

	invitations, err := s.repo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, inv := range invitations {
		if inv.IsExpiredAt(now) {
			inv.Status = domain.InvitationExpired
		}
	}
	if invitations == nil {
		invitations = []*domain.Invitation{}
	}
	return invitations, nil
}

// ListMyInvitations returns live invitations addressed to the user by id or email
func (s *InvitationService) ListMyInvitations(ctx context.Context, userID string) ([]*domain.Invitation, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.ListPendingForUser(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	live := make([]*domain.Invitation, 0, len(pending))
	for _, inv := range pending {
		if inv.IsLiveAt(now) {
			live = append(live, inv)
		}
	}
	return live, nil
}

// ExpireSweep flips overdue pending rows to expired and purges old expired rows
func (s *InvitationService) ExpireSweep(ctx context.Context, now time.Time) (*domain.InvitationSweep, error) {
	expired, err := s.repo.ExpirePending(ctx, now)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to expire invitations")
		return nil, err
	}
	purged, err := s.repo.PurgeExpired(ctx, now.Add(-s.purgeAge))
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to purge expired invitations")
		return nil, err
	}

	if expired > 0 || purged > 0 {
		s.logger.WithField("expired", expired).WithField("purged", purged).Info("Invitation sweep finished")
	}
	return &domain.InvitationSweep{Expired: expired, Purged: purged}, nil
}

// OnCollaboratorAdded retires pending invitations for a member added directly
func (s *InvitationService) OnCollaboratorAdded(ctx context.Context, workspaceID, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}
	_, err = s.repo.DeletePendingForEmail(ctx, workspaceID, user.Email)
	return err
}

// OnCollaboratorRemoved deletes every invitation for the removed member so they can be re-invited
func (s *InvitationService) OnCollaboratorRemoved(ctx context.Context, workspaceID, userID string) error {
	var email string
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		email = user.Email
	} else if !domain.IsNotFound(err) {
		return err
	}

	n, err := s.repo.DeleteForMember(ctx, workspaceID, userID, email)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.WithField("workspace_id", workspaceID).WithField("user_id", userID).WithField("deleted", n).Debug("Deleted invitations of removed member")
	}
	return nil
}

// OnUserFirstSeen links pending invitations to a new account. It never creates a membership.
func (s *InvitationService) OnUserFirstSeen(ctx context.Context, userID, email string) error {
	n, err := s.repo.LinkInvitee(ctx, userID, email)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.WithField("user_id", userID).WithField("linked", n).Info("Linked pending invitations to new user")
	}
	return nil
}

func (s *InvitationService) markExpired(ctx context.Context, invitation *domain.Invitation) {
	if _, err := s.repo.TransitionStatus(ctx, invitation.ID, domain.InvitationExpired, nil); err != nil {
		s.logger.WithField("invitation_id", invitation.ID).WithField("error", err.Error()).Warn("Failed to mark invitation expired")
		return
	}
	invitation.Status = domain.InvitationExpired
}
