package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/tracing"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type WorkspaceService struct {
	repo          domain.WorkspaceRepository
	collaborators domain.CollaboratorRepository
	users         domain.UserRepository
	cleanup       domain.WorkspaceCleanupRepository
	activity      domain.ActivityRepository
	access        domain.AccessService
	hooks         domain.MembershipHooks
	logger        logger.Logger
}

func NewWorkspaceService(
	repo domain.WorkspaceRepository,
	collaborators domain.CollaboratorRepository,
	users domain.UserRepository,
	cleanup domain.WorkspaceCleanupRepository,
	activity domain.ActivityRepository,
	access domain.AccessService,
	logger logger.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		repo:          repo,
		collaborators: collaborators,
		users:         users,
		cleanup:       cleanup,
		activity:      activity,
		access:        access,
		logger:        logger,
	}
}

// SetMembershipHooks sets the invitation hooks (used to avoid circular dependencies)
func (s *WorkspaceService) SetMembershipHooks(hooks domain.MembershipHooks) {
	s.hooks = hooks
}

func (s *WorkspaceService) CreateWorkspace(ctx context.Context, actorID string, req *domain.CreateWorkspaceRequest) (*domain.Workspace, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	workspace := &domain.Workspace{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     actorID,
	}
	if err := s.repo.Create(ctx, workspace); err != nil {
		s.logger.WithField("user_id", actorID).WithField("error", err.Error()).Error("Failed to create workspace")
		return nil, err
	}

	s.logger.WithField("workspace_id", workspace.ID).WithField("user_id", actorID).Info("Workspace created")
	return workspace, nil
}

// GetWorkspace returns the workspace and repairs a missing owner row on the way
func (s *WorkspaceService) GetWorkspace(ctx context.Context, actorID, workspaceID string) (*domain.Workspace, error) {
	snap, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionReadFiles)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(ctx, snap.Workspace); err != nil {
		return nil, err
	}
	return snap.Workspace, nil
}

// ListWorkspaces returns every workspace the actor owns or collaborates on
func (s *WorkspaceService) ListWorkspaces(ctx context.Context, actorID string) ([]*domain.Workspace, error) {
	workspaces, err := s.repo.ListVisibleTo(ctx, actorID)
	if err != nil {
		s.logger.WithField("user_id", actorID).WithField("error", err.Error()).Error("Failed to list workspaces")
		return nil, err
	}
	if workspaces == nil {
		workspaces = []*domain.Workspace{}
	}
	return workspaces, nil
}

func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, actorID string, req *domain.UpdateWorkspaceRequest) (*domain.Workspace, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.access.Authorize(ctx, actorID, req.ID, domain.ActionUpdateWorkspace)
	if err != nil {
		return nil, err
	}

	workspace := *snap.Workspace
	workspace.Name = strings.TrimSpace(req.Name)
	workspace.Description = req.Description
	if err := s.repo.Update(ctx, &workspace); err != nil {
		s.logger.WithField("workspace_id", req.ID).WithField("error", err.Error()).Error("Failed to update workspace")
		return nil, err
	}
	return &workspace, nil
}

// DeleteWorkspace removes everything under the workspace children first.
// A failed step is reported as *domain.DeletionStepError and the call can be
// retried, every step deletes by parent id.
func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, actorID, workspaceID string) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "WorkspaceService", "DeleteWorkspace")
	defer func() { tracing.EndSpan(span, err) }()
	tracing.AddAttribute(ctx, "workspace_id", workspaceID)

	snap, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionDeleteWorkspace)
	if err != nil {
		return err
	}
	// A collaborator row with role owner is not enough, only the workspace owner may delete.
	if snap.Workspace.OwnerID != actorID {
		s.logger.WithField("workspace_id", workspaceID).WithField("user_id", actorID).Warn("Non-owner attempted to delete workspace")
		return domain.NewPermissionError(domain.ActionDeleteWorkspace, workspaceID)
	}

	var members []string
	if collaborators, err := s.collaborators.List(ctx, workspaceID); err == nil {
		for _, c := range collaborators {
			members = append(members, c.UserID)
		}
	}

	for _, step := range domain.DeletionOrder {
		n, err := s.cleanup.DeleteStep(ctx, workspaceID, step)
		if err != nil {
			s.logger.WithField("workspace_id", workspaceID).
				WithField("step", string(step)).
				WithField("error", err.Error()).
				Error("Workspace deletion step failed")
			return &domain.DeletionStepError{WorkspaceID: workspaceID, Step: step, Err: err}
		}
		s.logger.WithField("workspace_id", workspaceID).WithField("step", string(step)).WithField("rows", n).Debug("Workspace deletion step done")
	}

	s.access.Invalidate(ctx, workspaceID, append(members, actorID)...)
	s.logger.WithField("workspace_id", workspaceID).WithField("user_id", actorID).Info("Workspace deleted")
	return nil
}

// EnsureOwnerCollaborator makes sure the workspace owner holds an owner collaborator row
func (s *WorkspaceService) EnsureOwnerCollaborator(ctx context.Context, workspaceID string) error {
	workspace, err := s.repo.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	return s.ensureOwner(ctx, workspace)
}

func (s *WorkspaceService) ensureOwner(ctx context.Context, workspace *domain.Workspace) error {
	repaired, err := s.collaborators.EnsureOwner(ctx, workspace.ID, workspace.OwnerID)
	if err != nil {
		s.logger.WithField("workspace_id", workspace.ID).WithField("error", err.Error()).Error("Failed to ensure owner collaborator")
		return err
	}
	if repaired {
		s.logger.WithField("workspace_id", workspace.ID).WithField("user_id", workspace.OwnerID).Warn("Repaired owner collaborator row")
		s.access.Invalidate(ctx, workspace.ID, workspace.OwnerID)
	}
	return nil
}

func (s *WorkspaceService) ListCollaborators(ctx context.Context, actorID, workspaceID string) ([]*domain.CollaboratorWithUser, error) {
	snap, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionReadCollaborators)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(ctx, snap.Workspace); err != nil {
		return nil, err
	}

	collaborators, err := s.collaborators.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if collaborators == nil {
		collaborators = []*domain.CollaboratorWithUser{}
	}
	return collaborators, nil
}

// AddCollaborator adds an existing user directly and retires their pending invitations
func (s *WorkspaceService) AddCollaborator(ctx context.Context, actorID string, req *domain.AddCollaboratorRequest) (*domain.Collaborator, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, actorID, req.WorkspaceID, domain.ActionManageCollaborators); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	collaborator := &domain.Collaborator{WorkspaceID: req.WorkspaceID, UserID: user.ID, Role: req.Role}
	if err := s.collaborators.Add(ctx, collaborator); err != nil {
		if domain.IsConflict(err) {
			return nil, &domain.ErrAlreadyMember{WorkspaceID: req.WorkspaceID, Email: user.Email}
		}
		s.logger.WithField("workspace_id", req.WorkspaceID).WithField("user_id", req.UserID).WithField("error", err.Error()).Error("Failed to add collaborator")
		return nil, err
	}

	if s.hooks != nil {
		if err := s.hooks.OnCollaboratorAdded(ctx, req.WorkspaceID, user.ID); err != nil {
			s.logger.WithField("workspace_id", req.WorkspaceID).WithField("user_id", user.ID).WithField("error", err.Error()).Warn("Failed to retire pending invitations")
		}
	}
	s.access.Invalidate(ctx, req.WorkspaceID, user.ID)
	s.record(ctx, req.WorkspaceID, actorID, domain.ActivityMemberJoined, user.ID, string(req.Role))
	return collaborator, nil
}

func (s *WorkspaceService) RemoveCollaborator(ctx context.Context, actorID, workspaceID, userID string) error {
	req := &domain.RemoveCollaboratorRequest{WorkspaceID: workspaceID, UserID: userID}
	if err := req.Validate(); err != nil {
		return err
	}
	snap, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionManageCollaborators)
	if err != nil {
		return err
	}
	if snap.Workspace.OwnerID == userID {
		return domain.NewValidationError("the workspace owner cannot be removed")
	}

	if err := s.collaborators.Remove(ctx, workspaceID, userID); err != nil {
		return err
	}

	if s.hooks != nil {
		if err := s.hooks.OnCollaboratorRemoved(ctx, workspaceID, userID); err != nil {
			s.logger.WithField("workspace_id", workspaceID).WithField("user_id", userID).WithField("error", err.Error()).Warn("Failed to delete invitations of removed member")
		}
	}
	s.access.Invalidate(ctx, workspaceID, userID)
	s.record(ctx, workspaceID, actorID, domain.ActivityMemberRemoved, userID, "")
	return nil
}

func (s *WorkspaceService) ChangeRole(ctx context.Context, actorID, workspaceID, userID string, role domain.Role) (*domain.Collaborator, error) {
	req := &domain.SetRoleRequest{WorkspaceID: workspaceID, UserID: userID, Role: role}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionManageCollaborators)
	if err != nil {
		return nil, err
	}
	if snap.Workspace.OwnerID == userID {
		return nil, domain.NewValidationError("the workspace owner's role cannot be changed")
	}

	if err := s.collaborators.UpdateRole(ctx, workspaceID, userID, role); err != nil {
		return nil, err
	}
	s.access.Invalidate(ctx, workspaceID, userID)
	s.record(ctx, workspaceID, actorID, domain.ActivityRoleChanged, userID, string(role))

	return s.collaborators.Get(ctx, workspaceID, userID)
}

func (s *WorkspaceService) ListActivity(ctx context.Context, actorID, workspaceID string, limit int) ([]*domain.ActivityEntry, error) {
	if _, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionReadFiles); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := s.activity.ListByWorkspace(ctx, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.ActivityEntry{}
	}
	return entries, nil
}

func (s *WorkspaceService) record(ctx context.Context, workspaceID, actorID string, kind domain.ActivityKind, subjectID, detail string) {
	recordActivity(ctx, s.activity, s.logger, workspaceID, actorID, kind, subjectID, detail)
}

// recordActivity writes an audit entry. The log is best effort and never fails the caller.
func recordActivity(ctx context.Context, repo domain.ActivityRepository, log logger.Logger, workspaceID, actorID string, kind domain.ActivityKind, subjectID, detail string) {
	if repo == nil {
		return
	}
	entry := &domain.ActivityEntry{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Kind:        kind,
		SubjectID:   subjectID,
		Detail:      detail,
	}
	if err := repo.Record(ctx, entry); err != nil {
		log.WithField("workspace_id", workspaceID).WithField("kind", string(kind)).WithField("error", err.Error()).Warn("Failed to record activity")
	}
}
