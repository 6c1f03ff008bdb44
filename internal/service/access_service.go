package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/cache"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/tracing"
)

// AccessService evaluates actions against role snapshots. Snapshots for
// viewer and editor actions may come from the cache, owner level actions
// always read the store.
type AccessService struct {
	workspaces    domain.WorkspaceRepository
	collaborators domain.CollaboratorRepository
	cache         cache.Cache
	ttl           time.Duration
	logger        logger.Logger
}

// NewAccessService creates the access evaluator. snapshots may be nil to disable caching.
func NewAccessService(
	workspaces domain.WorkspaceRepository,
	collaborators domain.CollaboratorRepository,
	snapshots cache.Cache,
	ttl time.Duration,
	logger logger.Logger,
) *AccessService {
	return &AccessService{
		workspaces:    workspaces,
		collaborators: collaborators,
		cache:         snapshots,
		ttl:           ttl,
		logger:        logger,
	}
}

func snapshotKey(workspaceID, userID string) string {
	return "access:" + workspaceID + ":" + userID
}

func (s *AccessService) Authorize(ctx context.Context, actorID, workspaceID string, action domain.Action) (snap *domain.AccessSnapshot, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AccessService", "Authorize")
	defer func() { tracing.EndSpan(span, err) }()
	tracing.AddAttribute(ctx, "workspace_id", workspaceID)
	tracing.AddAttribute(ctx, "action", string(action))

	if actorID == "" {
		return nil, domain.NewPermissionError(action, workspaceID)
	}

	snap, err = s.snapshot(ctx, actorID, workspaceID, !action.IsSensitive())
	if err != nil {
		return nil, err
	}

	if !domain.CanPerform(*snap, actorID, action) {
		if _, member := snap.EffectiveRole(actorID); !member {
			return nil, domain.NewNotFound("workspace", workspaceID)
		}
		s.logger.WithField("workspace_id", workspaceID).
			WithField("user_id", actorID).
			WithField("action", string(action)).
			Debug("Permission denied")
		return nil, domain.NewPermissionError(action, workspaceID)
	}
	return snap, nil
}

func (s *AccessService) CanPerform(ctx context.Context, actorID, workspaceID string, action domain.Action) (bool, error) {
	_, err := s.Authorize(ctx, actorID, workspaceID, action)
	if err == nil {
		return true, nil
	}
	if domain.IsPermissionDenied(err) || domain.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Invalidate drops the cached snapshots of the given members
func (s *AccessService) Invalidate(ctx context.Context, workspaceID string, userIDs ...string) {
	if s.cache == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = snapshotKey(workspaceID, id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.WithField("workspace_id", workspaceID).WithField("error", err.Error()).Warn("Failed to invalidate access snapshots")
	}
}

func (s *AccessService) snapshot(ctx context.Context, actorID, workspaceID string, cached bool) (*domain.AccessSnapshot, error) {
	key := snapshotKey(workspaceID, actorID)

	if cached && s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var snap domain.AccessSnapshot
			if jerr := json.Unmarshal(raw, &snap); jerr == nil && snap.Workspace != nil {
				return &snap, nil
			}
		case !errors.Is(err, cache.ErrMiss):
			s.logger.WithField("workspace_id", workspaceID).WithField("error", err.Error()).Warn("Access snapshot cache read failed")
		}
	}

	workspace, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	snap := &domain.AccessSnapshot{Workspace: workspace}
	collaborator, err := s.collaborators.Get(ctx, workspaceID, actorID)
	switch {
	case err == nil:
		snap.Collaborator = collaborator
	case !domain.IsNotFound(err):
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(snap); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				s.logger.WithField("workspace_id", workspaceID).WithField("error", err.Error()).Warn("Access snapshot cache write failed")
			}
		}
	}
	return snap, nil
}
