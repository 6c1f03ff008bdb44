package service

import (
	"context"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// firstSeenHook is notified once per user, right after the account is created
type firstSeenHook interface {
	OnUserFirstSeen(ctx context.Context, userID, email string) error
}

type UserService struct {
	repo   domain.UserRepository
	hook   firstSeenHook
	logger logger.Logger
}

func NewUserService(repo domain.UserRepository, hook firstSeenHook, logger logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hook:   hook,
		logger: logger,
	}
}

// EnsureUser upserts the authenticated identity. On the first sighting pending
// invitations for the email are linked to the new account.
func (s *UserService) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.UserID == "" {
		return nil, domain.NewValidationError("user id is required")
	}
	email, err := domain.ValidateEmail(identity.Email)
	if err != nil {
		return nil, err
	}

	user := &domain.User{ID: identity.UserID, Email: email, DisplayName: identity.Name}
	created, err := s.repo.Upsert(ctx, user)
	if err != nil {
		s.logger.WithField("user_id", identity.UserID).WithField("error", err.Error()).Error("Failed to upsert user")
		return nil, err
	}

	if created {
		s.logger.WithField("user_id", user.ID).Info("New user signed in")
		if s.hook != nil {
			if err := s.hook.OnUserFirstSeen(ctx, user.ID, user.Email); err != nil {
				s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Warn("Failed to link pending invitations")
			}
		}
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}
