package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

var userColumns = []string{"id", "email", "display_name", "created_at", "updated_at"}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert inserts the user or refreshes its email and display name. xmax is
// zero only for a freshly inserted tuple, which tells the caller whether this
// is the first time the user is seen.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) (bool, error) {
	now := time.Now().UTC()
	user.Email = domain.NormalizeEmail(user.Email)

	query, args, err := psql.
		Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.DisplayName, now, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = CASE WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name ELSE users.display_name END,
			updated_at = EXCLUDED.updated_at
			RETURNING (xmax = 0) AS created, created_at, updated_at, display_name`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var created bool
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&created, &user.CreatedAt, &user.UpdatedAt, &user.DisplayName)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, &domain.ErrConflict{Entity: "user", Message: "email is already registered to another user"}
		}
		return false, database.Classify(fmt.Errorf("failed to upsert user: %w", err))
	}
	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id}, id)
}

// GetByEmail matches case-insensitively
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	return r.getBy(ctx, sq.Expr("LOWER(email) = ?", email), email)
}

func (r *userRepository) getBy(ctx context.Context, pred sq.Sqlizer, key string) (*domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("user", key)
	}
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to get user: %w", err))
	}
	return user, nil
}
