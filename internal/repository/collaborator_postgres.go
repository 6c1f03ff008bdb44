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

type collaboratorRepository struct {
	db *sql.DB
}

// NewCollaboratorRepository creates a new PostgreSQL collaborator repository
func NewCollaboratorRepository(db *sql.DB) domain.CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

var collaboratorColumns = []string{"workspace_id", "user_id", "role", "created_at", "updated_at"}

func scanCollaborator(row rowScanner) (*domain.Collaborator, error) {
	var c domain.Collaborator
	if err := row.Scan(&c.WorkspaceID, &c.UserID, &c.Role, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collaboratorRepository) Add(ctx context.Context, c *domain.Collaborator) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query, args, err := psql.
		Insert("collaborators").
		Columns(collaboratorColumns...).
		Values(c.WorkspaceID, c.UserID, c.Role, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return &domain.ErrConflict{Entity: "collaborator", Message: "user is already a collaborator"}
		}
		return database.Classify(fmt.Errorf("failed to add collaborator: %w", err))
	}
	return nil
}

// EnsureOwner inserts or promotes the owner row and reports whether anything changed
func (r *collaboratorRepository) EnsureOwner(ctx context.Context, workspaceID, userID string) (bool, error) {
	now := time.Now().UTC()
	query, args, err := psql.
		Insert("collaborators").
		Columns(collaboratorColumns...).
		Values(workspaceID, userID, domain.RoleOwner, now, now).
		Suffix(`ON CONFLICT (workspace_id, user_id) DO UPDATE
			SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
			WHERE collaborators.role <> EXCLUDED.role`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, database.Classify(fmt.Errorf("failed to ensure owner collaborator: %w", err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *collaboratorRepository) Get(ctx context.Context, workspaceID, userID string) (*domain.Collaborator, error) {
	query, args, err := psql.
		Select(collaboratorColumns...).
		From("collaborators").
		Where(sq.Eq{"workspace_id": workspaceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	c, err := scanCollaborator(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("collaborator", userID)
	}
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to get collaborator: %w", err))
	}
	return c, nil
}

// List returns collaborators joined with their user profile
func (r *collaboratorRepository) List(ctx context.Context, workspaceID string) ([]*domain.CollaboratorWithUser, error) {
	query, args, err := psql.
		Select(append(prefixed("c", collaboratorColumns), "COALESCE(u.email, '')", "COALESCE(u.display_name, '')")...).
		From("collaborators c").
		LeftJoin("users u ON u.id = c.user_id").
		Where(sq.Eq{"c.workspace_id": workspaceID}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to list collaborators: %w", err))
	}
	defer rows.Close()

	var result []*domain.CollaboratorWithUser
	for rows.Next() {
		var cu domain.CollaboratorWithUser
		if err := rows.Scan(
			&cu.WorkspaceID, &cu.UserID, &cu.Role, &cu.CreatedAt, &cu.UpdatedAt,
			&cu.Email, &cu.DisplayName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}
		result = append(result, &cu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collaborator rows: %w", err)
	}
	return result, nil
}

func (r *collaboratorRepository) UpdateRole(ctx context.Context, workspaceID, userID string, role domain.Role) error {
	query, args, err := psql.
		Update("collaborators").
		Set("role", role).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"workspace_id": workspaceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return r.execOne(ctx, query, args, userID, "failed to update collaborator role")
}

func (r *collaboratorRepository) Remove(ctx context.Context, workspaceID, userID string) error {
	query, args, err := psql.
		Delete("collaborators").
		Where(sq.Eq{"workspace_id": workspaceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return r.execOne(ctx, query, args, userID, "failed to remove collaborator")
}

func (r *collaboratorRepository) execOne(ctx context.Context, query string, args []interface{}, userID, msg string) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return database.Classify(fmt.Errorf("%s: %w", msg, err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound("collaborator", userID)
	}
	return nil
}
