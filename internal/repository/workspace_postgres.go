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

type workspaceRepository struct {
	db *sql.DB
}

// NewWorkspaceRepository creates a new PostgreSQL workspace repository
func NewWorkspaceRepository(db *sql.DB) domain.WorkspaceRepository {
	return &workspaceRepository{db: db}
}

var workspaceColumns = []string{"id", "name", "description", "owner_id", "created_at", "updated_at"}

func scanWorkspace(row rowScanner) (*domain.Workspace, error) {
	var w domain.Workspace
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts the workspace together with its owner collaborator row
func (r *workspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	if err := workspace.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	workspace.CreatedAt = now
	workspace.UpdatedAt = now

	wsQuery, wsArgs, err := psql.
		Insert("workspaces").
		Columns(workspaceColumns...).
		Values(workspace.ID, workspace.Name, workspace.Description, workspace.OwnerID, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	collabQuery, collabArgs, err := psql.
		Insert("collaborators").
		Columns(collaboratorColumns...).
		Values(workspace.ID, workspace.OwnerID, domain.RoleOwner, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx database.DBTX) error {
		if _, err := tx.ExecContext(ctx, wsQuery, wsArgs...); err != nil {
			if database.IsUniqueViolation(err) {
				return &domain.ErrConflict{Entity: "workspace", Message: "workspace already exists"}
			}
			return database.Classify(fmt.Errorf("failed to create workspace: %w", err))
		}
		if _, err := tx.ExecContext(ctx, collabQuery, collabArgs...); err != nil {
			return database.Classify(fmt.Errorf("failed to create owner collaborator: %w", err))
		}
		return nil
	})
}

func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query, args, err := psql.Select(workspaceColumns...).From("workspaces").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	workspace, err := scanWorkspace(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("workspace", id)
	}
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to get workspace: %w", err))
	}
	return workspace, nil
}

// ListVisibleTo returns workspaces the user owns or collaborates on
func (r *workspaceRepository) ListVisibleTo(ctx context.Context, userID string) ([]*domain.Workspace, error) {
	query, args, err := psql.
		Select(prefixed("w", workspaceColumns)...).
		From("workspaces w").
		Where(sq.Or{
			sq.Eq{"w.owner_id": userID},
			sq.Expr("EXISTS (SELECT 1 FROM collaborators c WHERE c.workspace_id = w.id AND c.user_id = ?)", userID),
		}).
		OrderBy("w.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to list workspaces: %w", err))
	}
	defer rows.Close()

	var workspaces []*domain.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", err)
	}
	return workspaces, nil
}

func (r *workspaceRepository) Update(ctx context.Context, workspace *domain.Workspace) error {
	if err := workspace.Validate(); err != nil {
		return err
	}
	workspace.UpdatedAt = time.Now().UTC()

	query, args, err := psql.
		Update("workspaces").
		Set("name", workspace.Name).
		Set("description", workspace.Description).
		Set("updated_at", workspace.UpdatedAt).
		Where(sq.Eq{"id": workspace.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return database.Classify(fmt.Errorf("failed to update workspace: %w", err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("workspace", workspace.ID)
	}
	return nil
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
