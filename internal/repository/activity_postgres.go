package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/domain"
)

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new PostgreSQL activity log repository
func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{db: db}
}

var activityColumns = []string{"id", "workspace_id", "actor_id", "kind", "subject_id", "detail", "created_at"}

func (r *activityRepository) Record(ctx context.Context, e *domain.ActivityEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.
		Insert("activity_log").
		Columns(activityColumns...).
		Values(e.ID, e.WorkspaceID, e.ActorID, e.Kind, e.SubjectID, e.Detail, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return database.Classify(fmt.Errorf("failed to record activity: %w", err))
	}
	return nil
}

func (r *activityRepository) ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]*domain.ActivityEntry, error) {
	query, args, err := psql.
		Select(activityColumns...).
		From("activity_log").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to list activity: %w", err))
	}
	defer rows.Close()

	var entries []*domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.WorkspaceID, &e.ActorID, &e.Kind, &e.SubjectID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}
