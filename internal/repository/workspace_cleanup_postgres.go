package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/tracing"
)

// cleanupQueries holds one statement per deletion step, keyed on the workspace id
var cleanupQueries = map[domain.DeletionStep]string{
	domain.StepFileVersions:  "DELETE FROM file_versions WHERE file_id IN (SELECT id FROM files WHERE workspace_id = $1)",
	domain.StepFiles:         "DELETE FROM files WHERE workspace_id = $1",
	domain.StepChatMessages:  "DELETE FROM chat_messages WHERE workspace_id = $1",
	domain.StepActivityLog:   "DELETE FROM activity_log WHERE workspace_id = $1",
	domain.StepInvitations:   "DELETE FROM invitations WHERE workspace_id = $1",
	domain.StepJoinRequests:  "DELETE FROM join_requests WHERE workspace_id = $1",
	domain.StepCollaborators: "DELETE FROM collaborators WHERE workspace_id = $1",
	domain.StepWorkspace:     "DELETE FROM workspaces WHERE id = $1",
}

type workspaceCleanupRepository struct {
	db *sql.DB
}

// NewWorkspaceCleanupRepository creates the repository used by workspace deletion
func NewWorkspaceCleanupRepository(db *sql.DB) domain.WorkspaceCleanupRepository {
	return &workspaceCleanupRepository{db: db}
}

func (r *workspaceCleanupRepository) DeleteStep(ctx context.Context, workspaceID string, step domain.DeletionStep) (n int64, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "WorkspaceCleanupRepository", "DeleteStep")
	defer func() { tracing.EndSpan(span, err) }()
	tracing.AddAttribute(ctx, "workspace_id", workspaceID)
	tracing.AddAttribute(ctx, "step", string(step))

	query, ok := cleanupQueries[step]
	if !ok {
		return 0, fmt.Errorf("unknown deletion step %q", step)
	}

	result, err := r.db.ExecContext(ctx, query, workspaceID)
	if err != nil {
		return 0, database.Classify(fmt.Errorf("failed to delete %s: %w", step, err))
	}
	n, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	tracing.AddAttribute(ctx, "rows", n)
	return n, nil
}
