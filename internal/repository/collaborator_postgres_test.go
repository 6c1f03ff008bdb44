package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/repository/testutil"
)

func TestCollaboratorRepository_Add(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCollaboratorRepository(db)

	c := &domain.Collaborator{WorkspaceID: "ws-1", UserID: "u2", Role: domain.RoleEditor}

	mock.ExpectExec(`INSERT INTO collaborators`).
		WithArgs("ws-1", "u2", domain.RoleEditor, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Add(context.Background(), c))

	mock.ExpectExec(`INSERT INTO collaborators`).WillReturnError(testutil.UniqueViolation("collaborators_pkey"))
	assert.True(t, domain.IsConflict(repo.Add(context.Background(), c)))
}

func TestCollaboratorRepository_EnsureOwner(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		repaired bool
	}{
		{name: "row already correct", affected: 0, repaired: false},
		{name: "row inserted or promoted", affected: 1, repaired: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, cleanup := testutil.SetupMockDB(t)
			defer cleanup()
			repo := NewCollaboratorRepository(db)

			mock.ExpectExec(`INSERT INTO collaborators .* ON CONFLICT \(workspace_id, user_id\) DO UPDATE`).
				WithArgs("ws-1", "owner-1", domain.RoleOwner, sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			repaired, err := repo.EnsureOwner(context.Background(), "ws-1", "owner-1")
			require.NoError(t, err)
			assert.Equal(t, tc.repaired, repaired)
		})
	}
}

func TestCollaboratorRepository_GetAndList(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCollaboratorRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM collaborators WHERE user_id = \$1 AND workspace_id = \$2`).
		WithArgs("u2", "ws-1").
		WillReturnRows(sqlmock.NewRows(collaboratorColumns).AddRow("ws-1", "u2", "viewer", now, now))

	c, err := repo.Get(context.Background(), "ws-1", "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, c.Role)

	mock.ExpectQuery(`FROM collaborators`).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "ws-1", "nobody")
	assert.True(t, domain.IsNotFound(err))

	mock.ExpectQuery(`FROM collaborators c LEFT JOIN users u ON u.id = c.user_id WHERE c.workspace_id = \$1`).
		WithArgs("ws-1").
		WillReturnRows(sqlmock.NewRows(append(collaboratorColumns, "email", "display_name")).
			AddRow("ws-1", "owner-1", "owner", now, now, "owner@example.com", "Owner").
			AddRow("ws-1", "u2", "viewer", now, now, "", ""))

	list, err := repo.List(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "owner@example.com", list[0].Email)
	assert.Equal(t, domain.RoleViewer, list[1].Role)
}

func TestCollaboratorRepository_UpdateAndRemove(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCollaboratorRepository(db)

	mock.ExpectExec(`UPDATE collaborators SET role = \$1, updated_at = \$2 WHERE user_id = \$3 AND workspace_id = \$4`).
		WithArgs(domain.RoleEditor, sqlmock.AnyArg(), "u2", "ws-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateRole(context.Background(), "ws-1", "u2", domain.RoleEditor))

	mock.ExpectExec(`UPDATE collaborators`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.UpdateRole(context.Background(), "ws-1", "ghost", domain.RoleEditor)))

	mock.ExpectExec(`DELETE FROM collaborators WHERE user_id = \$1 AND workspace_id = \$2`).
		WithArgs("u2", "ws-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Remove(context.Background(), "ws-1", "u2"))
}
