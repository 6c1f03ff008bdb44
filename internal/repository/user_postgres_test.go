package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/repository/testutil"
)

func TestUserRepository_Upsert(t *testing.T) {
	now := time.Now().UTC()

	t.Run("first sighting reports created", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users .* ON CONFLICT \(id\) DO UPDATE`).
			WithArgs("auth0|alice", "alice@example.com", "Alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created", "created_at", "updated_at", "display_name"}).
				AddRow(true, now, now, "Alice"))

		user := &domain.User{ID: "auth0|alice", Email: " Alice@Example.com ", DisplayName: "Alice"}
		created, err := repo.Upsert(context.Background(), user)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("existing user keeps stored display name", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnRows(sqlmock.NewRows([]string{"created", "created_at", "updated_at", "display_name"}).
				AddRow(false, now.Add(-time.Hour), now, "Alice Stored"))

		user := &domain.User{ID: "auth0|alice", Email: "alice@example.com"}
		created, err := repo.Upsert(context.Background(), user)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Alice Stored", user.DisplayName)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(testutil.UniqueViolation("users_email_lower_idx"))

		_, err := repo.Upsert(context.Background(), &domain.User{ID: "u2", Email: "alice@example.com"})
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("connection failure", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(testutil.ConnectionFailure())

		_, err := repo.Upsert(context.Background(), &domain.User{ID: "u2", Email: "b@example.com"})
		assert.True(t, domain.IsDependencyUnavailable(err))
	})
}

func TestUserRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	columns := []string{"id", "email", "display_name", "created_at", "updated_at"}

	t.Run("by id", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT id, email, display_name, created_at, updated_at FROM users WHERE id = \$1`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("u1", "a@example.com", "A", now, now))

		user, err := repo.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", user.Email)
	})

	t.Run("by email is case insensitive", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users WHERE LOWER\(email\) = \$1`).
			WithArgs("a@example.com").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("u1", "a@example.com", "A", now, now))

		user, err := repo.GetByEmail(context.Background(), "A@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users`).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users`).WillReturnError(errors.New("boom"))

		_, err := repo.GetByID(context.Background(), "u1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get user")
	})
}
