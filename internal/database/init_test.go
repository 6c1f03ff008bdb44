package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/migrations"
	"github.com/docspace/docspace/pkg/logger"
)

func TestInitializeDatabase(t *testing.T) {
	original := gooseUp
	defer func() { gooseUp = original }()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("runs migrations from the embedded directory", func(t *testing.T) {
		var gotDir string
		gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
			gotDir = dir
			return nil
		}
		require.NoError(t, InitializeDatabase(context.Background(), db, logger.NewTestLogger(t)))
		assert.Equal(t, migrations.Dir, gotDir)
	})

	t.Run("wraps migration failure", func(t *testing.T) {
		gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
			return errors.New("relation already exists")
		}
		err := InitializeDatabase(context.Background(), db, logger.NewTestLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to apply migrations")
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, migrations.Dir)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)

	body, err := fs.ReadFile(migrations.FS, migrations.Dir+"/00001_core_tables.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "invitations_one_pending_idx")
	assert.Contains(t, string(body), "WHERE status = 'pending'")

	body, err = fs.ReadFile(migrations.FS, migrations.Dir+"/00002_change_notifications.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), ChangeChannel)
}
