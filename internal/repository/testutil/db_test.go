package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/database"
)

func TestSetupMockDB(t *testing.T) {
	t.Run("creates mock DB successfully", func(t *testing.T) {
		db, mock, cleanup := SetupMockDB(t)
		require.NotNil(t, db)
		require.NotNil(t, mock)
		cleanup()
	})

	t.Run("cleanup closes database", func(t *testing.T) {
		db, _, cleanup := SetupMockDB(t)
		assert.NoError(t, db.Ping())
		cleanup()
		assert.Error(t, db.Ping())
	})
}

func TestErrorHelpers(t *testing.T) {
	err := UniqueViolation("file_versions_number_key")
	assert.True(t, database.IsUniqueViolation(err))
	assert.Equal(t, "file_versions_number_key", database.ConstraintName(err))

	assert.True(t, database.IsConnectionError(ConnectionFailure()))
	assert.False(t, database.IsUniqueViolation(ConnectionFailure()))
}
