package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeSetsWritePragmas(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	defer db.Close()

	var journalMode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&journalMode).Error)
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&busyTimeout).Error)
	assert.Equal(t, 5000, busyTimeout)
}

func TestHealthCheck(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)

	assert.NoError(t, db.HealthCheck())

	require.NoError(t, db.Close())
	assert.Error(t, db.HealthCheck())
}
