package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer db.Close()

	// Check if the 'runs' table was created
	var runsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&runsTableName)
	require.NoError(t, err, "Querying for runs table should not produce an error")
	assert.Equal(t, "runs", runsTableName, "The 'runs' table should be created")

	// Check that goose recorded the schema version
	var version int64
	err = db.QueryRow("SELECT MAX(version_id) FROM goose_db_version").Scan(&version)
	require.NoError(t, err, "Querying goose version table should not produce an error")
	assert.GreaterOrEqual(t, version, int64(1))
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := t.TempDir() + "/journal.db"

	db, err := InitDB(path, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// A second initialization over the same file must not fail.
	db, err = InitDB(path, "", "")
	require.NoError(t, err)
	defer db.Close()

	var runsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&runsTableName)
	require.NoError(t, err)
	assert.Equal(t, "runs", runsTableName)
}
