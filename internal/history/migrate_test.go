package history

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrate_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	var out bytes.Buffer

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "to version 2")

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "No migration needed")

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 1, &out))
	assert.Contains(t, out.String(), "from version 2 to version 1")

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0, &out))
	assert.Contains(t, out.String(), "to version 0")

	// migrated schema is usable by the store
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1, &out))
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
}
