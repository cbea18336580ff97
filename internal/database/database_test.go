package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_SqlitePathFromConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "session.db")
	viper.Set("db.sqliteFilePath", path)

	m := NewManager(zerolog.Nop())
	assert.Equal(t, path, m.SqliteFilePath)
}

func TestDumpMemoryToDisk(t *testing.T) {
	m := NewManager(zerolog.Nop())
	db, err := m.GetSqliteDB("")
	require.NoError(t, err)
	m.DB = db

	require.NoError(t, db.Exec("CREATE TABLE IF NOT EXISTS marks (id INTEGER PRIMARY KEY, label TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO marks (label) VALUES ('venue')").Error)

	m.SqliteFilePath = filepath.Join(t.TempDir(), "session.db")
	require.NoError(t, m.DumpMemoryToDisk())

	info, err := os.Stat(m.SqliteFilePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDumpMemoryToDisk_NoPath(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.SqliteFilePath = ""

	err := m.DumpMemoryToDisk()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite file path not set")
}
