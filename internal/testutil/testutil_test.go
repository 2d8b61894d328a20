package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordexam/internal/config"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	for _, d := range []string{"dictionaries", "reports", "export"} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, filepath.Join(tmpDir, "wordexam.db"), cfg.Database.Path)
}

func TestSeedBook(t *testing.T) {
	db := OpenTestDB(t)

	got := SeedBook(t, db, "alice", "TOEIC", "apple", "banana")
	assert.Equal(t, "alice", got.User.Name)
	assert.Equal(t, got.User.ID, got.Book.OwnerID)
	require.Len(t, got.Words, 2)
	assert.Equal(t, "apple", got.Words[0].Word)
	assert.Equal(t, "banana", got.Words[1].Word)
	assert.Less(t, got.Words[0].ID, got.Words[1].ID)
}
