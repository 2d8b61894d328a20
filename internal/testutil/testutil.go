// Package testutil provides shared test helpers for config files and SQLite fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordexam/internal/config"
	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
	"github.com/at-ishikawa/wordexam/schemas"
)

// SetupTestConfig creates a config file backed by a SQLite database and the output directories.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"dictionaries", "reports", "export"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
scheduler:
  timezone: UTC
  queue_order: group_first
  seed: 1
  default_admission_count: 20
dictionaries:
  rapidapi:
    cache_directory: %s
outputs:
  report_directory: %s
  export_directory: %s
`,
		filepath.Join(tmpDir, "wordexam.db"),
		filepath.Join(tmpDir, "dictionaries"),
		filepath.Join(tmpDir, "reports"),
		filepath.Join(tmpDir, "export"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// OpenTestDB opens a migrated SQLite database in a temporary directory.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(context.Background(), db, schemas.Migrations)
	require.NoError(t, err)
	return db
}

// Fixture is a learner with one book of words.
type Fixture struct {
	User  *vocabulary.User
	Book  *vocabulary.Book
	Words []vocabulary.Word
}

// SeedBook creates a user, a book owned by them and one word per surface form, in order.
func SeedBook(t *testing.T, db *sqlx.DB, userName, title string, words ...string) Fixture {
	t.Helper()
	ctx := context.Background()
	repo := vocabulary.NewDBRepository(db)

	user, err := repo.CreateUser(ctx, userName)
	require.NoError(t, err)
	book, err := repo.CreateBook(ctx, title, user.ID)
	require.NoError(t, err)

	records := make([]*vocabulary.Word, len(words))
	for i, w := range words {
		records[i] = &vocabulary.Word{
			BookID:             book.ID,
			Word:               w,
			Meaning:            "meaning of " + w,
			Example:            "example of " + w,
			ExampleTranslation: "translation of " + w,
		}
	}
	require.NoError(t, repo.BatchCreateWords(ctx, records))

	created, err := repo.FindWords(ctx, book.ID)
	require.NoError(t, err)
	return Fixture{User: user, Book: book, Words: created}
}
