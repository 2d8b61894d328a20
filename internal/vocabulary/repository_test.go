package vocabulary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordexam/internal/database"
)

var fixedNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewDBRepository(sqlx.NewDb(db, "mysql"))
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func TestDBRepository_CreateUser(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "creates user",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users \\(name, created_at, updated_at\\) VALUES \\(\\?, \\?, \\?\\)").
					WithArgs("alice", fixedNow, fixedNow).
					WillReturnResult(sqlmock.NewResult(3, 1))
			},
		},
		{
			name: "duplicate name is a conflict",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			wantErr: database.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			tt.setupMock(mock)

			got, err := repo.CreateUser(context.Background(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &User{ID: 3, Name: "alice", CreatedAt: fixedNow, UpdatedAt: fixedNow}, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FindBookByTitle(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *Book
		wantErr   error
	}{
		{
			name: "returns book",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "owner_id", "created_at", "updated_at"}).
					AddRow(2, "TOEIC", 1, fixedNow, fixedNow)
				mock.ExpectQuery("SELECT \\* FROM books WHERE title = \\?").
					WithArgs("TOEIC").
					WillReturnRows(rows)
			},
			want: &Book{ID: 2, Title: "TOEIC", OwnerID: 1, CreatedAt: fixedNow, UpdatedAt: fixedNow},
		},
		{
			name: "missing book is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM books WHERE title = \\?").
					WithArgs("TOEIC").
					WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id", "created_at", "updated_at"}))
			},
			wantErr: database.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindBookByTitle(context.Background(), "TOEIC")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SearchWords(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"id", "book_id", "word", "pronunciation", "meaning", "example", "example_translation", "link", "note", "created_at", "updated_at"}).
		AddRow(5, 1, "run away", "rʌn əˈweɪ", "escape", "", "", "", "", fixedNow, fixedNow).
		AddRow(4, 1, "run", "rʌn", "move fast", "", "", "", "", fixedNow, fixedNow)
	mock.ExpectQuery("SELECT \\* FROM words WHERE book_id = \\? AND word LIKE \\? ORDER BY pronunciation, word").
		WithArgs(int64(1), "%run%").
		WillReturnRows(rows)

	got, err := repo.SearchWords(context.Background(), 1, "run")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "run away", got[0].Word)
	assert.Equal(t, "run", got[1].Word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindWordsByIDs(t *testing.T) {
	t.Run("empty ids do not query", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		got, err := repo.FindWordsByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expands ids", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		rows := sqlmock.NewRows([]string{"id", "book_id", "word", "meaning"}).
			AddRow(1, 1, "apple", "りんご").
			AddRow(3, 1, "cherry", "さくらんぼ")
		mock.ExpectQuery("SELECT \\* FROM words WHERE id IN \\(\\?, \\?\\) ORDER BY id").
			WithArgs(int64(1), int64(3)).
			WillReturnRows(rows)

		got, err := repo.FindWordsByIDs(context.Background(), []int64{1, 3})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "cherry", got[1].Word)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBRepository_BatchCreateWords(t *testing.T) {
	tests := []struct {
		name      string
		words     []*Word
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "creates words with multi-row insert",
			words: []*Word{
				{BookID: 1, Word: "apple", Meaning: "りんご"},
				{BookID: 1, Word: "banana", Meaning: "バナナ", Pronunciation: "bəˈnænə"},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO words \\(book_id, word, pronunciation, meaning, example, example_translation, link, note, created_at, updated_at\\) VALUES \\(.+\\), \\(.+\\)").
					WithArgs(
						int64(1), "apple", "", "りんご", "", "", "", "", fixedNow, fixedNow,
						int64(1), "banana", "bəˈnænə", "バナナ", "", "", "", "", fixedNow, fixedNow,
					).
					WillReturnResult(sqlmock.NewResult(1, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:      "empty slice returns nil",
			words:     []*Word{},
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name:  "db error rolls back",
			words: []*Word{{BookID: 1, Word: "apple"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO words").WillReturnError(fmt.Errorf("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			tt.setupMock(mock)

			err := repo.BatchCreateWords(context.Background(), tt.words)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_BatchUpdateWords(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE words SET pronunciation = \\?, meaning = \\?").
		WithArgs("ˈæpəl", "りんご", "", "", "", "", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.BatchUpdateWords(context.Background(), []*Word{{ID: 7, Word: "apple", Pronunciation: "ˈæpəl", Meaning: "りんご"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWord_SameContent(t *testing.T) {
	base := Word{ID: 1, Word: "apple", Meaning: "りんご"}
	assert.True(t, base.SameContent(Word{ID: 9, Word: "apple", Meaning: "りんご"}))
	assert.False(t, base.SameContent(Word{Word: "apple", Meaning: "林檎"}))
}
