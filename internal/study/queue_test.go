package study

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/memory"
)

var (
	testNow   = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	testScope = memory.Scope{UserID: 1, BookID: 2, Mode: memory.ModePromptToAnswer}
)

func newMockDB(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, driver), mock
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "group_first", want: PolicyGroupFirst},
		{in: "sequential", want: PolicySequential},
		{in: "", want: PolicyGroupFirst},
		{in: "random", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueue_Build(t *testing.T) {
	t.Run("queues shuffled eligible records", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")

		mock.ExpectQuery("SELECT m.id FROM memories m\\s+WHERE m.user_id = \\? AND m.book_id = \\? AND m.mode = \\? AND m.unlock_at <= \\?\\s+AND NOT EXISTS \\(SELECT 1 FROM studies s WHERE s.memory_id = m.id\\)").
			WithArgs(int64(1), int64(2), "word", testNow).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7).AddRow(8).AddRow(9))

		shuffled := []int64{7, 8, 9}
		rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		mock.ExpectExec("INSERT IGNORE INTO studies \\(user_id, book_id, mode, memory_id, created_at\\) VALUES \\(.+\\), \\(.+\\), \\(.+\\)").
			WithArgs(
				int64(1), int64(2), "word", shuffled[0], testNow,
				int64(1), int64(2), "word", shuffled[1], testNow,
				int64(1), int64(2), "word", shuffled[2], testNow,
			).
			WillReturnResult(sqlmock.NewResult(0, 3))

		added, err := NewQueue(PolicyGroupFirst).Build(context.Background(), db, testScope, testNow, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		assert.Equal(t, int64(3), added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing eligible inserts nothing", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectQuery("SELECT m.id FROM memories m").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		added, err := NewQueue(PolicyGroupFirst).Build(context.Background(), db, testScope, testNow, nil)
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("postgres skips records already queued by a concurrent build", func(t *testing.T) {
		db, mock := newMockDB(t, "postgres")
		mock.ExpectQuery("SELECT m.id FROM memories m").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec("INSERT INTO studies .+ VALUES \\(\\$1, \\$2, \\$3, \\$4, \\$5\\) ON CONFLICT \\(memory_id\\) DO NOTHING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		added, err := NewQueue(PolicyGroupFirst).Build(context.Background(), db, testScope, testNow, nil)
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQueue_Peek(t *testing.T) {
	columns := []string{"id", "user_id", "book_id", "mode", "memory_id", "created_at"}

	tests := []struct {
		name      string
		policy    Policy
		wantOrder string
		rows      *sqlmock.Rows
		want      *Entry
	}{
		{
			name:      "group first",
			policy:    PolicyGroupFirst,
			wantOrder: "ORDER BY CASE WHEN m.group_level > 0 THEN 0 ELSE 1 END, s.id LIMIT 1",
			rows:      sqlmock.NewRows(columns).AddRow(3, 1, 2, "word", 9, testNow),
			want:      &Entry{ID: 3, UserID: 1, BookID: 2, Mode: memory.ModePromptToAnswer, MemoryID: 9, CreatedAt: testNow},
		},
		{
			name:      "sequential",
			policy:    PolicySequential,
			wantOrder: "ORDER BY s.id LIMIT 1",
			rows:      sqlmock.NewRows(columns).AddRow(1, 1, 2, "word", 7, testNow),
			want:      &Entry{ID: 1, UserID: 1, BookID: 2, Mode: memory.ModePromptToAnswer, MemoryID: 7, CreatedAt: testNow},
		},
		{
			name:      "empty queue",
			policy:    PolicyGroupFirst,
			wantOrder: "LIMIT 1",
			rows:      sqlmock.NewRows(columns),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, "mysql")
			mock.ExpectQuery("FROM studies s JOIN memories m ON m.id = s.memory_id\\s+WHERE s.user_id = \\? AND s.book_id = \\? AND s.mode = \\?\\s+" + tt.wantOrder).
				WithArgs(int64(1), int64(2), "word").
				WillReturnRows(tt.rows)

			got, err := NewQueue(tt.policy).Peek(context.Background(), db, testScope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQueue_Consume(t *testing.T) {
	columns := []string{"id", "user_id", "book_id", "mode", "memory_id", "created_at"}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "deletes the entry",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM studies WHERE id = \\? FOR UPDATE").
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(3, 1, 2, "word", 9, testNow))
				mock.ExpectExec("DELETE FROM studies WHERE id = \\?").
					WithArgs(int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already consumed entry is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM studies WHERE id = \\?").
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(columns))
			},
			wantErr: database.ErrNotFound,
		},
		{
			name: "entry deleted by a concurrent consumer is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM studies WHERE id = \\?").
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(3, 1, 2, "word", 9, testNow))
				mock.ExpectExec("DELETE FROM studies WHERE id = \\?").
					WithArgs(int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: database.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, "mysql")
			tt.setupMock(mock)

			got, err := NewQueue(PolicyGroupFirst).Consume(context.Background(), db, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), got.MemoryID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQueue_Count(t *testing.T) {
	db, mock := newMockDB(t, "mysql")
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM studies WHERE user_id = \\? AND book_id = \\? AND mode = \\?").
		WithArgs(int64(1), int64(2), "word").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	got, err := NewQueue(PolicyGroupFirst).Count(context.Background(), db, testScope)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
