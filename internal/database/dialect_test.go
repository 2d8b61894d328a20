package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_InsertIgnore(t *testing.T) {
	insert := "INSERT INTO memories (user_id, word_id, mode) VALUES (?, ?, ?)"
	tests := []struct {
		driver string
		want   string
	}{
		{
			driver: "mysql",
			want:   "INSERT IGNORE INTO memories (user_id, word_id, mode) VALUES (?, ?, ?)",
		},
		{
			driver: "postgres",
			want:   "INSERT INTO memories (user_id, word_id, mode) VALUES (?, ?, ?) ON CONFLICT (user_id, word_id, mode) DO NOTHING",
		},
		{
			driver: "sqlite3",
			want:   "INSERT INTO memories (user_id, word_id, mode) VALUES (?, ?, ?) ON CONFLICT (user_id, word_id, mode) DO NOTHING",
		},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got := DialectFor(tt.driver).InsertIgnore(insert, "user_id", "word_id", "mode")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_UpsertIncrement(t *testing.T) {
	insert := "INSERT INTO exam_statistics (user_id, aware_cnt, forgot_cnt, updated_at) VALUES (?, ?, ?, ?)"
	tests := []struct {
		driver string
		want   string
	}{
		{
			driver: "mysql",
			want: insert + " ON DUPLICATE KEY UPDATE aware_cnt = aware_cnt + VALUES(aware_cnt), " +
				"forgot_cnt = forgot_cnt + VALUES(forgot_cnt), updated_at = VALUES(updated_at)",
		},
		{
			driver: "postgres",
			want: insert + " ON CONFLICT (user_id) DO UPDATE SET aware_cnt = exam_statistics.aware_cnt + excluded.aware_cnt, " +
				"forgot_cnt = exam_statistics.forgot_cnt + excluded.forgot_cnt, updated_at = excluded.updated_at",
		},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got := DialectFor(tt.driver).UpsertIncrement(
				"exam_statistics", insert,
				[]string{"user_id"}, []string{"aware_cnt", "forgot_cnt"}, "updated_at",
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_ForUpdate(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", DialectFor("mysql").ForUpdate())
	assert.Equal(t, " FOR UPDATE", DialectFor("postgres").ForUpdate())
	assert.Equal(t, "", DialectFor("sqlite3").ForUpdate())
}

func TestInsertReturningID(t *testing.T) {
	t.Run("mysql uses last insert id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WithArgs("alice").
			WillReturnResult(sqlmock.NewResult(7, 1))

		id, err := InsertReturningID(context.Background(), sqlx.NewDb(db, "mysql"), "INSERT INTO users (name) VALUES (?)", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("postgres appends returning id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users \(name\) VALUES \(\$1\) RETURNING id`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

		id, err := InsertReturningID(context.Background(), sqlx.NewDb(db, "postgres"), "INSERT INTO users (name) VALUES (?)", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(9), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   bool
		unique bool
	}{
		{name: "mysql duplicate", err: &mysql.MySQLError{Number: 1062}, want: true, unique: true},
		{name: "mysql deadlock", err: &mysql.MySQLError{Number: 1213}, want: true},
		{name: "mysql syntax", err: &mysql.MySQLError{Number: 1064}, want: false},
		{name: "postgres unique", err: &pq.Error{Code: "23505"}, want: true, unique: true},
		{name: "postgres serialization", err: &pq.Error{Code: "40001"}, want: true},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: true, unique: true},
		{name: "sqlite busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: true},
		{name: "wrapped conflict", err: fmt.Errorf("upsert > %w", ErrConflict), want: true},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
		})
	}
}

func TestRetrier_Do_RaceSignals(t *testing.T) {
	t.Run("retries race signals until success", func(t *testing.T) {
		calls := 0
		err := NewRetrier(3).Do(context.Background(), "test", func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("write > %w", ErrConflict)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non retryable error", func(t *testing.T) {
		calls := 0
		err := NewRetrier(3).Do(context.Background(), "test", func() error {
			calls++
			return fmt.Errorf("consume > %w", ErrNotFound)
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := NewRetrier(2).Do(context.Background(), "test", func() error {
			calls++
			return ErrConflict
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, 2, calls)
	})
}
