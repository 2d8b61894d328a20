package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordexam/internal/database"
)

// Scope identifies one learner's exam on one book in one mode.
type Scope struct {
	UserID int64
	BookID int64
	Mode   Mode
}

// Repository reads and writes learning records.
// Every method takes the connection or transaction to run on.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// FindByID loads a record, locking it when forUpdate is set and the engine supports it.
func (r *Repository) FindByID(ctx context.Context, q sqlx.ExtContext, id int64, forUpdate bool) (*Memory, error) {
	query := "SELECT * FROM memories WHERE id = ?"
	if forUpdate {
		query += database.DialectOf(q).ForUpdate()
	}
	var m Memory
	if err := sqlx.GetContext(ctx, q, &m, q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("memory %d: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("load memory %d: %w", id, err)
	}
	return &m, nil
}

func (r *Repository) FindByWord(ctx context.Context, q sqlx.ExtContext, userID, wordID int64, mode Mode) (*Memory, error) {
	var m Memory
	if err := sqlx.GetContext(ctx, q, &m,
		q.Rebind("SELECT * FROM memories WHERE user_id = ? AND word_id = ? AND mode = ?"),
		userID, wordID, string(mode),
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("memory of word %d: %w", wordID, database.ErrNotFound)
		}
		return nil, fmt.Errorf("load memory of word %d: %w", wordID, err)
	}
	return &m, nil
}

// Update persists the mutable fields of m.
func (r *Repository) Update(ctx context.Context, q sqlx.ExtContext, m *Memory) error {
	result, err := q.ExecContext(ctx, q.Rebind(`UPDATE memories
		SET step = ?, unlock_at = ?, status = ?, group_level = ?, aware_cnt = ?, forgot_cnt = ?, updated_at = ?
		WHERE id = ?`),
		m.Step, m.UnlockAt, string(m.Status), m.GroupLevel, m.AwareCount, m.ForgotCount, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update memory %d: %w", m.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("memory %d: %w", m.ID, database.ErrNotFound)
	}
	return nil
}

// FindUnadmittedWordIDs returns words of the book that have no record in the scope yet.
// n == 0 returns all of them, n > 0 the n oldest and n < 0 the |n| newest.
func (r *Repository) FindUnadmittedWordIDs(ctx context.Context, q sqlx.ExtContext, scope Scope, n int) ([]int64, error) {
	query := `SELECT w.id FROM words w
		WHERE w.book_id = ?
		AND NOT EXISTS (SELECT 1 FROM memories m WHERE m.user_id = ? AND m.word_id = w.id AND m.mode = ?)`
	args := []interface{}{scope.BookID, scope.UserID, string(scope.Mode)}
	switch {
	case n > 0:
		query += " ORDER BY w.id ASC LIMIT ?"
		args = append(args, n)
	case n < 0:
		query += " ORDER BY w.id DESC LIMIT ?"
		args = append(args, -n)
	default:
		query += " ORDER BY w.id ASC"
	}

	var ids []int64
	if err := sqlx.SelectContext(ctx, q, &ids, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load unadmitted words: %w", err)
	}
	return ids, nil
}

// Admit creates the initial record for each word, skipping words another writer admitted first.
// It returns the number of records created.
func (r *Repository) Admit(ctx context.Context, q sqlx.ExtContext, scope Scope, wordIDs []int64, now time.Time) (int64, error) {
	if len(wordIDs) == 0 {
		return 0, nil
	}

	dialect := database.DialectOf(q)
	columns := []string{"user_id", "book_id", "word_id", "mode", "step", "unlock_at", "status", "group_level", "aware_cnt", "forgot_cnt", "created_at", "updated_at"}
	var admitted int64
	for _, chunk := range database.Chunks(len(wordIDs), database.MaxRowsPerInsert) {
		batch := wordIDs[chunk[0]:chunk[1]]
		query := dialect.InsertIgnore(database.BuildMultiRowInsert("memories", columns, len(batch)), "user_id", "word_id", "mode")

		args := make([]interface{}, 0, len(batch)*len(columns))
		for _, wordID := range batch {
			m := New(scope.UserID, scope.BookID, wordID, scope.Mode, now)
			args = append(args, m.UserID, m.BookID, m.WordID, string(m.Mode), m.Step, m.UnlockAt, string(m.Status), m.GroupLevel, m.AwareCount, m.ForgotCount, m.CreatedAt, m.UpdatedAt)
		}
		result, err := q.ExecContext(ctx, q.Rebind(query), args...)
		if err != nil {
			return admitted, fmt.Errorf("insert memories: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return admitted, fmt.Errorf("result.RowsAffected() > %w", err)
		}
		admitted += affected
	}
	return admitted, nil
}

// CountEligible counts records of the scope unlocked at now.
func (r *Repository) CountEligible(ctx context.Context, q sqlx.ExtContext, scope Scope, now time.Time) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count,
		q.Rebind("SELECT COUNT(*) FROM memories WHERE user_id = ? AND book_id = ? AND mode = ? AND unlock_at <= ?"),
		scope.UserID, scope.BookID, string(scope.Mode), now,
	); err != nil {
		return 0, fmt.Errorf("count eligible memories: %w", err)
	}
	return count, nil
}

// CountNew counts words of the book not admitted in the scope.
func (r *Repository) CountNew(ctx context.Context, q sqlx.ExtContext, scope Scope) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count,
		q.Rebind(`SELECT COUNT(*) FROM words w
			WHERE w.book_id = ?
			AND NOT EXISTS (SELECT 1 FROM memories m WHERE m.user_id = ? AND m.word_id = w.id AND m.mode = ?)`),
		scope.BookID, scope.UserID, string(scope.Mode),
	); err != nil {
		return 0, fmt.Errorf("count new words: %w", err)
	}
	return count, nil
}

// FindEligible returns records of the scope unlocked at now, ordered by id.
func (r *Repository) FindEligible(ctx context.Context, q sqlx.ExtContext, scope Scope, now time.Time) ([]Memory, error) {
	var memories []Memory
	if err := sqlx.SelectContext(ctx, q, &memories,
		q.Rebind("SELECT * FROM memories WHERE user_id = ? AND book_id = ? AND mode = ? AND unlock_at <= ? ORDER BY id"),
		scope.UserID, scope.BookID, string(scope.Mode), now,
	); err != nil {
		return nil, fmt.Errorf("load eligible memories: %w", err)
	}
	return memories, nil
}

// FindEligibleNotAware returns unlocked records that are new or were missed, ordered by word.
func (r *Repository) FindEligibleNotAware(ctx context.Context, q sqlx.ExtContext, scope Scope, now time.Time) ([]Memory, error) {
	var memories []Memory
	if err := sqlx.SelectContext(ctx, q, &memories,
		q.Rebind(`SELECT * FROM memories
			WHERE user_id = ? AND book_id = ? AND mode = ? AND unlock_at <= ? AND status <> ?
			ORDER BY word_id`),
		scope.UserID, scope.BookID, string(scope.Mode), now, string(StatusAware),
	); err != nil {
		return nil, fmt.Errorf("load new or wrong memories: %w", err)
	}
	return memories, nil
}

// FindByUser returns every record of the learner, for export.
func (r *Repository) FindByUser(ctx context.Context, q sqlx.ExtContext, userID int64) ([]Memory, error) {
	var memories []Memory
	if err := sqlx.SelectContext(ctx, q, &memories,
		q.Rebind("SELECT * FROM memories WHERE user_id = ? ORDER BY book_id, mode, word_id"),
		userID,
	); err != nil {
		return nil, fmt.Errorf("load memories of user %d: %w", userID, err)
	}
	return memories, nil
}
