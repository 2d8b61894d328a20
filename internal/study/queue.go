// Package study materializes eligible learning records into a per-learner exam queue.
package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/memory"
)

// Entry is a queued question. A record has at most one live entry.
type Entry struct {
	ID        int64       `db:"id"`
	UserID    int64       `db:"user_id"`
	BookID    int64       `db:"book_id"`
	Mode      memory.Mode `db:"mode"`
	MemoryID  int64       `db:"memory_id"`
	CreatedAt time.Time   `db:"created_at"`
}

// Policy decides which queued entry is drawn next.
type Policy string

const (
	// PolicyGroupFirst draws records missed in the current round before the rest.
	PolicyGroupFirst Policy = "group_first"
	// PolicySequential draws entries in the order they were queued.
	PolicySequential Policy = "sequential"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyGroupFirst, PolicySequential:
		return Policy(s), nil
	case "":
		return PolicyGroupFirst, nil
	}
	return "", fmt.Errorf("unknown queue order %q", s)
}

func (p Policy) orderBy() string {
	if p == PolicySequential {
		return "ORDER BY s.id"
	}
	return "ORDER BY CASE WHEN m.group_level > 0 THEN 0 ELSE 1 END, s.id"
}

// Queue reads and writes queue entries on the connection or transaction it is given.
type Queue struct {
	policy Policy
}

func NewQueue(policy Policy) *Queue {
	if policy == "" {
		policy = PolicyGroupFirst
	}
	return &Queue{policy: policy}
}

// Build queues every eligible record of the scope that is not queued yet.
// Records are shuffled with rng before insertion so the draw order is random.
// It returns the number of entries added.
func (q *Queue) Build(ctx context.Context, ext sqlx.ExtContext, scope memory.Scope, now time.Time, rng *rand.Rand) (int64, error) {
	var memoryIDs []int64
	if err := sqlx.SelectContext(ctx, ext, &memoryIDs, ext.Rebind(`SELECT m.id FROM memories m
		WHERE m.user_id = ? AND m.book_id = ? AND m.mode = ? AND m.unlock_at <= ?
		AND NOT EXISTS (SELECT 1 FROM studies s WHERE s.memory_id = m.id)
		ORDER BY m.id`),
		scope.UserID, scope.BookID, string(scope.Mode), now,
	); err != nil {
		return 0, fmt.Errorf("load unqueued memories: %w", err)
	}
	if len(memoryIDs) == 0 {
		return 0, nil
	}

	if rng != nil {
		rng.Shuffle(len(memoryIDs), func(i, j int) {
			memoryIDs[i], memoryIDs[j] = memoryIDs[j], memoryIDs[i]
		})
	}

	dialect := database.DialectOf(ext)
	columns := []string{"user_id", "book_id", "mode", "memory_id", "created_at"}
	var added int64
	for _, chunk := range database.Chunks(len(memoryIDs), database.MaxRowsPerInsert) {
		batch := memoryIDs[chunk[0]:chunk[1]]
		query := dialect.InsertIgnore(database.BuildMultiRowInsert("studies", columns, len(batch)), "memory_id")

		args := make([]interface{}, 0, len(batch)*len(columns))
		for _, id := range batch {
			args = append(args, scope.UserID, scope.BookID, string(scope.Mode), id, now)
		}
		result, err := ext.ExecContext(ctx, ext.Rebind(query), args...)
		if err != nil {
			return added, fmt.Errorf("insert studies: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("result.RowsAffected() > %w", err)
		}
		added += affected
	}
	return added, nil
}

// Peek returns the next entry under the queue policy, or nil when the queue is empty.
func (q *Queue) Peek(ctx context.Context, ext sqlx.ExtContext, scope memory.Scope) (*Entry, error) {
	var entry Entry
	err := sqlx.GetContext(ctx, ext, &entry, ext.Rebind(`SELECT s.id, s.user_id, s.book_id, s.mode, s.memory_id, s.created_at
		FROM studies s JOIN memories m ON m.id = s.memory_id
		WHERE s.user_id = ? AND s.book_id = ? AND s.mode = ?
		`+q.policy.orderBy()+` LIMIT 1`),
		scope.UserID, scope.BookID, string(scope.Mode),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("peek study: %w", err)
	}
	return &entry, nil
}

// Consume deletes the entry and returns it. A missing or already consumed entry is ErrNotFound.
func (q *Queue) Consume(ctx context.Context, ext sqlx.ExtContext, entryID int64) (*Entry, error) {
	var entry Entry
	if err := sqlx.GetContext(ctx, ext, &entry,
		ext.Rebind("SELECT * FROM studies WHERE id = ?"+database.DialectOf(ext).ForUpdate()),
		entryID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study %d: %w", entryID, database.ErrNotFound)
		}
		return nil, fmt.Errorf("load study %d: %w", entryID, err)
	}

	result, err := ext.ExecContext(ctx, ext.Rebind("DELETE FROM studies WHERE id = ?"), entryID)
	if err != nil {
		return nil, fmt.Errorf("delete study %d: %w", entryID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("study %d: %w", entryID, database.ErrNotFound)
	}
	return &entry, nil
}

// Count returns the number of live entries of the scope.
func (q *Queue) Count(ctx context.Context, ext sqlx.ExtContext, scope memory.Scope) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, ext, &count,
		ext.Rebind("SELECT COUNT(*) FROM studies WHERE user_id = ? AND book_id = ? AND mode = ?"),
		scope.UserID, scope.BookID, string(scope.Mode),
	); err != nil {
		return 0, fmt.Errorf("count studies: %w", err)
	}
	return count, nil
}
