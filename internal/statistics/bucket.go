// Package statistics keeps per-day exam counters and summarizes them.
package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/memory"
)

// ExamDayOffset moves the start of an exam day so late-night sessions count toward the previous day.
const ExamDayOffset = 4 * time.Hour

// ExamDay returns the exam day of now in loc, as midnight UTC of that calendar date.
func ExamDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	shifted := now.In(loc).Add(-ExamDayOffset)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
}

// Bucket counts the answers of one exam day for one (step, status).
type Bucket struct {
	ID          int64         `db:"id" yaml:"-"`
	UserID      int64         `db:"user_id" yaml:"user_id"`
	BookID      int64         `db:"book_id" yaml:"book_id"`
	ExamDate    time.Time     `db:"exam_date" yaml:"exam_date"`
	Mode        memory.Mode   `db:"mode" yaml:"mode"`
	Step        int           `db:"step" yaml:"step"`
	Status      memory.Status `db:"status" yaml:"status"`
	AwareCount  int           `db:"aware_cnt" yaml:"aware_count"`
	ForgotCount int           `db:"forgot_cnt" yaml:"forgot_count"`
	CreatedAt   time.Time     `db:"created_at" yaml:"-"`
	UpdatedAt   time.Time     `db:"updated_at" yaml:"-"`
}

// Counts is the number of aware and forgot answers.
type Counts struct {
	Aware  int `json:"aware" yaml:"aware"`
	Forgot int `json:"forgot" yaml:"forgot"`
}

// Repository stores buckets on the connection or transaction it is given.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Record adds one answer to the bucket of (scope, day, step, verdict), creating it when absent.
// The increment happens in a single statement so concurrent answers never lose a count.
func (r *Repository) Record(ctx context.Context, q sqlx.ExtContext, scope memory.Scope, day time.Time, step int, verdict memory.Verdict, now time.Time) error {
	aware, forgot := 0, 0
	if verdict == memory.VerdictAware {
		aware = 1
	} else {
		forgot = 1
	}

	insert := "INSERT INTO exam_statistics (user_id, book_id, exam_date, mode, step, status, aware_cnt, forgot_cnt, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	query := database.DialectOf(q).UpsertIncrement(
		"exam_statistics", insert,
		[]string{"user_id", "book_id", "mode", "step", "status", "exam_date"},
		[]string{"aware_cnt", "forgot_cnt"},
		"updated_at",
	)
	if _, err := q.ExecContext(ctx, q.Rebind(query),
		scope.UserID, scope.BookID, day, string(scope.Mode), step, string(verdict.Status()), aware, forgot, now, now,
	); err != nil {
		return fmt.Errorf("upsert exam statistics: %w", err)
	}
	return nil
}

// FindByDay returns the buckets of one exam day of the scope.
func (r *Repository) FindByDay(ctx context.Context, q sqlx.ExtContext, scope memory.Scope, day time.Time) ([]Bucket, error) {
	var buckets []Bucket
	if err := sqlx.SelectContext(ctx, q, &buckets,
		q.Rebind(`SELECT * FROM exam_statistics
			WHERE user_id = ? AND book_id = ? AND mode = ? AND exam_date = ?
			ORDER BY step, status`),
		scope.UserID, scope.BookID, string(scope.Mode), day,
	); err != nil {
		return nil, fmt.Errorf("load exam statistics of %s: %w", day.Format(time.DateOnly), err)
	}
	return buckets, nil
}

// FindByUser returns every bucket of the learner, oldest day first.
func (r *Repository) FindByUser(ctx context.Context, q sqlx.ExtContext, userID int64) ([]Bucket, error) {
	var buckets []Bucket
	if err := sqlx.SelectContext(ctx, q, &buckets,
		q.Rebind("SELECT * FROM exam_statistics WHERE user_id = ? ORDER BY exam_date, book_id, mode, step, status"),
		userID,
	); err != nil {
		return nil, fmt.Errorf("load exam statistics of user %d: %w", userID, err)
	}
	return buckets, nil
}

// ByStep folds buckets into counts per step.
func ByStep(buckets []Bucket) map[int]Counts {
	result := make(map[int]Counts)
	for _, b := range buckets {
		c := result[b.Step]
		c.Aware += b.AwareCount
		c.Forgot += b.ForgotCount
		result[b.Step] = c
	}
	return result
}
