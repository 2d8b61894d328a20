// Package exam schedules vocabulary exams: it admits words, draws questions and records answers.
package exam

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordexam/internal/config"
	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/memory"
	"github.com/at-ishikawa/wordexam/internal/statistics"
	"github.com/at-ishikawa/wordexam/internal/study"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
)

// QuestionView is what a learner sees for one queued question.
type QuestionView struct {
	EntryID       int64
	MemoryID      int64
	WordID        int64
	Mode          memory.Mode
	Prompt        string
	PromptExample string
	Answer        string
	AnswerExample string
	Pronunciation string
	Link          string
	Note          string
	Step          int
	GroupLevel    int
	Remaining     int
}

// SessionStatus summarizes a scope when a session starts.
type SessionStatus struct {
	Admitted int64
	Queued   int64
	Eligible int
	New      int
	Pending  int
}

// Finished reports whether there is nothing left to test or admit.
func (s SessionStatus) Finished() bool {
	return s.Eligible == 0 && s.New == 0
}

// WordMemory pairs a record with its word.
type WordMemory struct {
	Word   vocabulary.Word
	Memory memory.Memory
}

// Snapshot is the whole ledger of one learner.
type Snapshot struct {
	Memories   []memory.Memory
	Statistics []statistics.Bucket
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand replaces the source of queue shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

type Service struct {
	db       *sqlx.DB
	words    vocabulary.Repository
	memories *memory.Repository
	queue    *study.Queue
	stats    *statistics.Repository
	retrier  database.Retrier

	location         *time.Location
	defaultAdmission int
	now              func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(db *sqlx.DB, words vocabulary.Repository, cfg config.SchedulerConfig, opts ...Option) (*Service, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	policy, err := study.ParsePolicy(cfg.QueueOrder)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Service{
		db:               db,
		words:            words,
		memories:         memory.NewRepository(),
		queue:            study.NewQueue(policy),
		stats:            statistics.NewRepository(),
		retrier:          database.NewRetrier(cfg.RetryAttempts),
		location:         location,
		defaultAdmission: cfg.DefaultAdmissionCount,
		now:              time.Now,
		rng:              rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// shuffler derives a generator for one call so concurrent calls never share s.rng.
func (s *Service) shuffler() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewSource(s.rng.Int63()))
}

func validateScope(scope memory.Scope) error {
	if !scope.Mode.Valid() {
		return fmt.Errorf("%w: %q", memory.ErrInvalidMode, scope.Mode)
	}
	return nil
}

// GetNextQuestion tops up the queue with every eligible record and returns the next question.
// It returns nil when nothing is eligible.
func (s *Service) GetNextQuestion(ctx context.Context, scope memory.Scope) (*QuestionView, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	now := s.timestamp()
	rng := s.shuffler()
	var entry *study.Entry
	var remaining int
	if err := s.retrier.RunInTx(ctx, s.db, "get next question", func(ctx context.Context, tx *sqlx.Tx) error {
		added, err := s.queue.Build(ctx, tx, scope, now, rng)
		if err != nil {
			return err
		}
		if added > 0 {
			slog.Default().Info("queued eligible memories", "user_id", scope.UserID, "book_id", scope.BookID, "mode", scope.Mode, "count", added)
		}
		entry, err = s.queue.Peek(ctx, tx, scope)
		if err != nil {
			return err
		}
		remaining, err = s.queue.Count(ctx, tx, scope)
		return err
	}); err != nil {
		return nil, fmt.Errorf("get next question: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	m, err := s.memories.FindByID(ctx, s.db, entry.MemoryID, false)
	if err != nil {
		return nil, err
	}
	word, err := s.findWord(ctx, m.WordID)
	if err != nil {
		return nil, err
	}
	view := newQuestionView(entry, m, word)
	view.Remaining = remaining
	return view, nil
}

func (s *Service) findWord(ctx context.Context, wordID int64) (*vocabulary.Word, error) {
	words, err := s.words.FindWordsByIDs(ctx, []int64{wordID})
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word %d: %w", wordID, database.ErrNotFound)
	}
	return &words[0], nil
}

func newQuestionView(entry *study.Entry, m *memory.Memory, word *vocabulary.Word) *QuestionView {
	view := &QuestionView{
		EntryID:       entry.ID,
		MemoryID:      m.ID,
		WordID:        word.ID,
		Mode:          m.Mode,
		Pronunciation: word.Pronunciation,
		Link:          word.Link,
		Note:          word.Note,
		Step:          m.Step,
		GroupLevel:    m.GroupLevel,
	}
	if m.Mode == memory.ModeAnswerToPrompt {
		view.Prompt, view.PromptExample = word.Meaning, word.ExampleTranslation
		view.Answer, view.AnswerExample = word.Word, word.Example
	} else {
		view.Prompt, view.PromptExample = word.Word, word.Example
		view.Answer, view.AnswerExample = word.Meaning, word.ExampleTranslation
	}
	return view
}

// RecordVerdict consumes a queued question and applies the answer to its record.
// A missing or already consumed entry is database.ErrNotFound; callers treat it as already applied.
func (s *Service) RecordVerdict(ctx context.Context, entryID int64, verdict memory.Verdict) (*memory.Memory, error) {
	if _, err := memory.ParseVerdict(string(verdict)); err != nil {
		return nil, err
	}

	now := s.timestamp()
	var result memory.Memory
	if err := s.retrier.RunInTx(ctx, s.db, "record verdict", func(ctx context.Context, tx *sqlx.Tx) error {
		entry, err := s.queue.Consume(ctx, tx, entryID)
		if err != nil {
			return err
		}
		m, err := s.memories.FindByID(ctx, tx, entry.MemoryID, true)
		if err != nil {
			return err
		}

		next, outcome, err := memory.Apply(*m, verdict, now)
		if err != nil {
			return err
		}
		if err := s.memories.Update(ctx, tx, &next); err != nil {
			return err
		}
		if outcome.FirstAttempt {
			scope := memory.Scope{UserID: m.UserID, BookID: m.BookID, Mode: m.Mode}
			if err := s.stats.Record(ctx, tx, scope, statistics.ExamDay(now, s.location), outcome.PreviousStep, verdict, now); err != nil {
				return err
			}
		}
		result = next
		return nil
	}); err != nil {
		return nil, fmt.Errorf("record verdict of study %d: %w", entryID, err)
	}
	return &result, nil
}

// AdmitNewItems creates records for words not admitted yet.
// n == 0 admits every word, n > 0 the n oldest and n < 0 the |n| newest.
func (s *Service) AdmitNewItems(ctx context.Context, scope memory.Scope, n int) (int64, error) {
	if err := validateScope(scope); err != nil {
		return 0, err
	}

	now := s.timestamp()
	var admitted int64
	if err := s.retrier.RunInTx(ctx, s.db, "admit new items", func(ctx context.Context, tx *sqlx.Tx) error {
		wordIDs, err := s.memories.FindUnadmittedWordIDs(ctx, tx, scope, n)
		if err != nil {
			return err
		}
		admitted, err = s.memories.Admit(ctx, tx, scope, wordIDs, now)
		return err
	}); err != nil {
		return 0, fmt.Errorf("admit new items: %w", err)
	}

	slog.Default().Info("admitted new words",
		"user_id", scope.UserID,
		"book_id", scope.BookID,
		"mode", scope.Mode,
		"requested", n,
		"admitted", admitted,
	)
	return admitted, nil
}

// CountEligible counts records whose unlock time has passed.
func (s *Service) CountEligible(ctx context.Context, scope memory.Scope) (int, error) {
	if err := validateScope(scope); err != nil {
		return 0, err
	}
	return s.memories.CountEligible(ctx, s.db, scope, s.timestamp())
}

// CountPending counts the live queue entries.
func (s *Service) CountPending(ctx context.Context, scope memory.Scope) (int, error) {
	if err := validateScope(scope); err != nil {
		return 0, err
	}
	return s.queue.Count(ctx, s.db, scope)
}

// CountNew counts words of the book not admitted yet.
func (s *Service) CountNew(ctx context.Context, scope memory.Scope) (int, error) {
	if err := validateScope(scope); err != nil {
		return 0, err
	}
	return s.memories.CountNew(ctx, s.db, scope)
}

// Today is the exam day of the current time.
func (s *Service) Today() time.Time {
	return statistics.ExamDay(s.now(), s.location)
}

// GetDailyStats returns the answers of one exam day per step.
func (s *Service) GetDailyStats(ctx context.Context, scope memory.Scope, day time.Time) (map[int]statistics.Counts, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	buckets, err := s.stats.FindByDay(ctx, s.db, scope, day)
	if err != nil {
		return nil, err
	}
	return statistics.ByStep(buckets), nil
}

// StartSession admits n new words, or the configured default when n is nil, and builds the queue.
func (s *Service) StartSession(ctx context.Context, scope memory.Scope, n *int) (*SessionStatus, error) {
	count := s.defaultAdmission
	if n != nil {
		count = *n
	}
	admitted, err := s.AdmitNewItems(ctx, scope, count)
	if err != nil {
		return nil, err
	}
	status, err := s.Review(ctx, scope)
	if err != nil {
		return nil, err
	}
	status.Admitted = admitted
	return status, nil
}

// Review builds the queue from eligible records without admitting new words.
func (s *Service) Review(ctx context.Context, scope memory.Scope) (*SessionStatus, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	now := s.timestamp()
	rng := s.shuffler()
	var status SessionStatus
	if err := s.retrier.RunInTx(ctx, s.db, "review", func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		if status.Queued, err = s.queue.Build(ctx, tx, scope, now, rng); err != nil {
			return err
		}
		if status.Eligible, err = s.memories.CountEligible(ctx, tx, scope, now); err != nil {
			return err
		}
		if status.New, err = s.memories.CountNew(ctx, tx, scope); err != nil {
			return err
		}
		status.Pending, err = s.queue.Count(ctx, tx, scope)
		return err
	}); err != nil {
		return nil, fmt.Errorf("build session: %w", err)
	}
	return &status, nil
}

// ListUnlocked returns the eligible records with their words in random order.
func (s *Service) ListUnlocked(ctx context.Context, scope memory.Scope) ([]WordMemory, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	memories, err := s.memories.FindEligible(ctx, s.db, scope, s.timestamp())
	if err != nil {
		return nil, err
	}
	result, err := s.withWords(ctx, memories)
	if err != nil {
		return nil, err
	}
	rng := s.shuffler()
	rng.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result, nil
}

// ListNewOrWrong returns the eligible records not answered correctly yet, in word order.
func (s *Service) ListNewOrWrong(ctx context.Context, scope memory.Scope) ([]WordMemory, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	memories, err := s.memories.FindEligibleNotAware(ctx, s.db, scope, s.timestamp())
	if err != nil {
		return nil, err
	}
	return s.withWords(ctx, memories)
}

func (s *Service) withWords(ctx context.Context, memories []memory.Memory) ([]WordMemory, error) {
	if len(memories) == 0 {
		return nil, nil
	}
	ids := make([]int64, len(memories))
	for i, m := range memories {
		ids[i] = m.WordID
	}
	words, err := s.words.FindWordsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	wordByID := make(map[int64]vocabulary.Word, len(words))
	for _, w := range words {
		wordByID[w.ID] = w
	}

	result := make([]WordMemory, 0, len(memories))
	for _, m := range memories {
		w, ok := wordByID[m.WordID]
		if !ok {
			return nil, fmt.Errorf("word %d of memory %d: %w", m.WordID, m.ID, database.ErrNotFound)
		}
		result = append(result, WordMemory{Word: w, Memory: m})
	}
	return result, nil
}

// SearchWords returns words of the book containing keyword, ordered by pronunciation.
func (s *Service) SearchWords(ctx context.Context, bookID int64, keyword string) ([]vocabulary.Word, error) {
	return s.words.SearchWords(ctx, bookID, keyword)
}

// ResetMemory sends a record back to step 0 so it is tested again from the start.
func (s *Service) ResetMemory(ctx context.Context, userID, wordID int64, mode memory.Mode) (*memory.Memory, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", memory.ErrInvalidMode, mode)
	}

	now := s.timestamp()
	var result memory.Memory
	if err := s.retrier.RunInTx(ctx, s.db, "reset memory", func(ctx context.Context, tx *sqlx.Tx) error {
		m, err := s.memories.FindByWord(ctx, tx, userID, wordID, mode)
		if err != nil {
			return err
		}
		result = memory.Reset(*m, now)
		return s.memories.Update(ctx, tx, &result)
	}); err != nil {
		return nil, fmt.Errorf("reset memory of word %d: %w", wordID, err)
	}
	return &result, nil
}

// Summarize groups the learner's answers by month or year.
// bookID 0 and an empty mode include every book and mode.
func (s *Service) Summarize(ctx context.Context, userID, bookID int64, mode memory.Mode, granularity statistics.Granularity, year, month int) (statistics.SummaryResult, error) {
	buckets, err := s.stats.FindByUser(ctx, s.db, userID)
	if err != nil {
		return statistics.SummaryResult{}, err
	}
	filtered := buckets[:0]
	for _, b := range buckets {
		if bookID != 0 && b.BookID != bookID {
			continue
		}
		if mode != "" && b.Mode != mode {
			continue
		}
		filtered = append(filtered, b)
	}
	return statistics.Summarize(filtered, granularity, year, month), nil
}

// Snapshot loads the ledger and the statistics of a learner.
func (s *Service) Snapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	memories, err := s.memories.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	buckets, err := s.stats.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Memories: memories, Statistics: buckets}, nil
}
