// Package cron admits new words on a schedule.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/at-ishikawa/wordexam/internal/config"
	"github.com/at-ishikawa/wordexam/internal/memory"
)

// Admitter is the scheduler operation the jobs call.
type Admitter interface {
	AdmitNewItems(ctx context.Context, scope memory.Scope, n int) (int64, error)
}

// Job admits Count words of one scope every time Schedule fires.
type Job struct {
	Name     string
	Scope    memory.Scope
	Count    int
	Schedule string
}

// JobState is the outcome of the last run of a job.
type JobState struct {
	LastRunAt  time.Time
	LastStatus string
	LastError  string
	Admitted   int64
}

// JobsFromConfig converts configured admission jobs.
// A job without a count admits defaultCount words.
func JobsFromConfig(cfg config.AdmissionConfig, defaultCount int) ([]Job, error) {
	jobs := make([]Job, 0, len(cfg.Jobs))
	for _, c := range cfg.Jobs {
		mode, err := memory.ParseMode(c.Mode)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", c.Name, err)
		}
		count := defaultCount
		if c.Count != nil {
			count = *c.Count
		}
		jobs = append(jobs, Job{
			Name:     c.Name,
			Scope:    memory.Scope{UserID: c.UserID, BookID: c.BookID, Mode: mode},
			Count:    count,
			Schedule: c.Schedule,
		})
	}
	return jobs, nil
}

type Scheduler struct {
	admitter Admitter
	cron     *rcron.Cron
	timeout  time.Duration

	mu     sync.Mutex
	jobs   map[string]Job
	states map[string]JobState
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler evaluates schedules in loc; standard five-field specs and descriptors like @daily are accepted.
func NewScheduler(admitter Admitter, loc *time.Location) *Scheduler {
	logger := slogLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		admitter: admitter,
		cron: rcron.New(
			rcron.WithLocation(loc),
			rcron.WithLogger(logger),
			rcron.WithChain(rcron.Recover(logger), rcron.SkipIfStillRunning(logger)),
		),
		timeout: time.Minute,
		jobs:    make(map[string]Job),
		states:  make(map[string]JobState),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add registers a job. Names must be unique.
func (s *Scheduler) Add(job Job) error {
	if !job.Scope.Mode.Valid() {
		return fmt.Errorf("job %s: %w: %q", job.Name, memory.ErrInvalidMode, job.Scope.Mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("job %s is already registered", job.Name)
	}
	if _, err := s.cron.AddFunc(job.Schedule, func() { s.Run(job.Name) }); err != nil {
		return fmt.Errorf("cron.AddFunc(%s) > %w", job.Schedule, err)
	}
	s.jobs[job.Name] = job
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Default().Info("admission scheduler started", "jobs", len(s.jobs))
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	s.cancel()
	select {
	case <-stopCtx.Done():
		slog.Default().Info("admission scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running admission jobs: %w", ctx.Err())
	}
}

// Run executes the named job once and records its state.
func (s *Scheduler) Run(name string) {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		slog.Default().Warn("unknown admission job", "job", name)
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	admitted, err := s.admitter.AdmitNewItems(ctx, job.Scope, job.Count)

	state := JobState{LastRunAt: time.Now(), Admitted: admitted, LastStatus: "ok"}
	if err != nil {
		state.LastStatus = "error"
		state.LastError = err.Error()
		slog.Default().Error("admission job failed", "job", name, "error", err)
	} else {
		slog.Default().Info("admission job done", "job", name, "admitted", admitted)
	}

	s.mu.Lock()
	s.states[name] = state
	s.mu.Unlock()
}

// State returns the last outcome of the named job.
func (s *Scheduler) State(name string) (JobState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[name]
	return state, ok
}

type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Default().Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Default().Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
