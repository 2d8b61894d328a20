package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordexam/internal/config"
	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/memory"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// environment is what every database-backed command needs.
type environment struct {
	cfg     *config.Config
	db      *sqlx.DB
	words   *vocabulary.DBRepository
	service *exam.Service
}

func (env *environment) Close() error {
	return env.db.Close()
}

func openEnvironment() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	words := vocabulary.NewDBRepository(db)
	service, err := exam.NewService(db, words, cfg.Scheduler)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("exam.NewService() > %w", err)
	}
	return &environment{cfg: cfg, db: db, words: words, service: service}, nil
}

// scopeFlags are the flags naming a learner, a book and an exam mode.
type scopeFlags struct {
	user string
	book string
	mode string
}

func (f *scopeFlags) register(cmd *cobra.Command, withMode bool) {
	cmd.Flags().StringVar(&f.user, "user", "", "learner name")
	cmd.Flags().StringVar(&f.book, "book", "", "book title")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("book")
	if withMode {
		cmd.Flags().StringVar(&f.mode, "mode", string(memory.ModePromptToAnswer), "exam mode: word (w) or meaning (m)")
	}
}

type resolvedScope struct {
	user  *vocabulary.User
	book  *vocabulary.Book
	scope memory.Scope
}

func (f *scopeFlags) resolve(ctx context.Context, repo vocabulary.Repository) (*resolvedScope, error) {
	user, err := repo.FindUserByName(ctx, f.user)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", f.user, err)
	}
	book, err := repo.FindBookByTitle(ctx, f.book)
	if err != nil {
		return nil, fmt.Errorf("book %q: %w", f.book, err)
	}
	result := &resolvedScope{
		user:  user,
		book:  book,
		scope: memory.Scope{UserID: user.ID, BookID: book.ID},
	}
	if f.mode != "" {
		mode, err := memory.ParseMode(f.mode)
		if err != nil {
			return nil, err
		}
		result.scope.Mode = mode
	}
	return result, nil
}
