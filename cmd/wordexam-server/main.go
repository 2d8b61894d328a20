package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/wordexam/internal/bootstrap"
	"github.com/at-ishikawa/wordexam/internal/config"
	"github.com/at-ishikawa/wordexam/internal/cron"
	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/server"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "wordexam-server",
		Short:         "Wordexam exam service HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error { return db.Close() })

	service, err := exam.NewService(db, vocabulary.NewDBRepository(db), cfg.Scheduler)
	if err != nil {
		return fmt.Errorf("exam.NewService() > %w", err)
	}

	scheduler, err := newAdmissionScheduler(cfg, service)
	if err != nil {
		return err
	}
	app.AddShutdownHook("admission", scheduler.Stop)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newHandler(service, cfg.Server.CORS.AllowedOrigins),
	}
	app.AddShutdownHook("http", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		scheduler.Start()
		slog.Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newAdmissionScheduler(cfg *config.Config, admitter cron.Admitter) (*cron.Scheduler, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}
	jobs, err := cron.JobsFromConfig(cfg.Admission, cfg.Scheduler.DefaultAdmissionCount)
	if err != nil {
		return nil, fmt.Errorf("cron.JobsFromConfig() > %w", err)
	}
	scheduler := cron.NewScheduler(admitter, loc)
	for _, job := range jobs {
		if err := scheduler.Add(job); err != nil {
			return nil, fmt.Errorf("add admission job %s: %w", job.Name, err)
		}
	}
	return scheduler, nil
}

func newHandler(service server.ExamService, allowedOrigins []string) http.Handler {
	path, h := server.NewExamHandler(service).Handler()
	mux := http.NewServeMux()
	mux.Handle(path, h)
	return corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), allowedOrigins)
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
