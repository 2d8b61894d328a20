package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordexam/internal/cli"
	"github.com/at-ishikawa/wordexam/internal/memory"
	"github.com/at-ishikawa/wordexam/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show exam statistics",
	}
	cmd.AddCommand(newStatsDailyCommand(), newStatsSummaryCommand())
	return cmd
}

func newStatsDailyCommand() *cobra.Command {
	var flags scopeFlags
	var date string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show answers of one exam day by step",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			ctx := cmd.Context()
			resolved, err := flags.resolve(ctx, env.words)
			if err != nil {
				return err
			}
			day := env.service.Today()
			if date != "" {
				day, err = time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
			}
			byStep, err := env.service.GetDailyStats(ctx, resolved.scope, day)
			if err != nil {
				return fmt.Errorf("GetDailyStats() > %w", err)
			}
			fmt.Printf("%s (%s) on %s\n", resolved.book.Title, resolved.scope.Mode, day.Format(time.DateOnly))
			cli.WriteDailyStats(os.Stdout, byStep)
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&date, "date", "", "exam day as YYYY-MM-DD (default today)")
	return cmd
}

func newStatsSummaryCommand() *cobra.Command {
	var userName, bookTitle, mode string
	var yearly bool
	var year, month int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show monthly/yearly statistics of first-attempt answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			granularity := statistics.Monthly
			if yearly {
				granularity = statistics.Yearly
			}

			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			ctx := cmd.Context()
			user, err := env.words.FindUserByName(ctx, userName)
			if err != nil {
				return fmt.Errorf("user %q: %w", userName, err)
			}
			var bookID int64
			if bookTitle != "" {
				book, err := env.words.FindBookByTitle(ctx, bookTitle)
				if err != nil {
					return fmt.Errorf("book %q: %w", bookTitle, err)
				}
				bookID = book.ID
			}
			var m memory.Mode
			if mode != "" {
				if m, err = memory.ParseMode(mode); err != nil {
					return err
				}
			}

			result, err := env.service.Summarize(ctx, user.ID, bookID, m, granularity, year, month)
			if err != nil {
				return fmt.Errorf("Summarize() > %w", err)
			}
			cli.WriteSummaryReport(os.Stdout, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&userName, "user", "", "learner name")
	cmd.Flags().StringVar(&bookTitle, "book", "", "book title (default every book)")
	cmd.Flags().StringVar(&mode, "mode", "", "exam mode (default every mode)")
	cmd.Flags().BoolVar(&yearly, "yearly", false, "group by year instead of month")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
