package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordexam/internal/cli"
)

func newAdmitCommand() *cobra.Command {
	var flags scopeFlags
	var count int
	cmd := &cobra.Command{
		Use:   "admit",
		Short: "Admit new words into the exam",
		Long:  "Admit new words into the exam. A negative count admits the newest words first.",
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
			if !cmd.Flags().Changed("count") {
				count = env.cfg.Scheduler.DefaultAdmissionCount
			}
			admitted, err := env.service.AdmitNewItems(ctx, resolved.scope, count)
			if err != nil {
				return fmt.Errorf("AdmitNewItems() > %w", err)
			}
			fmt.Printf("Admitted %d words of %q for %s.\n", admitted, resolved.book.Title, resolved.user.Name)
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVar(&count, "count", 0, "number of words to admit")
	return cmd
}

func newExamCommand() *cobra.Command {
	var flags scopeFlags
	var count int
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Take an interactive exam",
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
			var n *int
			if cmd.Flags().Changed("count") {
				n = &count
			}

			examCLI := cli.NewInteractiveExamCLI(env.service, resolved.scope, os.Stdin, os.Stdout)
			ok, err := examCLI.Start(ctx, n)
			if err != nil {
				return err
			}
			if ok {
				if err := examCLI.Run(ctx, examCLI); err != nil {
					return err
				}
			}
			return examCLI.PrintDailyStats(ctx)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVar(&count, "count", 0, "number of new words to admit before the exam (default from config)")
	return cmd
}

func newResetCommand() *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "reset <word>",
		Short: "Send a word back to the first step",
		Args:  cobra.ExactArgs(1),
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
			words, err := env.words.SearchWords(ctx, resolved.book.ID, args[0])
			if err != nil {
				return fmt.Errorf("SearchWords() > %w", err)
			}
			for _, w := range words {
				if w.Word != args[0] {
					continue
				}
				m, err := env.service.ResetMemory(ctx, resolved.user.ID, w.ID, resolved.scope.Mode)
				if err != nil {
					return err
				}
				fmt.Printf("Reset %q (%s) to step %d.\n", w.Word, m.Mode, m.Step)
				return nil
			}
			return fmt.Errorf("word %q is not in %q", args[0], resolved.book.Title)
		},
	}
	flags.register(cmd, true)
	return cmd
}
