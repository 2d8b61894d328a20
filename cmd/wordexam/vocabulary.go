package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/datasync"
	"github.com/at-ishikawa/wordexam/internal/dictionary"
	"github.com/at-ishikawa/wordexam/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			applied, err := database.Migrate(cmd.Context(), env.db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if len(applied) == 0 {
				fmt.Println("No new migrations.")
				return nil
			}
			for _, name := range applied {
				fmt.Printf("Applied %s\n", name)
			}
			return nil
		},
	}
}

func newUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage learners",
	}
	userCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			user, err := env.words.CreateUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("CreateUser(%s) > %w", args[0], err)
			}
			fmt.Printf("Created user %q (id %d)\n", user.Name, user.ID)
			return nil
		},
	})
	return userCmd
}

func newBookCommand() *cobra.Command {
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Manage books",
	}

	var owner string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an empty book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			ctx := cmd.Context()
			user, err := env.words.FindUserByName(ctx, owner)
			if err != nil {
				return fmt.Errorf("user %q: %w", owner, err)
			}
			book, err := env.words.CreateBook(ctx, args[0], user.ID)
			if err != nil {
				return fmt.Errorf("CreateBook(%s) > %w", args[0], err)
			}
			fmt.Printf("Created book %q (id %d)\n", book.Title, book.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&owner, "owner", "", "owner name")
	_ = addCmd.MarkFlagRequired("owner")

	var bookTitle string
	searchCmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search words of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			ctx := cmd.Context()
			book, err := env.words.FindBookByTitle(ctx, bookTitle)
			if err != nil {
				return fmt.Errorf("book %q: %w", bookTitle, err)
			}
			words, err := env.service.SearchWords(ctx, book.ID, args[0])
			if err != nil {
				return fmt.Errorf("SearchWords() > %w", err)
			}
			for _, w := range words {
				fmt.Printf("%s\t%s\t%s\n", w.Word, w.Pronunciation, w.Meaning)
			}
			return nil
		},
	}
	searchCmd.Flags().StringVar(&bookTitle, "book", "", "book title")
	_ = searchCmd.MarkFlagRequired("book")

	bookCmd.AddCommand(addCmd, searchCmd)
	return bookCmd
}

func newImportCommand() *cobra.Command {
	var opts datasync.ImportOptions
	cmd := &cobra.Command{
		Use:   "import <file.yml>",
		Short: "Import a book file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := datasync.ReadBookFile(args[0])
			if err != nil {
				return err
			}
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			result, err := datasync.NewImporter(env.words, os.Stdout).ImportBook(cmd.Context(), file, opts)
			if err != nil {
				return fmt.Errorf("ImportBook() > %w", err)
			}
			datasync.WriteSummary(os.Stdout, result, opts.DryRun)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().BoolVar(&opts.UpdateExisting, "update-existing", false, "overwrite words whose content changed")
	return cmd
}

func newEnrichCommand() *cobra.Command {
	var bookTitle string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill missing pronunciations from the dictionary API",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			ctx := cmd.Context()
			book, err := env.words.FindBookByTitle(ctx, bookTitle)
			if err != nil {
				return fmt.Errorf("book %q: %w", bookTitle, err)
			}
			rapidAPI := env.cfg.Dictionaries.RapidAPI
			reader := dictionary.NewReader(rapidAPI.CacheDirectory, dictionary.Config{
				RapidAPIHost: rapidAPI.Host,
				RapidAPIKey:  rapidAPI.Key,
			})
			result, err := dictionary.NewEnricher(env.words, reader, os.Stdout).Enrich(ctx, book.ID, dryRun)
			if err != nil {
				return fmt.Errorf("Enrich() > %w", err)
			}
			fmt.Printf("\nUpdated %d, not found %d, failed %d\n", result.Updated, result.NotFound, result.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&bookTitle, "book", "", "book title")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "look up words without writing")
	_ = cmd.MarkFlagRequired("book")
	return cmd
}
