package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordexam/internal/datasync"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [directory]",
		Short: "Export books, learning records and statistics as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			outputDir := env.cfg.Outputs.ExportDirectory
			if len(args) == 1 {
				outputDir = args[0]
			}
			if outputDir == "" {
				return fmt.Errorf("no export directory: pass one or set outputs.export_directory")
			}
			sink := datasync.NewYAMLSink(outputDir)

			ctx := cmd.Context()
			users, err := env.words.FindUsers(ctx)
			if err != nil {
				return fmt.Errorf("FindUsers() > %w", err)
			}
			ownerNames := make(map[int64]string, len(users))
			for _, u := range users {
				ownerNames[u.ID] = u.Name
				snapshot, err := env.service.Snapshot(ctx, u.ID)
				if err != nil {
					return fmt.Errorf("Snapshot(%s) > %w", u.Name, err)
				}
				if err := sink.WriteSnapshot(u.Name, snapshot); err != nil {
					return fmt.Errorf("WriteSnapshot(%s) > %w", u.Name, err)
				}
				fmt.Printf("[USER] %s: %d records, %d statistics\n", u.Name, len(snapshot.Memories), len(snapshot.Statistics))
			}

			books, err := env.words.FindBooks(ctx)
			if err != nil {
				return fmt.Errorf("FindBooks() > %w", err)
			}
			for _, b := range books {
				words, err := env.words.FindWords(ctx, b.ID)
				if err != nil {
					return fmt.Errorf("FindWords(%s) > %w", b.Title, err)
				}
				path, err := sink.WriteBook(b, ownerNames[b.OwnerID], words)
				if err != nil {
					return fmt.Errorf("WriteBook(%s) > %w", b.Title, err)
				}
				fmt.Printf("[BOOK] %s: %d words -> %s\n", b.Title, len(words), path)
			}
			return nil
		},
	}
}
