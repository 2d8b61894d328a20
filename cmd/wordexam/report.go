package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordexam/internal/assets"
	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/memory"
	"github.com/at-ishikawa/wordexam/internal/pdf"
)

type reportKind struct {
	name  string
	title string
	list  func(s *exam.Service, ctx context.Context, scope memory.Scope) ([]exam.WordMemory, error)
}

var reportKinds = []reportKind{
	{name: "unlocked", title: "Unlocked words", list: (*exam.Service).ListUnlocked},
	{name: "new-or-wrong", title: "New or wrong words", list: (*exam.Service).ListNewOrWrong},
}

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write word lists of a scope as markdown and PDF",
	}
	for _, kind := range reportKinds {
		cmd.AddCommand(newReportKindCommand(kind))
	}
	return cmd
}

func newReportKindCommand(kind reportKind) *cobra.Command {
	var flags scopeFlags
	var markdownOnly bool
	cmd := &cobra.Command{
		Use:   kind.name,
		Short: fmt.Sprintf("Write the %s report", kind.name),
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
			items, err := kind.list(env.service, ctx, resolved.scope)
			if err != nil {
				return fmt.Errorf("list %s > %w", kind.name, err)
			}

			today := env.service.Today()
			data := newWordListTemplate(kind.title, resolved.book.Title, resolved.scope.Mode, items)
			data.Date = today
			name := fmt.Sprintf("%s-%s-%s-%s", kind.name, resolved.user.Name, resolved.scope.Mode, today.Format("20060102"))
			report, err := pdf.WriteWordListReport(env.cfg.Outputs.ReportDirectory, name, env.cfg.Templates.WordListTemplate, data, markdownOnly)
			if err != nil {
				return err
			}
			fmt.Printf("%d words written to %s\n", len(items), report.MarkdownPath)
			if report.PDFPath != "" {
				fmt.Printf("PDF: %s\n", report.PDFPath)
			}
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&markdownOnly, "markdown-only", false, "skip the PDF conversion")
	return cmd
}

func newWordListTemplate(title, book string, mode memory.Mode, items []exam.WordMemory) assets.WordListTemplate {
	words := make([]assets.WordListItem, len(items))
	for i, item := range items {
		words[i] = assets.WordListItem{
			Word:               item.Word.Word,
			Pronunciation:      item.Word.Pronunciation,
			Meaning:            item.Word.Meaning,
			Example:            item.Word.Example,
			ExampleTranslation: item.Word.ExampleTranslation,
			Note:               item.Word.Note,
			Step:               item.Memory.Step,
			AwareCount:         item.Memory.AwareCount,
			ForgotCount:        item.Memory.ForgotCount,
		}
	}
	return assets.WordListTemplate{
		Title: title,
		Book:  book,
		Mode:  string(mode),
		Words: words,
	}
}
