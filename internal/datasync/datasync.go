// Package datasync imports vocabulary books from YAML files and exports the ledger to YAML.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
)

// BookFile is the YAML layout of one vocabulary book.
type BookFile struct {
	Title string            `yaml:"title"`
	Owner string            `yaml:"owner"`
	Words []vocabulary.Word `yaml:"words"`
}

// ReadBookFile parses path, rejecting unknown fields.
func ReadBookFile(path string) (*BookFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var book BookFile
	if err := decoder.Decode(&book); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if book.Title == "" {
		return nil, fmt.Errorf("%s: title is required", path)
	}
	if book.Owner == "" {
		return nil, fmt.Errorf("%s: owner is required", path)
	}
	return &book, nil
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	UserCreated  bool
	BookCreated  bool
	WordsNew     int
	WordsSkipped int
	WordsUpdated int
	WordsInvalid int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes the words of a BookFile to the database.
type Importer struct {
	repo   vocabulary.Repository
	writer io.Writer
}

func NewImporter(repo vocabulary.Repository, writer io.Writer) *Importer {
	return &Importer{repo: repo, writer: writer}
}

// ImportBook creates the owner and the book when missing, then adds new words.
// Words already in the book are skipped, or rewritten with UpdateExisting when their content differs.
// DryRun reports the same classification without writing anything.
func (imp *Importer) ImportBook(ctx context.Context, file *BookFile, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	owner, err := imp.repo.FindUserByName(ctx, file.Owner)
	switch {
	case errors.Is(err, database.ErrNotFound):
		result.UserCreated = true
		owner = &vocabulary.User{Name: file.Owner}
		if !opts.DryRun {
			if owner, err = imp.repo.CreateUser(ctx, file.Owner); err != nil {
				return nil, fmt.Errorf("CreateUser(%s) > %w", file.Owner, err)
			}
		}
		_, _ = fmt.Fprintf(imp.writer, "  [NEW USER]  %q\n", file.Owner)
	case err != nil:
		return nil, fmt.Errorf("FindUserByName(%s) > %w", file.Owner, err)
	}

	book, err := imp.repo.FindBookByTitle(ctx, file.Title)
	var existing []vocabulary.Word
	switch {
	case errors.Is(err, database.ErrNotFound):
		result.BookCreated = true
		book = &vocabulary.Book{Title: file.Title, OwnerID: owner.ID}
		if !opts.DryRun {
			if book, err = imp.repo.CreateBook(ctx, file.Title, owner.ID); err != nil {
				return nil, fmt.Errorf("CreateBook(%s) > %w", file.Title, err)
			}
		}
		_, _ = fmt.Fprintf(imp.writer, "  [NEW BOOK]  %q\n", file.Title)
	case err != nil:
		return nil, fmt.Errorf("FindBookByTitle(%s) > %w", file.Title, err)
	default:
		if existing, err = imp.repo.FindWords(ctx, book.ID); err != nil {
			return nil, fmt.Errorf("FindWords(%d) > %w", book.ID, err)
		}
	}

	byWord := make(map[string]vocabulary.Word, len(existing))
	for _, w := range existing {
		byWord[w.Word] = w
	}

	var creates, updates []*vocabulary.Word
	seen := make(map[string]bool, len(file.Words))
	for i := range file.Words {
		w := file.Words[i]
		if w.Word == "" || w.Meaning == "" {
			_, _ = fmt.Fprintf(imp.writer, "  [INVALID]  entry %d needs both word and meaning\n", i+1)
			result.WordsInvalid++
			continue
		}
		if seen[w.Word] {
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %q is listed twice\n", w.Word)
			result.WordsSkipped++
			continue
		}
		seen[w.Word] = true
		w.BookID = book.ID

		current, ok := byWord[w.Word]
		switch {
		case !ok:
			creates = append(creates, &w)
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %q\n", w.Word)
			result.WordsNew++
		case current.SameContent(w) || !opts.UpdateExisting:
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", w.Word)
			result.WordsSkipped++
		default:
			w.ID = current.ID
			updates = append(updates, &w)
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", w.Word)
			result.WordsUpdated++
		}
	}

	if opts.DryRun {
		return &result, nil
	}
	if err := imp.repo.BatchCreateWords(ctx, creates); err != nil {
		return nil, fmt.Errorf("BatchCreateWords() > %w", err)
	}
	if err := imp.repo.BatchUpdateWords(ctx, updates); err != nil {
		return nil, fmt.Errorf("BatchUpdateWords() > %w", err)
	}
	return &result, nil
}

// WriteSummary prints the counts of an import.
func WriteSummary(w io.Writer, result *ImportResult, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	_, _ = fmt.Fprintf(w, "%swords: %d new, %d updated, %d skipped, %d invalid\n",
		prefix, result.WordsNew, result.WordsUpdated, result.WordsSkipped, result.WordsInvalid)
}
