package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/at-ishikawa/wordexam/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
)

// Lookuper finds the dictionary entry of a word.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (rapidapi.Response, error)
}

type EnrichResult struct {
	Updated  int
	NotFound int
	Failed   int
}

// Enricher fills the pronunciation of words that have none.
type Enricher struct {
	repo   vocabulary.Repository
	lookup Lookuper
	writer io.Writer
}

func NewEnricher(repo vocabulary.Repository, lookup Lookuper, writer io.Writer) *Enricher {
	return &Enricher{repo: repo, lookup: lookup, writer: writer}
}

// Enrich looks up every word of the book without a pronunciation.
// Words the dictionary does not know or fails on are reported and left unchanged.
func (e *Enricher) Enrich(ctx context.Context, bookID int64, dryRun bool) (*EnrichResult, error) {
	words, err := e.repo.FindWordsWithoutPronunciation(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("FindWordsWithoutPronunciation(%d) > %w", bookID, err)
	}

	var result EnrichResult
	var updates []*vocabulary.Word
	for i := range words {
		w := words[i]
		resp, err := e.lookup.Lookup(ctx, w.Word)
		if err != nil {
			if errors.Is(err, ErrWordNotFound) {
				_, _ = fmt.Fprintf(e.writer, "  [NOT FOUND]  %q\n", w.Word)
				result.NotFound++
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Default().Warn("dictionary lookup failed", "word", w.Word, "error", err)
			result.Failed++
			continue
		}
		if resp.Pronunciation.All == "" {
			_, _ = fmt.Fprintf(e.writer, "  [NO PRONUNCIATION]  %q\n", w.Word)
			result.NotFound++
			continue
		}

		w.Pronunciation = resp.Pronunciation.All
		updates = append(updates, &w)
		_, _ = fmt.Fprintf(e.writer, "  [UPDATE]  %q /%s/\n", w.Word, w.Pronunciation)
		result.Updated++
	}

	if dryRun {
		return &result, nil
	}
	if err := e.repo.BatchUpdateWords(ctx, updates); err != nil {
		return nil, fmt.Errorf("BatchUpdateWords() > %w", err)
	}
	return &result, nil
}
