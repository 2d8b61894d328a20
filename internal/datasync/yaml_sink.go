package datasync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/vocabulary"
)

type exportMemory struct {
	WordID      int64  `yaml:"word_id"`
	BookID      int64  `yaml:"book_id"`
	Mode        string `yaml:"mode"`
	Step        int    `yaml:"step"`
	UnlockAt    string `yaml:"unlock_at"`
	Status      string `yaml:"status"`
	GroupLevel  int    `yaml:"group_level"`
	AwareCount  int    `yaml:"aware_count"`
	ForgotCount int    `yaml:"forgot_count"`
}

type exportBucket struct {
	BookID      int64  `yaml:"book_id"`
	ExamDate    string `yaml:"exam_date"`
	Mode        string `yaml:"mode"`
	Step        int    `yaml:"step"`
	Status      string `yaml:"status"`
	AwareCount  int    `yaml:"aware_count"`
	ForgotCount int    `yaml:"forgot_count"`
}

// YAMLSink writes exports under one directory.
type YAMLSink struct {
	outputDir string
}

func NewYAMLSink(outputDir string) *YAMLSink {
	return &YAMLSink{outputDir: outputDir}
}

// WriteSnapshot writes <user>/memories.yml and <user>/statistics.yml.
func (s *YAMLSink) WriteSnapshot(userName string, snapshot *exam.Snapshot) error {
	dir := filepath.Join(s.outputDir, userName)

	memories := make([]exportMemory, len(snapshot.Memories))
	for i, m := range snapshot.Memories {
		memories[i] = exportMemory{
			WordID:      m.WordID,
			BookID:      m.BookID,
			Mode:        string(m.Mode),
			Step:        m.Step,
			UnlockAt:    m.UnlockAt.UTC().Format("2006-01-02T15:04:05Z"),
			Status:      string(m.Status),
			GroupLevel:  m.GroupLevel,
			AwareCount:  m.AwareCount,
			ForgotCount: m.ForgotCount,
		}
	}
	if err := writeYAML(filepath.Join(dir, "memories.yml"), memories); err != nil {
		return fmt.Errorf("write memories.yml: %w", err)
	}

	buckets := make([]exportBucket, len(snapshot.Statistics))
	for i, b := range snapshot.Statistics {
		buckets[i] = exportBucket{
			BookID:      b.BookID,
			ExamDate:    b.ExamDate.UTC().Format("2006-01-02"),
			Mode:        string(b.Mode),
			Step:        b.Step,
			Status:      string(b.Status),
			AwareCount:  b.AwareCount,
			ForgotCount: b.ForgotCount,
		}
	}
	if err := writeYAML(filepath.Join(dir, "statistics.yml"), buckets); err != nil {
		return fmt.Errorf("write statistics.yml: %w", err)
	}
	return nil
}

// WriteBook writes a book in the layout ReadBookFile accepts, to books/<title>.yml.
func (s *YAMLSink) WriteBook(book vocabulary.Book, owner string, words []vocabulary.Word) (string, error) {
	out := BookFile{Title: book.Title, Owner: owner, Words: make([]vocabulary.Word, len(words))}
	for i, w := range words {
		w.ID = 0
		out.Words[i] = w
	}

	path := filepath.Join(s.outputDir, "books", fileName(book.Title)+".yml")
	if err := writeYAML(path, out); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func fileName(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, title)
}

func writeYAML(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("close encoder: %w", err)
	}
	return f.Close()
}
