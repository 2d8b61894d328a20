// Package assets renders reports from embedded or user-supplied markdown templates.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

const wordListTemplateName = "word-list.md.go.tmpl"

//go:embed templates/word-list.md.go.tmpl
var fallbackWordListTemplate string

// WordListTemplate is the data of a word list report.
type WordListTemplate struct {
	Title string
	Book  string
	Mode  string
	Date  time.Time
	Words []WordListItem
}

type WordListItem struct {
	Word               string
	Pronunciation      string
	Meaning            string
	Example            string
	ExampleTranslation string
	Note               string
	Step               int
	AwareCount         int
	ForgotCount        int
}

// WriteWordList renders data with the template at templatePath, or the embedded one
// when templatePath is empty or cannot be parsed.
func WriteWordList(output io.Writer, templatePath string, data WordListTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, wordListTemplateName, fallbackWordListTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"inc":  func(i int) int { return i + 1 },
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
