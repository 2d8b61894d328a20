// Package pdf writes markdown reports and converts them to PDF.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/wordexam/internal/assets"
)

// ConvertMarkdownToPDF converts a markdown file to a PDF next to it and returns the PDF path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

// Report is where a word list report was written.
type Report struct {
	MarkdownPath string
	PDFPath      string
}

// WriteWordListReport renders data to <outputDir>/<name>.md and, unless markdownOnly, converts it to PDF.
func WriteWordListReport(outputDir, name, templatePath string, data assets.WordListTemplate, markdownOnly bool) (*Report, error) {
	var buf bytes.Buffer
	if err := assets.WriteWordList(&buf, templatePath, data); err != nil {
		return nil, fmt.Errorf("assets.WriteWordList() > %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
	}
	markdownPath := filepath.Join(outputDir, name+".md")
	if err := os.WriteFile(markdownPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}

	report := &Report{MarkdownPath: markdownPath}
	if markdownOnly {
		return report, nil
	}
	pdfPath, err := ConvertMarkdownToPDF(markdownPath)
	if err != nil {
		return report, fmt.Errorf("ConvertMarkdownToPDF() > %w", err)
	}
	report.PDFPath = pdfPath
	return report, nil
}
