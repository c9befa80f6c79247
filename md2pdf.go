package pdf2md

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

// MarkdownToPDFConverter renders Markdown text files as PDF documents using
// gofpdf. It is the reverse direction of Converter and plugs into the same
// FileConverter seam the runner drives. Headings get larger bold fonts;
// everything else is rendered as body text. Images are not rendered.
type MarkdownToPDFConverter struct{}

// NewMarkdownToPDFConverter creates a Markdown to PDF converter.
func NewMarkdownToPDFConverter() *MarkdownToPDFConverter {
	return &MarkdownToPDFConverter{}
}

// ConvertFile renders the Markdown file at sourcePath into
// <outputDir>/<stem>.pdf, creating outputDir if needed. It returns the path
// of the written file. Files without a .md extension are rejected before
// any output is written.
func (c *MarkdownToPDFConverter) ConvertFile(sourcePath, outputDir string, progress ProgressFunc) (string, error) {
	if !strings.EqualFold(filepath.Ext(sourcePath), ".md") {
		return "", errors.Errorf("%s is not a markdown file", filepath.Base(sourcePath))
	}

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to read markdown file")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	lines := strings.Split(normalizePageText(string(raw)), "\n")
	for i, line := range lines {
		renderLine(doc, tr, line)
		if progress != nil {
			progress(i+1, len(lines))
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	outputPath := filepath.Join(outputDir, SourceStem(sourcePath)+".pdf")
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return "", errors.Wrap(err, "failed to write output file")
	}

	return outputPath, nil
}

// renderLine writes a single Markdown line into the PDF.
func renderLine(doc *gofpdf.Fpdf, tr func(string) string, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		doc.Ln(3)
		return
	}

	if level, text := headingLevel(trimmed); level > 0 {
		sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
		size := sizes[level]
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", size)
		doc.MultiCell(0, size*0.6, tr(text), "", "L", false)
		doc.Ln(2)
		return
	}

	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 5.5, tr(trimmed), "", "L", false)
}

// headingLevel returns the ATX heading level (1-6) and the heading text, or
// 0 when the line is not a heading.
func headingLevel(line string) (int, string) {
	level := 0
	for _, ch := range line {
		if ch != '#' {
			break
		}
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	rest := line[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return 0, ""
	}
	return level, strings.TrimSpace(rest)
}
