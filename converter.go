package pdf2md

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config controls markdown conversion behavior.
type Config struct {
	// IncludeTitle writes the source file stem as an H1 heading at the top
	// of the output (default: true)
	IncludeTitle bool

	// IncludePageBreaks adds "---" separators between pages (default: false)
	IncludePageBreaks bool

	// EnableMetricsLogging logs per-page extraction timing (default: false)
	EnableMetricsLogging bool
}

// DefaultConfig returns the default converter configuration.
func DefaultConfig() Config {
	return Config{
		IncludeTitle:      true,
		IncludePageBreaks: false,
	}
}

// ProgressFunc is called after each page has been extracted.
type ProgressFunc func(page, total int)

// Converter converts PDF files to markdown files using an Extractor.
type Converter struct {
	extractor Extractor
	config    Config
}

// NewConverter creates a new PDF to markdown converter with default configuration.
func NewConverter(extractor Extractor) *Converter {
	return &Converter{
		extractor: extractor,
		config:    DefaultConfig(),
	}
}

// NewConverterWithConfig creates a new PDF to markdown converter with custom configuration.
func NewConverterWithConfig(extractor Extractor, config Config) *Converter {
	return &Converter{
		extractor: extractor,
		config:    config,
	}
}

// Markdown converts the PDF at sourcePath and returns the markdown content
// without writing it anywhere. progress may be nil.
func (c *Converter) Markdown(sourcePath string, progress ProgressFunc) (string, error) {
	doc := &Document{
		Title: SourceStem(sourcePath),
	}

	pageStart := time.Now()
	err := c.extractor.ExtractPages(sourcePath, func(page, total int, text string) error {
		if c.config.EnableMetricsLogging {
			log.Printf("Page %d/%d extracted in %v", page, total, time.Since(pageStart))
			pageStart = time.Now()
		}
		doc.Pages = append(doc.Pages, text)
		if progress != nil {
			progress(page, total)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return doc.ToMarkdown(c.config), nil
}

// ConvertFile converts the PDF at sourcePath and writes the result to
// <outputDir>/<stem>.md, creating outputDir if needed. It returns the path
// of the written file. On extraction failure no output file is written.
func (c *Converter) ConvertFile(sourcePath, outputDir string, progress ProgressFunc) (string, error) {
	markdown, err := c.Markdown(sourcePath, progress)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	outputPath := filepath.Join(outputDir, SourceStem(sourcePath)+".md")
	if err := os.WriteFile(outputPath, []byte(markdown), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write output file")
	}

	return outputPath, nil
}

// SourceStem returns the base name of path without its extension.
func SourceStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
