package pdf2md_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanvanderbyl/pdf2md"
)

// setupPDFium initialises a pdfium instance for testing.
func setupPDFium(t *testing.T) pdfium.Pdfium {
	t.Helper()

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	instance, err := pool.GetInstance(time.Second * 30)
	require.NoError(t, err)

	return instance
}

// writeFixturePDF generates a PDF at path with one page per entry in pages.
func writeFixturePDF(t *testing.T, path string, pages ...string) {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Cell(0, 10, text)
		}
	}
	require.NoError(t, doc.OutputFileAndClose(path))
}

func TestSourceStem(t *testing.T) {
	assert.Equal(t, "report", pdf2md.SourceStem(filepath.Join("docs", "report.pdf")))
	assert.Equal(t, "no-extension", pdf2md.SourceStem("no-extension"))
	assert.Equal(t, "archive.tar", pdf2md.SourceStem("archive.tar.pdf"))
}

func TestConverter_ConvertFile(t *testing.T) {
	instance := setupPDFium(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "sample.pdf")
	writeFixturePDF(t, source, "Hello from page one")

	converter := pdf2md.NewConverter(pdf2md.NewPdfiumExtractor(instance))
	outputPath, err := converter.ConvertFile(source, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "sample.md"), outputPath)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# sample")
	assert.Contains(t, string(content), "Hello from page one")
}

func TestConverter_ReportsPerPageProgress(t *testing.T) {
	instance := setupPDFium(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "multi.pdf")
	writeFixturePDF(t, source, "first page", "second page", "third page")

	converter := pdf2md.NewConverter(pdf2md.NewPdfiumExtractor(instance))

	var calls [][2]int
	_, err := converter.Markdown(source, func(page, total int) {
		calls = append(calls, [2]int{page, total})
	})
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, [2]int{1, 3}, calls[0])
	assert.Equal(t, [2]int{3, 3}, calls[2])
}

func TestConverter_EmptyPDFStillSucceeds(t *testing.T) {
	instance := setupPDFium(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "blank.pdf")
	writeFixturePDF(t, source, "")

	converter := pdf2md.NewConverter(pdf2md.NewPdfiumExtractor(instance))
	outputPath, err := converter.ConvertFile(source, dir, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	// Near-empty output: just the title heading, no body text.
	assert.Contains(t, string(content), "# blank")
}

func TestConverter_NonPDFFailsWithoutOutput(t *testing.T) {
	instance := setupPDFium(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(source, []byte("this is not a PDF"), 0o644))

	converter := pdf2md.NewConverter(pdf2md.NewPdfiumExtractor(instance))
	_, err := converter.ConvertFile(source, dir, nil)
	require.Error(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "fake.md"))
}

func TestExtractor_GetDocumentInfo(t *testing.T) {
	instance := setupPDFium(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "pages.pdf")
	writeFixturePDF(t, source, "one", "two")

	extractor := pdf2md.NewPdfiumExtractor(instance)
	info, err := extractor.GetDocumentInfo(source)
	require.NoError(t, err)
	assert.Equal(t, 2, info.PageCount)
}

func TestDocument_ToMarkdown(t *testing.T) {
	doc := &pdf2md.Document{
		Title: "report",
		Pages: []string{"first page text", "second page text"},
	}

	t.Run("default config", func(t *testing.T) {
		out := doc.ToMarkdown(pdf2md.DefaultConfig())
		assert.Contains(t, out, "# report")
		assert.Contains(t, out, "first page text")
		assert.Contains(t, out, "second page text")
		assert.NotContains(t, out, "---")
	})

	t.Run("page breaks", func(t *testing.T) {
		out := doc.ToMarkdown(pdf2md.Config{IncludeTitle: true, IncludePageBreaks: true})
		assert.Contains(t, out, "---")
		assert.Less(t,
			strings.Index(out, "first page text"),
			strings.Index(out, "---"))
	})

	t.Run("no title", func(t *testing.T) {
		out := doc.ToMarkdown(pdf2md.Config{})
		assert.NotContains(t, out, "# report")
		assert.Contains(t, out, "first page text")
	})

	t.Run("blank pages are skipped", func(t *testing.T) {
		blank := &pdf2md.Document{Title: "blank", Pages: []string{"", "  \r\n"}}
		out := blank.ToMarkdown(pdf2md.DefaultConfig())
		assert.Contains(t, out, "# blank")
		assert.NotContains(t, out, "\r")
	})
}
