package pdf2md_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanvanderbyl/pdf2md"
)

func TestMarkdownToPDFConverter_ConvertFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.md")
	content := "# Notes\n\nSome body text.\n\n## Details\n\nMore text here.\n"
	require.NoError(t, os.WriteFile(source, []byte(content), 0o644))

	converter := pdf2md.NewMarkdownToPDFConverter()
	outputPath, err := converter.ConvertFile(source, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "notes.pdf"), outputPath)

	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.True(t, len(raw) > 0)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestMarkdownToPDFConverter_ReportsProgress(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "lines.md")
	require.NoError(t, os.WriteFile(source, []byte("one\ntwo\nthree"), 0o644))

	var calls [][2]int
	converter := pdf2md.NewMarkdownToPDFConverter()
	_, err := converter.ConvertFile(source, dir, func(page, total int) {
		calls = append(calls, [2]int{page, total})
	})
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, [2]int{1, 3}, calls[0])
	assert.Equal(t, [2]int{3, 3}, calls[2])
}

func TestMarkdownToPDFConverter_RejectsNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(source, []byte("%PDF-fake"), 0o644))

	converter := pdf2md.NewMarkdownToPDFConverter()
	_, err := converter.ConvertFile(source, dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a markdown file")

	// Rejection happens before any output is written.
	assert.NoFileExists(t, filepath.Join(dir, "report.pdf.pdf"))
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestRunner_DrivesMarkdownToPDF(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	good := filepath.Join(srcDir, "doc.md")
	require.NoError(t, os.WriteFile(good, []byte("# Doc\n\nbody"), 0o644))
	bad := filepath.Join(srcDir, "image.png")
	require.NoError(t, os.WriteFile(bad, []byte("png"), 0o644))

	sel := pdf2md.NewSelection()
	sel.Add(good)
	sel.Add(bad)

	result := pdf2md.NewRunner(pdf2md.NewMarkdownToPDFConverter(), nil).Run(sel, outDir)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)

	jobs := sel.Jobs()
	assert.Equal(t, pdf2md.StatusDone, jobs[0].Status)
	assert.FileExists(t, filepath.Join(outDir, "doc.pdf"))
	assert.Equal(t, pdf2md.StatusFailed, jobs[1].Status)
	assert.Error(t, jobs[1].Err)
}
