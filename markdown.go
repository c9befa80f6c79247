package pdf2md

import (
	"bytes"
	"strings"

	"github.com/ivanvanderbyl/markdown"
)

// Document is the extracted content of a single PDF: one text block per page.
type Document struct {
	Title string
	Pages []string
}

// ToMarkdown renders the document as markdown. Page text is passed through
// as-is; no structure is reconstructed from layout.
func (d *Document) ToMarkdown(config Config) string {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	if config.IncludeTitle && d.Title != "" {
		md.H1(d.Title)
		md.LF()
	}

	for i, page := range d.Pages {
		if i > 0 && config.IncludePageBreaks {
			md.HorizontalRule().LF()
		}

		text := normalizePageText(page)
		if text == "" {
			continue
		}
		md.PlainText(text)
		md.LF()
	}

	if err := md.Build(); err != nil {
		// If there's an error building the markdown, fall back to empty string
		return ""
	}

	return buf.String()
}

// normalizePageText converts pdfium's CRLF line endings and trims trailing
// whitespace from each page block.
func normalizePageText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}
