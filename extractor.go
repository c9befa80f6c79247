package pdf2md

import (
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// PageFunc receives the text of one page as it is extracted. page is
// 1-indexed, total is the page count of the document. Returning an error
// stops the extraction.
type PageFunc func(page, total int, text string) error

// Extractor is the single seam to the PDF library: open a document,
// enumerate its pages, extract text per page.
type Extractor interface {
	ExtractPages(filePath string, fn PageFunc) error
}

// PdfiumExtractor extracts text using pdfium text extraction.
type PdfiumExtractor struct {
	instance pdfium.Pdfium
}

// NewPdfiumExtractor creates an extractor backed by a pdfium instance.
func NewPdfiumExtractor(instance pdfium.Pdfium) *PdfiumExtractor {
	return &PdfiumExtractor{instance: instance}
}

// ExtractPages opens the PDF at filePath and calls fn with the plain text
// of each page in order. A page with no extractable characters yields an
// empty string rather than an error.
func (e *PdfiumExtractor) ExtractPages(filePath string, fn PageFunc) error {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return errors.Wrap(err, "failed to get page count")
	}

	for i := 0; i < pageCount.PageCount; i++ {
		text, err := e.extractPageText(doc.Document, i)
		if err != nil {
			return errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		if err := fn(i+1, pageCount.PageCount, text); err != nil {
			return err
		}
	}

	return nil
}

// extractPageText extracts the raw text of a single page.
func (e *PdfiumExtractor) extractPageText(docRef references.FPDF_DOCUMENT, pageIndex int) (string, error) {
	pageResp, err := e.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: docRef,
		Index:    pageIndex,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to load page")
	}
	defer e.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: pageResp.Page,
	})

	textPage, err := e.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &pageResp.Page,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to load text page")
	}
	defer e.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := e.instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to count characters")
	}

	if charCount.Count == 0 {
		return "", nil
	}

	text, err := e.instance.FPDFText_GetText(&requests.FPDFText_GetText{
		TextPage:   textPage.TextPage,
		StartIndex: 0,
		Count:      charCount.Count,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get page text")
	}

	return text.Text, nil
}

// GetDocumentInfo returns basic information about a PDF without extracting it.
func (e *PdfiumExtractor) GetDocumentInfo(filePath string) (*DocumentInfo, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &DocumentInfo{
		PageCount: pageCount.PageCount,
	}, nil
}

// DocumentInfo contains basic information about a PDF document.
type DocumentInfo struct {
	PageCount int
}
