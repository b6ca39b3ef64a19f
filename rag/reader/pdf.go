package reader

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/aqua777/ragspace/errs"
)

// PDFReader extracts text from PDF files using ledongthuc/pdf. Pages that
// fail text extraction are skipped; a PDF with no extractable text at all is
// rejected.
type PDFReader struct{}

// NewPDFReader creates a PDFReader.
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// ExtractText returns the text of all pages joined by blank lines.
func (r *PDFReader) ExtractText(path string) (string, error) {
	pages, err := r.ExtractPages(path)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n\n"), nil
}

// ExtractPages returns the text of each page that has any.
func (r *PDFReader) ExtractPages(path string) ([]string, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := pdfReader.NumPage()
	var pages []string
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, errs.Input("no text content found in %s", path)
	}
	return pages, nil
}

var _ Reader = (*PDFReader)(nil)
