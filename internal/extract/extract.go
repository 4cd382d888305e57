package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrExtraction marks any failure to turn an upload into resume text.
	ErrExtraction = errors.New("pdf text extraction failed")
	// ErrNoText is returned when the document parsed but no page carried text.
	ErrNoText = fmt.Errorf("%w: document yielded no text", ErrExtraction)

	errNullPage = errors.New("page object missing")
)

// PDFExtractor extracts plain text from PDF uploads.
// Library used: github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText implements the extractor contract used by the analysis service.
func (PDFExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	return PDF(ctx, data)
}

// PDF returns the text of every page concatenated in page order with no separator.
// Any page failure fails the whole document; callers never see partial text.
func PDF(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}

	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtraction, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrExtraction)
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtraction, i, errNullPage)
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtraction, i, err)
		}
		b.WriteString(pageText)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}
