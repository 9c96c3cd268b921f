package extractors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var errEmptyPDF = errors.New("empty PDF content")

// PDFExtractor reads the plain text of the leading pages of a PDF. The number of pages is an
// explicit parameter: 1 reads only the first page, a value < 1 reads the whole document.
type PDFExtractor struct {
	pages int
}

func NewPDFExtractor(pages int) *PDFExtractor {
	return &PDFExtractor{pages: pages}
}

func (e *PDFExtractor) Name() string { return "pdf" }

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// the reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", errEmptyPDF
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", wrapf(err, "open pdf")
	}

	last := r.NumPage()
	if e.pages > 0 && e.pages < last {
		last = e.pages
	}

	texts := make([]string, 0, last)
	for i := 1; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", wrapf(err, "read page %d", i)
		}
		texts = append(texts, strings.TrimSpace(pageText))
	}
	return strings.Join(texts, "\n\n"), nil
}
