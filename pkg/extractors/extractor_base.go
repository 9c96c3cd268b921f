package extractors

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeTypeBin  = "application/octet-stream"
)

// Format extracts text from one kind of document.
type Format interface {
	Name() string
	Extract(ctx context.Context, data []byte) (string, error)
}

var _ models.TextExtractor = &Dispatcher{}

// Dispatcher routes an upload to the PDF, Word or image extractor by its MIME type.
type Dispatcher struct {
	pdf   Format
	docx  Format
	image Format
}

// NewDispatcher builds a dispatcher that reads up to pdfPages pages of a PDF and hands images to
// the given OCR engine.
func NewDispatcher(pdfPages int, ocr OCREngine) *Dispatcher {
	return &Dispatcher{
		pdf:   NewPDFExtractor(pdfPages),
		docx:  NewDOCXExtractor(),
		image: NewImageExtractor(ocr),
	}
}

// Extract returns the text of the upload. Unknown types fail with UnsupportedFormatError and
// failures of the underlying extractor are wrapped in ExtractionError.
func (d *Dispatcher) Extract(ctx context.Context, upload *models.Upload) (string, error) {
	contentType := DetectContentType(upload)

	var format Format
	switch {
	case contentType == MimeTypePDF:
		format = d.pdf
	case contentType == MimeTypeDOCX:
		format = d.docx
	case strings.HasPrefix(contentType, "image/"):
		format = d.image
	default:
		log.Debugf("rejecting upload %q of type %q", upload.Filename, contentType)
		return "", &models.UnsupportedFormatError{ContentType: contentType}
	}

	log.Debugf("extracting %q with the %s extractor", upload.Filename, format.Name())
	text, err := format.Extract(ctx, upload.Data)
	if err != nil {
		return "", models.NewExtractionError(format.Name(), err)
	}
	return text, nil
}

// DetectContentType returns the bare media type of the upload. The declared type wins; the
// bytes are sniffed only when the client sent none or a generic binary type.
func DetectContentType(upload *models.Upload) string {
	declared := normalizeMediaType(upload.ContentType)
	if declared != "" && declared != mimeTypeBin {
		return declared
	}
	if len(upload.Data) == 0 {
		return declared
	}
	return normalizeMediaType(mimetype.Detect(upload.Data).String())
}

func normalizeMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
