package extractors

import (
	"context"
	"errors"
)

var errNoOCREngine = errors.New("no OCR engine configured")

// OCREngine recognizes text in an encoded image (PNG, JPEG, ...).
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ImageExtractor returns whatever text the OCR engine reports. There is no confidence filtering.
type ImageExtractor struct {
	engine OCREngine
}

func NewImageExtractor(engine OCREngine) *ImageExtractor {
	return &ImageExtractor{engine: engine}
}

func (e *ImageExtractor) Name() string { return "image" }

func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if e.engine == nil {
		return "", errNoOCREngine
	}
	return e.engine.Recognize(ctx, data)
}
