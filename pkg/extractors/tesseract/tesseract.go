// Package tesseract provides the OCR engine used for image uploads. It links against
// libtesseract through gosseract, so it lives apart from the pure-Go extractors.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/getzep/nerlog/pkg/extractors"
)

var _ extractors.OCREngine = &Engine{}

// Engine runs Tesseract on a fresh client per image.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed OCR engine. Languages are Tesseract codes such as
// "eng" or "deu"; none uses the Tesseract default.
func NewEngine(languages ...string) *Engine {
	return &Engine{languages: languages, clientFactory: gosseract.NewClient}
}

// Recognize returns the plain text Tesseract finds in the image.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Version reports the linked Tesseract version, for startup logging.
func Version() string {
	c := gosseract.NewClient()
	defer c.Close()
	return c.Version()
}
