//go:build tesseract

package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires libtesseract and the eng traineddata: go test -tags tesseract ./...
func TestEngine_BlankImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := 0; x < 64; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	text, err := NewEngine("eng").Recognize(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version())
}
