package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/nerlog/pkg/models"
)

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) Recognize(_ context.Context, _ []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Alice met Bob</w:t></w:r><w:r><w:t xml:space="preserve"> in Paris.</w:t></w:r></w:p>
    <w:p></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p><w:r><w:t>Name</w:t><w:tab/><w:t>Value</w:t></w:r></w:p>
    <w:sectPr/>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, p := range pages {
		doc.AddPage()
		doc.Text(72, 72, p)
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestDOCXExtractor(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   documentXML,
	})

	text, err := NewDOCXExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Alice met Bob in Paris.\n\nName\tValue\n", text)
}

func TestDOCXExtractor_SkipsTextBoxes(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>Body</w:t></w:r>
      <w:r><w:pict><w:txbxContent><w:p><w:r><w:t>BOXED</w:t><w:tab/></w:r></w:p></w:txbxContent></w:pict></w:r>
      <w:r><w:t xml:space="preserve"> text</w:t></w:r>
    </w:p>
    <w:p><w:r><w:t>Next</w:t></w:r></w:p>
  </w:body>
</w:document>`,
	})

	text, err := NewDOCXExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Body text\nNext\n", text)
}

func TestDOCXExtractor_MissingDocumentPart(t *testing.T) {
	data := buildDOCX(t, map[string]string{"word/styles.xml": `<styles/>`})
	_, err := NewDOCXExtractor().Extract(context.Background(), data)
	assert.ErrorIs(t, err, errNoDocumentPart)
}

func TestPDFExtractor_PagesToScan(t *testing.T) {
	data := buildPDF(t, "FirstPageMarker", "SecondPageMarker")

	t.Run("first page only", func(t *testing.T) {
		text, err := NewPDFExtractor(1).Extract(context.Background(), data)
		require.NoError(t, err)
		assert.Contains(t, text, "FirstPageMarker")
		assert.NotContains(t, text, "SecondPageMarker")
	})

	t.Run("all pages", func(t *testing.T) {
		text, err := NewPDFExtractor(-1).Extract(context.Background(), data)
		require.NoError(t, err)
		assert.Contains(t, text, "FirstPageMarker")
		assert.Contains(t, text, "SecondPageMarker")
	})

	t.Run("more pages than the document has", func(t *testing.T) {
		text, err := NewPDFExtractor(10).Extract(context.Background(), data)
		require.NoError(t, err)
		assert.Contains(t, text, "SecondPageMarker")
	})
}

func TestPDFExtractor_Empty(t *testing.T) {
	_, err := NewPDFExtractor(1).Extract(context.Background(), nil)
	assert.ErrorIs(t, err, errEmptyPDF)
}

func TestDispatcher_Extract(t *testing.T) {
	ctx := context.Background()
	ocr := &fakeOCR{text: "Text from an image"}
	d := NewDispatcher(1, ocr)

	t.Run("docx", func(t *testing.T) {
		data := buildDOCX(t, map[string]string{"word/document.xml": documentXML})
		text, err := d.Extract(ctx, &models.Upload{Filename: "a.docx", ContentType: MimeTypeDOCX, Data: data})
		require.NoError(t, err)
		assert.Contains(t, text, "Alice met Bob")
	})

	t.Run("image", func(t *testing.T) {
		text, err := d.Extract(ctx, &models.Upload{Filename: "a.png", ContentType: "image/png", Data: []byte{1}})
		require.NoError(t, err)
		assert.Equal(t, "Text from an image", text)
		assert.Equal(t, 1, ocr.calls)
	})

	t.Run("text/plain is unsupported", func(t *testing.T) {
		_, err := d.Extract(ctx, &models.Upload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hello")})
		require.Error(t, err)
		var ufe *models.UnsupportedFormatError
		require.True(t, errors.As(err, &ufe))
		assert.Equal(t, "text/plain", ufe.ContentType)
		assert.Equal(t, models.UnsupportedFormatMessage, err.Error())
	})

	t.Run("malformed pdf", func(t *testing.T) {
		_, err := d.Extract(ctx, &models.Upload{Filename: "bad.pdf", ContentType: MimeTypePDF, Data: []byte("not a pdf")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrExtractionFailed))
		var ee *models.ExtractionError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, "pdf", ee.Format)
	})

	t.Run("ocr failure", func(t *testing.T) {
		boom := errors.New("tesseract crashed")
		d := NewDispatcher(1, &fakeOCR{err: boom})
		_, err := d.Extract(ctx, &models.Upload{ContentType: "image/jpeg", Data: []byte{1}})
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, models.ErrExtractionFailed)
	})
}

func TestDetectContentType(t *testing.T) {
	pdfBytes := buildPDF(t, "x")

	testCases := []struct {
		name   string
		upload models.Upload
		want   string
	}{
		{"declared wins", models.Upload{ContentType: "text/plain; charset=utf-8", Data: pdfBytes}, "text/plain"},
		{"sniffed when missing", models.Upload{Data: pdfBytes}, MimeTypePDF},
		{"sniffed when octet-stream", models.Upload{ContentType: "application/octet-stream", Data: pdfBytes}, MimeTypePDF},
		{"case folded", models.Upload{ContentType: "Image/PNG"}, "image/png"},
		{"nothing to go on", models.Upload{}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectContentType(&tc.upload))
		})
	}
}
