package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Render draws the document as a PDF into w.
func Render(doc *Document, w io.Writer) error {
	l := doc.Layout
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("nerlog", true)
	pdf.SetFont(fontFamily, "", l.FontSize)

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			pdf.Text(line.X, l.PageHeight-line.Y, tr(line.Text))
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render log: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write log: %w", err)
	}
	return nil
}

// RenderBytes renders the document into memory.
func RenderBytes(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
