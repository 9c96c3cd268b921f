package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart  = "word/document.xml"
)

var errNoDocumentPart = errors.New("word/document.xml not found")

// DOCXExtractor concatenates the body paragraphs of a Word document in document order, one
// newline per paragraph. Paragraphs nested in tables, headers or text boxes are not part of the
// body and are skipped.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (e *DOCXExtractor) Name() string { return "docx" }

func (e *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", wrapf(err, "open docx")
	}

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", wrapf(err, "open %s", documentPart)
		}
		defer rc.Close()
		return bodyParagraphs(ctx, rc)
	}
	return "", errNoDocumentPart
}

func bodyParagraphs(ctx context.Context, r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    strings.Builder
		para   strings.Builder
		stack  []string
		inPara bool
		inText bool
		// depth of open w:p elements; text boxes nest paragraphs inside paragraphs
		pDepth int
	)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", wrapf(err, "parse %s", documentPart)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == wordNamespace {
				switch t.Name.Local {
				case "p":
					pDepth++
					if len(stack) > 0 && stack[len(stack)-1] == "body" {
						inPara = true
						para.Reset()
					}
				case "t":
					inText = inPara && pDepth == 1
				case "tab":
					if inPara && pDepth == 1 {
						para.WriteByte('\t')
					}
				case "br", "cr":
					if inPara && pDepth == 1 {
						para.WriteByte('\n')
					}
				}
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				pDepth--
				if inPara && len(stack) > 0 && stack[len(stack)-1] == "body" {
					out.WriteString(para.String())
					out.WriteByte('\n')
					inPara = false
				}
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return out.String(), nil
}
