// Package report renders interactions into a paginated PDF log.
//
// Building and drawing are split: BuildInteraction and BuildHistory lay text out into pages of
// positioned lines, and Render draws that layout with fpdf. Positions follow PDF convention, with
// y measured up from the bottom of the page.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

const (
	timestampFormat   = "2006-01-02 15:04:05"
	NoEntitiesLine    = "No entities found."
	EntitiesHeader    = "Entities found:"
	NoHistoryLine     = "No history yet."
	interactionTitle  = "Interaction Log: "
	historyTitle      = "NER History Log: "
	userInputHeader   = "User Input:"
	uploadedDocHeader = "Uploaded Document"
)

type Line struct {
	X    float64
	Y    float64
	Text string
}

type Page struct {
	Lines []Line
}

type Document struct {
	Title  string
	Layout config.LayoutConfig
	Pages  []Page
}

// Lines returns the text of every line in drawing order.
func (d *Document) Lines() []string {
	var out []string
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			out = append(out, l.Text)
		}
	}
	return out
}

// BuildInteraction lays out the log of a single interaction.
func BuildInteraction(layout config.LayoutConfig, ix *models.Interaction, now time.Time) *Document {
	title := interactionTitle + now.Format(timestampFormat)
	b := newBuilder(layout)
	b.block(title)
	b.space(layout.SectionSpacing)
	b.interaction(ix, userInputHeader)
	return b.finish(title)
}

// BuildHistory lays out every interaction of a session in order.
func BuildHistory(layout config.LayoutConfig, ixs []models.Interaction, now time.Time) *Document {
	title := historyTitle + now.Format(timestampFormat)
	b := newBuilder(layout)
	b.block(title)
	b.space(layout.SectionSpacing)
	if len(ixs) == 0 {
		b.block(NoHistoryLine)
	}
	for i := range ixs {
		if i > 0 {
			b.space(layout.EntrySpacing)
		}
		b.interaction(&ixs[i], fmt.Sprintf("Input %d:", i+1))
	}
	return b.finish(title)
}

type builder struct {
	layout config.LayoutConfig
	y      float64
	pages  []Page
}

func newBuilder(layout config.LayoutConfig) *builder {
	return &builder{
		layout: layout,
		y:      layout.TopOffset,
		pages:  []Page{{}},
	}
}

func (b *builder) interaction(ix *models.Interaction, header string) {
	b.block(header)
	if ix.Source == models.SourceDocument {
		name := uploadedDocHeader
		if ix.Filename != "" {
			name += ": " + ix.Filename
		}
		b.block(name)
	}
	b.block(ix.InputText)
	b.space(b.layout.SectionSpacing)

	b.block(EntitiesHeader)
	if len(ix.Entities) == 0 {
		b.block(NoEntitiesLine)
		return
	}
	for _, e := range ix.Entities {
		b.block(e.String())
	}
}

func (b *builder) block(text string) {
	for _, line := range Wrap(text, b.layout.WrapWidth) {
		b.line(line)
	}
}

// line draws one line, breaking the page first when the cursor is below the minimum offset.
func (b *builder) line(text string) {
	if b.y < b.layout.MinOffset {
		b.pages = append(b.pages, Page{})
		b.y = b.layout.TopOffset
	}
	page := &b.pages[len(b.pages)-1]
	page.Lines = append(page.Lines, Line{X: b.layout.LeftMargin, Y: b.y, Text: text})
	b.y -= b.layout.LineHeight
}

func (b *builder) space(d float64) {
	b.y -= d
}

func (b *builder) finish(title string) *Document {
	return &Document{Title: title, Layout: b.layout, Pages: b.pages}
}

// Wrap splits text into lines of at most width characters. Embedded newlines always start a
// new line, words are kept whole where they fit, and longer words are split. Trailing newlines
// are dropped.
func Wrap(text string, width int) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curLen := 0
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if curLen > 0 {
					lines = append(lines, cur.String())
					cur.Reset()
					curLen = 0
				}
				head, tail := splitRunes(w, width)
				lines = append(lines, head)
				w = tail
			}
			wl := utf8.RuneCountInString(w)
			if curLen > 0 && curLen+1+wl > width {
				lines = append(lines, cur.String())
				cur.Reset()
				curLen = 0
			}
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(w)
			curLen += wl
		}
		if curLen > 0 {
			lines = append(lines, cur.String())
		}
	}
	return lines
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
