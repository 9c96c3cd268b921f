package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/pkg/extractors"
	"github.com/getzep/nerlog/pkg/history"
	"github.com/getzep/nerlog/pkg/models"
)

type fakeAnnotator struct {
	entities []models.Entity
	err      error
	calls    int
}

func (f *fakeAnnotator) Name() string { return "fake" }

func (f *fakeAnnotator) Annotate(context.Context, string) ([]models.Entity, error) {
	f.calls++
	return f.entities, f.err
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(context.Context, *models.Upload) (string, error) {
	return f.text, f.err
}

type fakeSink struct {
	recorded []*models.Interaction
	err      error
}

func (f *fakeSink) Record(_ context.Context, ix *models.Interaction) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, ix)
	return nil
}

type fixture struct {
	processor *Processor
	annotator *fakeAnnotator
	extractor *fakeExtractor
	sink      *fakeSink
	store     *history.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	f := &fixture{
		annotator: &fakeAnnotator{entities: []models.Entity{
			{Text: "Paris", Label: "GPE"},
			{Text: "2024", Label: "DATE"},
		}},
		extractor: &fakeExtractor{text: "Extracted text from Paris"},
		sink:      &fakeSink{},
		store:     history.NewStore(),
	}
	p, err := New(&models.AppState{
		Annotator: f.annotator,
		Extractor: f.extractor,
		LogSink:   f.sink,
		Config:    &cfg,
	})
	require.NoError(t, err)
	f.processor = p
	return f
}

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = gofakeit.LoremIpsumWord()
	}
	return strings.Join(w, " ")
}

func TestNew_InvalidUploadSize(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxUploadSize = "lots"
	_, err := New(&models.AppState{Config: &cfg})
	assert.Error(t, err)
}

func TestProcessText(t *testing.T) {
	f := newFixture(t)

	ix, err := f.processor.ProcessText(context.Background(), f.store, "I visited Paris in 2024.")
	require.NoError(t, err)

	assert.Equal(t, models.SourceText, ix.Source)
	assert.Equal(t, 5, ix.WordCount)
	assert.Equal(t, f.annotator.entities, ix.Entities)
	assert.False(t, ix.CreatedAt.IsZero())
	assert.Equal(t, 1, f.store.Len())
	assert.Len(t, f.sink.recorded, 1)

	stored, err := f.store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, ix.UUID, stored.UUID)
}

func TestProcessText_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"empty", "", models.ErrEmptyInput},
		{"whitespace", " \n\t ", models.ErrEmptyInput},
		{"over limit", words(1001), models.ErrWordLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.processor.ProcessText(context.Background(), f.store, tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.store.Len())
			assert.Empty(t, f.sink.recorded)
			assert.Equal(t, 0, f.annotator.calls)
		})
	}
}

func TestProcessText_AtLimit(t *testing.T) {
	f := newFixture(t)
	ix, err := f.processor.ProcessText(context.Background(), f.store, words(1000))
	require.NoError(t, err)
	assert.Equal(t, 1000, ix.WordCount)
	assert.Equal(t, 1, f.store.Len())
}

func TestProcessText_AnnotatorFailure(t *testing.T) {
	f := newFixture(t)
	f.annotator.err = errors.New("model unavailable")

	_, err := f.processor.ProcessText(context.Background(), f.store, "Alice met Bob.")
	assert.Error(t, err)
	assert.Equal(t, 0, f.store.Len())
	assert.Empty(t, f.sink.recorded)
}

func TestProcessText_SinkFailure(t *testing.T) {
	f := newFixture(t)
	f.sink.err = errors.New("disk full")

	_, err := f.processor.ProcessText(context.Background(), f.store, "Alice met Bob.")
	assert.Error(t, err)
	assert.Equal(t, 0, f.store.Len())
}

func TestExtractDocument(t *testing.T) {
	f := newFixture(t)

	resp, err := f.processor.ExtractDocument(context.Background(), &models.Upload{
		Filename: "trip.pdf",
		Data:     []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "trip.pdf", resp.Filename)
	assert.Equal(t, f.extractor.text, resp.Text)
	assert.Equal(t, 4, resp.WordCount)
	assert.Equal(t, 1000, resp.WordLimit)
	assert.Equal(t, 0, f.store.Len())
}

func TestExtractDocument_TooLarge(t *testing.T) {
	f := newFixture(t)
	f.processor.maxUpload = 4

	_, err := f.processor.ExtractDocument(context.Background(), &models.Upload{
		Filename: "big.pdf",
		Data:     []byte("0123456789"),
	})
	var tooLarge *models.UploadTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(10), tooLarge.Size)
	assert.Equal(t, int64(4), tooLarge.Limit)
}

func TestProcessDocument(t *testing.T) {
	f := newFixture(t)

	ix, err := f.processor.ProcessDocument(context.Background(), f.store, &models.Upload{
		Filename: "trip.docx",
		Data:     []byte("PK"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SourceDocument, ix.Source)
	assert.Equal(t, "trip.docx", ix.Filename)
	assert.Equal(t, f.extractor.text, ix.InputText)
	assert.Equal(t, 1, f.store.Len())
}

func TestProcessDocument_Unsupported(t *testing.T) {
	f := newFixture(t)
	f.processor.extractor = extractors.NewDispatcher(1, nil)

	_, err := f.processor.ProcessDocument(context.Background(), f.store, &models.Upload{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("plain text"),
	})
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0, f.annotator.calls)
}

func TestProcessDocument_ExtractedTextOverLimit(t *testing.T) {
	f := newFixture(t)
	f.extractor.text = words(1001)

	_, err := f.processor.ProcessDocument(context.Background(), f.store, &models.Upload{
		Filename: "long.pdf",
		Data:     []byte("%PDF"),
	})
	assert.ErrorIs(t, err, models.ErrWordLimitExceeded)
	assert.Equal(t, 0, f.store.Len())
}

func TestAnnotateText(t *testing.T) {
	f := newFixture(t)
	ix, err := f.processor.AnnotateText(context.Background(), "I visited Paris in 2024.")
	require.NoError(t, err)
	assert.Len(t, ix.Entities, 2)
	assert.Empty(t, f.sink.recorded)
}
