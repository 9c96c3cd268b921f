// Package processor applies validation, annotation, logging and history in the order that keeps
// every request all-or-nothing.
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/validation"
)

var log = internal.GetLogger()

var tracer = otel.Tracer("github.com/getzep/nerlog/pkg/processor")

type Processor struct {
	annotator models.Annotator
	extractor models.TextExtractor
	sink      models.LogSink
	wordLimit int
	maxUpload int64
	now       func() time.Time
}

// New builds a Processor from the app state. Server.MaxUploadSize must be a humanized byte size.
func New(appState *models.AppState) (*Processor, error) {
	maxUpload, err := humanize.ParseBytes(appState.Config.Server.MaxUploadSize)
	if err != nil {
		return nil, fmt.Errorf("invalid max_upload_size %q: %w", appState.Config.Server.MaxUploadSize, err)
	}
	return &Processor{
		annotator: appState.Annotator,
		extractor: appState.Extractor,
		sink:      appState.LogSink,
		wordLimit: appState.Config.Limits.WordLimit,
		maxUpload: int64(maxUpload),
		now:       time.Now,
	}, nil
}

func (p *Processor) WordLimit() int { return p.wordLimit }

func (p *Processor) MaxUploadSize() int64 { return p.maxUpload }

// ProcessText annotates text and appends the result to store.
func (p *Processor) ProcessText(
	ctx context.Context,
	store models.HistoryStore,
	text string,
) (ix *models.Interaction, err error) {
	ctx, span := tracer.Start(ctx, "processor.ProcessText")
	defer func() { endSpan(span, err) }()

	return p.process(ctx, store, &models.Interaction{
		Source:    models.SourceText,
		InputText: text,
	})
}

// ExtractDocument returns the text of an upload and its word count. Nothing is recorded.
func (p *Processor) ExtractDocument(
	ctx context.Context,
	upload *models.Upload,
) (resp *models.ExtractResponse, err error) {
	ctx, span := tracer.Start(ctx, "processor.ExtractDocument",
		trace.WithAttributes(
			attribute.String("nerlog.upload.filename", upload.Filename),
			attribute.Int("nerlog.upload.size", len(upload.Data)),
		),
	)
	defer func() { endSpan(span, err) }()

	text, err := p.extract(ctx, upload)
	if err != nil {
		return nil, err
	}
	return &models.ExtractResponse{
		Filename:  upload.Filename,
		Text:      text,
		WordCount: validation.CountWords(text),
		WordLimit: p.wordLimit,
	}, nil
}

// ProcessDocument extracts an upload and processes its text like ProcessText.
func (p *Processor) ProcessDocument(
	ctx context.Context,
	store models.HistoryStore,
	upload *models.Upload,
) (ix *models.Interaction, err error) {
	ctx, span := tracer.Start(ctx, "processor.ProcessDocument",
		trace.WithAttributes(attribute.String("nerlog.upload.filename", upload.Filename)),
	)
	defer func() { endSpan(span, err) }()

	text, err := p.extract(ctx, upload)
	if err != nil {
		return nil, err
	}
	return p.process(ctx, store, &models.Interaction{
		Source:    models.SourceDocument,
		Filename:  upload.Filename,
		InputText: text,
	})
}

// AnnotateText validates and annotates text without touching any history or log.
func (p *Processor) AnnotateText(ctx context.Context, text string) (*models.Interaction, error) {
	count, err := validation.ValidateText(text, p.wordLimit)
	if err != nil {
		return nil, err
	}
	entities, err := p.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate text: %w", err)
	}
	return &models.Interaction{
		UUID:      uuid.New(),
		Source:    models.SourceText,
		InputText: text,
		Entities:  entities,
		WordCount: count,
		CreatedAt: p.now(),
	}, nil
}

// Extract is ExtractDocument without the response wrapper.
func (p *Processor) Extract(ctx context.Context, upload *models.Upload) (string, error) {
	return p.extract(ctx, upload)
}

// process runs validate, annotate, record, append. Any failure returns before the history is
// touched.
func (p *Processor) process(
	ctx context.Context,
	store models.HistoryStore,
	ix *models.Interaction,
) (*models.Interaction, error) {
	count, err := validation.ValidateText(ix.InputText, p.wordLimit)
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("nerlog.word_count", count))

	entities, err := p.annotator.Annotate(ctx, ix.InputText)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate text: %w", err)
	}

	ix.UUID = uuid.New()
	ix.Entities = entities
	ix.WordCount = count
	ix.CreatedAt = p.now()

	if err := p.sink.Record(ctx, ix); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}
	store.Append(ix)

	log.Debugf(
		"processed %s input %s: %d words, %d entities",
		ix.Source, ix.UUID, count, len(entities),
	)
	return ix, nil
}

func (p *Processor) extract(ctx context.Context, upload *models.Upload) (string, error) {
	size := int64(len(upload.Data))
	if size > p.maxUpload {
		return "", &models.UploadTooLargeError{Size: size, Limit: p.maxUpload}
	}
	return p.extractor.Extract(ctx, upload)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
