package models

import "context"

// Annotator wraps a named-entity-recognition model. Entities are returned in the order the model
// finds them in the text.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Entity, error)
	Name() string
}

// Upload is a single uploaded artifact.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TextExtractor turns an upload into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, upload *Upload) (string, error)
}

// LogSink receives every accepted interaction before it is appended to history. A sink error
// aborts the request.
type LogSink interface {
	Record(ctx context.Context, interaction *Interaction) error
}
