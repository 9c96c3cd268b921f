package models

import (
	"time"

	"github.com/google/uuid"
)

type InteractionSource string

const (
	SourceText     InteractionSource = "text"
	SourceDocument InteractionSource = "document"
)

// Interaction is one accepted (input text, entities) pair. It is created once per successful
// process action and never mutated afterwards.
type Interaction struct {
	UUID      uuid.UUID         `json:"uuid"`
	Source    InteractionSource `json:"source"`
	Filename  string            `json:"filename,omitempty"`
	InputText string            `json:"input_text"`
	Entities  []Entity          `json:"entities"`
	WordCount int               `json:"word_count"`
	CreatedAt time.Time         `json:"created_at"`
}

// ProcessTextRequest is the body of the text processing endpoint.
type ProcessTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractResponse carries the text pulled out of an upload before it is processed.
type ExtractResponse struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	WordLimit int    `json:"word_limit"`
}
