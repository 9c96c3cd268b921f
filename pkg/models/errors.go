package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrEmptyInput        = errors.New("empty input")
	ErrWordLimitExceeded = errors.New("word limit exceeded")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrModelLoad         = errors.New("model load failed")
	ErrUploadTooLarge    = errors.New("upload too large")
)

// The messages below are shown to users verbatim.
const (
	EmptyInputMessage        = "Please enter some text to process."
	UnsupportedFormatMessage = "Unsupported file format. Please upload a PDF, Word document, or image."
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}

func NewBadRequestError(format string, args ...any) error {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return EmptyInputMessage
}

func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}

type WordLimitExceededError struct {
	Count int
	Limit int
}

func (e *WordLimitExceededError) Error() string {
	return fmt.Sprintf(
		"Word limit exceeded! Please shorten your text to %d words or less.",
		e.Limit,
	)
}

func (e *WordLimitExceededError) Unwrap() error {
	return ErrWordLimitExceeded
}

type UnsupportedFormatError struct {
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return UnsupportedFormatMessage
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// ExtractionError wraps a failure of the underlying PDF, Word or OCR call.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtractionFailed, e.Err}
}

func NewExtractionError(format string, err error) error {
	return &ExtractionError{Format: format, Err: err}
}

// ModelLoadError is returned when an annotator backend cannot be made ready.
type ModelLoadError struct {
	Backend string
	Err     error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load %s entity model: %v", e.Backend, e.Err)
}

func (e *ModelLoadError) Unwrap() []error {
	return []error{ErrModelLoad, e.Err}
}

type UploadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *UploadTooLargeError) Error() string {
	return fmt.Sprintf("upload of %d bytes exceeds the %d byte limit", e.Size, e.Limit)
}

func (e *UploadTooLargeError) Unwrap() error {
	return ErrUploadTooLarge
}
