package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

const (
	UploadField = "file"
	// multipart headers and boundaries on top of the file itself
	multipartOverhead = 1 << 20
	maxMemory         = 32 << 20
)

// APIError represents an error response.
type APIError struct {
	Message string `json:"message"`
}

// IndexFromURL parses a 1-based history position from a path parameter and returns the
// matching 0-based index.
func IndexFromURL(r *http.Request, param string) (int, error) {
	p := chi.URLParam(r, param)
	n, err := strconv.Atoi(p)
	if err != nil || n < 1 {
		return 0, models.NewBadRequestError("invalid history index %q", p)
	}
	return n - 1, nil
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// EncodeJSONWithStatus writes data as JSON with the given status code.
func EncodeJSONWithStatus(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		return models.NewBadRequestError("invalid request body: %s", err)
	}
	return nil
}

// StatusFromError maps domain errors to HTTP status codes.
func StatusFromError(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, models.ErrEmptyInput),
		errors.Is(err, models.ErrWordLimitExceeded),
		errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, models.ErrUploadTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes err as a JSON APIError with the status StatusFromError picks.
func RenderError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error(err)
	case status != http.StatusNotFound:
		// Don't log not found errors
		log.Debug(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(APIError{Message: err.Error()}); encErr != nil {
		log.Errorf("failed to encode error response: %v", encErr)
	}
}

// UploadFromRequest reads the multipart file field of r. Bodies larger than maxSize fail with
// UploadTooLargeError.
func UploadFromRequest(w http.ResponseWriter, r *http.Request, maxSize int64) (*models.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, &models.UploadTooLargeError{Size: maxBytes.Limit, Limit: maxSize}
		}
		return nil, models.NewBadRequestError("invalid upload: %s", err)
	}

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		return nil, models.NewBadRequestError("missing %q file field", UploadField)
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, &models.UploadTooLargeError{Size: header.Size, Limit: maxSize}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return &models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// WriteAttachment sends data as a file download.
func WriteAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Errorf("failed to write %s: %v", filename, err)
	}
}
