package apihandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/processor"
	"github.com/getzep/nerlog/pkg/server/handlertools"
	"github.com/getzep/nerlog/pkg/validation"
)

// ProcessTextHandler godoc
//
//	@Summary		Extracts entities from text and appends the result to the session history
//	@Tags			process
//	@Accept			json
//	@Produce		json
//	@Param			sessionId	path		string						true	"Session ID"
//	@Param			request		body		models.ProcessTextRequest	true	"Text to process"
//	@Success		201			{object}	models.Interaction
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Failure		500			{object}	APIError	"Internal Server Error"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/text [post]
func ProcessTextHandler(appState *models.AppState, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionId")

		var req models.ProcessTextRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			handlertools.RenderError(w, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			handlertools.RenderError(w, &models.EmptyInputError{})
			return
		}

		store := appState.Sessions.GetOrCreate(sessionID)
		interaction, err := proc.ProcessText(r.Context(), store, req.Text)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		if err := handlertools.EncodeJSONWithStatus(w, http.StatusCreated, interaction); err != nil {
			log.Errorf("failed to encode interaction: %s", err)
		}
	}
}

// ExtractDocumentHandler godoc
//
//	@Summary		Returns the text of an uploaded PDF, Word document or image
//	@Description	Nothing is recorded. Process the document to add it to the history.
//	@Tags			process
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			sessionId	path		string	true	"Session ID"
//	@Param			file		formData	file	true	"Document"
//	@Success		200			{object}	models.ExtractResponse
//	@Failure		413			{object}	APIError	"Request Entity Too Large"
//	@Failure		415			{object}	APIError	"Unsupported Media Type"
//	@Failure		422			{object}	APIError	"Unprocessable Entity"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/extract [post]
func ExtractDocumentHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := handlertools.UploadFromRequest(w, r, proc.MaxUploadSize())
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		resp, err := proc.ExtractDocument(r.Context(), upload)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		if err := handlertools.EncodeJSON(w, resp); err != nil {
			handlertools.RenderError(w, err)
			return
		}
	}
}

// ProcessDocumentHandler godoc
//
//	@Summary		Extracts entities from an uploaded document and appends the result to the session history
//	@Tags			process
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			sessionId	path		string	true	"Session ID"
//	@Param			file		formData	file	true	"Document"
//	@Success		201			{object}	models.Interaction
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Failure		413			{object}	APIError	"Request Entity Too Large"
//	@Failure		415			{object}	APIError	"Unsupported Media Type"
//	@Failure		422			{object}	APIError	"Unprocessable Entity"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/document [post]
func ProcessDocumentHandler(appState *models.AppState, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionId")

		upload, err := handlertools.UploadFromRequest(w, r, proc.MaxUploadSize())
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		store := appState.Sessions.GetOrCreate(sessionID)
		interaction, err := proc.ProcessDocument(r.Context(), store, upload)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		if err := handlertools.EncodeJSONWithStatus(w, http.StatusCreated, interaction); err != nil {
			log.Errorf("failed to encode interaction: %s", err)
		}
	}
}
