package apihandlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/report"
	"github.com/getzep/nerlog/pkg/server/handlertools"
)

const (
	mimeTypePDF  = "application/pdf"
	mimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// GetHistoryHandler godoc
//
//	@Summary		Returns every interaction of a session in the order it was processed
//	@Tags			history
//	@Produce		json
//	@Param			sessionId	path		string	true	"Session ID"
//	@Success		200			{object}	[]models.Interaction
//	@Failure		404			{object}	APIError	"Not Found"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/history [get]
func GetHistoryHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(appState, r)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		if err := handlertools.EncodeJSON(w, store.All()); err != nil {
			handlertools.RenderError(w, err)
			return
		}
	}
}

// GetReportHandler godoc
//
//	@Summary		Returns the session history as a PDF log
//	@Tags			history
//	@Produce		application/pdf
//	@Param			sessionId	path	string	true	"Session ID"
//	@Success		200
//	@Failure		404	{object}	APIError	"Not Found"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/report [get]
func GetReportHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(appState, r)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		doc := report.BuildHistory(appState.Config.Report.Layout, store.All(), time.Now())
		WritePDF(w, doc)
	}
}

// GetInteractionReportHandler godoc
//
//	@Summary		Returns a single interaction as a PDF log
//	@Tags			history
//	@Produce		application/pdf
//	@Param			sessionId	path	string	true	"Session ID"
//	@Param			index		path	integer	true	"1-based history position"
//	@Success		200
//	@Failure		400	{object}	APIError	"Bad Request"
//	@Failure		404	{object}	APIError	"Not Found"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/history/{index}/report [get]
func GetInteractionReportHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(appState, r)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}
		index, err := handlertools.IndexFromURL(r, "index")
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}
		interaction, err := store.Get(index)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}

		doc := report.BuildInteraction(appState.Config.Report.Layout, interaction, time.Now())
		WritePDF(w, doc)
	}
}

// GetWorkbookHandler godoc
//
//	@Summary		Exports the session history as an XLSX workbook
//	@Tags			history
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			sessionId	path	string	true	"Session ID"
//	@Success		200
//	@Failure		404	{object}	APIError	"Not Found"
//	@Security		Bearer
//	@Router			/api/v1/sessions/{sessionId}/history.xlsx [get]
func GetWorkbookHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(appState, r)
		if err != nil {
			handlertools.RenderError(w, err)
			return
		}
		WriteWorkbook(w, store.All())
	}
}

// WritePDF renders doc and sends it as the ner_log.pdf attachment.
func WritePDF(w http.ResponseWriter, doc *report.Document) {
	out, err := report.RenderBytes(doc)
	if err != nil {
		handlertools.RenderError(w, err)
		return
	}
	handlertools.WriteAttachment(w, mimeTypePDF, report.DownloadFilename, out)
}

// WriteWorkbook exports interactions and sends them as an XLSX attachment.
func WriteWorkbook(w http.ResponseWriter, interactions []models.Interaction) {
	out, err := report.Workbook(interactions)
	if err != nil {
		handlertools.RenderError(w, err)
		return
	}
	handlertools.WriteAttachment(w, mimeTypeXLSX, report.WorkbookFilename, out)
}

func sessionStore(appState *models.AppState, r *http.Request) (models.HistoryStore, error) {
	return appState.Sessions.Get(chi.URLParam(r, "sessionId"))
}
