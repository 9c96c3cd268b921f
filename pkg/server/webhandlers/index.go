package webhandlers

import (
	"net/http"
	"time"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/processor"
	"github.com/getzep/nerlog/pkg/report"
	"github.com/getzep/nerlog/pkg/server/apihandlers"
	"github.com/getzep/nerlog/pkg/server/handlertools"
	"github.com/getzep/nerlog/pkg/validation"
	"github.com/getzep/nerlog/pkg/web"
)

const NoPendingUploadMessage = "Please upload a document first."

// Handlers serves the HTML page. Each browser gets its own history through the session cookie.
type Handlers struct {
	appState  *models.AppState
	processor *processor.Processor
	pending   *PendingUploads
}

func NewHandlers(appState *models.AppState, proc *processor.Processor) *Handlers {
	return &Handlers{
		appState:  appState,
		processor: proc,
		pending:   NewPendingUploads(appState.Config.Session.IdleTimeout),
	}
}

func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	h.render(w, r, http.StatusOK, h.pageData(sessionID))
}

func (h *Handlers) UploadHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	data := h.pageData(sessionID)

	upload, err := handlertools.UploadFromRequest(w, r, h.processor.MaxUploadSize())
	if err != nil {
		h.renderError(w, r, data, err)
		return
	}
	extracted, err := h.processor.ExtractDocument(r.Context(), upload)
	if err != nil {
		h.pending.Delete(sessionID)
		h.renderError(w, r, data, err)
		return
	}

	h.pending.Put(sessionID, &PendingUpload{Upload: upload, Extracted: extracted})
	data.Extracted = extracted
	h.render(w, r, http.StatusOK, data)
}

func (h *Handlers) ProcessDocumentHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	data := h.pageData(sessionID)

	pending, ok := h.pending.Get(sessionID)
	if !ok {
		h.renderError(w, r, data, models.NewBadRequestError(NoPendingUploadMessage))
		return
	}
	data.Extracted = pending.Extracted

	store := h.appState.Sessions.GetOrCreate(sessionID)
	interaction, err := h.processor.ProcessDocument(r.Context(), store, pending.Upload)
	if err != nil {
		h.renderError(w, r, data, err)
		return
	}
	h.pending.Delete(sessionID)

	data = h.pageData(sessionID)
	data.Result = interaction
	h.render(w, r, http.StatusOK, data)
}

func (h *Handlers) ProcessTextHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	data := h.pageData(sessionID)

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, data, models.NewBadRequestError("invalid form: %s", err))
		return
	}
	text := r.PostFormValue("text")
	data.Text = text
	data.WordCount = validation.CountWords(text)

	store := h.appState.Sessions.GetOrCreate(sessionID)
	interaction, err := h.processor.ProcessText(r.Context(), store, text)
	if err != nil {
		h.renderError(w, r, data, err)
		return
	}

	data.History = store.All()
	data.Result = interaction
	h.render(w, r, http.StatusOK, data)
}

func (h *Handlers) ReportHandler(w http.ResponseWriter, r *http.Request) {
	store := h.appState.Sessions.GetOrCreate(h.sessionID(w, r))
	apihandlers.WritePDF(w, report.BuildHistory(h.layout(), store.All(), time.Now()))
}

func (h *Handlers) InteractionReportHandler(w http.ResponseWriter, r *http.Request) {
	store := h.appState.Sessions.GetOrCreate(h.sessionID(w, r))
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
	apihandlers.WritePDF(w, report.BuildInteraction(h.layout(), interaction, time.Now()))
}

func (h *Handlers) WorkbookHandler(w http.ResponseWriter, r *http.Request) {
	store := h.appState.Sessions.GetOrCreate(h.sessionID(w, r))
	apihandlers.WriteWorkbook(w, store.All())
}

func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	return SessionID(w, r, h.appState.Config.Session.IdleTimeout)
}

func (h *Handlers) layout() config.LayoutConfig {
	return h.appState.Config.Report.Layout
}

func (h *Handlers) pageData(sessionID string) *web.IndexData {
	data := &web.IndexData{
		SessionID:        sessionID,
		WordLimit:        h.processor.WordLimit(),
		MaxUploadSize:    h.processor.MaxUploadSize(),
		DownloadsEnabled: h.appState.Config.Report.Mode == config.ReportModeDownload,
	}
	if store, err := h.appState.Sessions.Get(sessionID); err == nil {
		data.History = store.All()
	}
	return data
}

func (h *Handlers) renderError(
	w http.ResponseWriter,
	r *http.Request,
	data *web.IndexData,
	err error,
) {
	status := handlertools.StatusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Error(err)
	}
	data.Error = err.Error()
	h.render(w, r, status, data)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, data *web.IndexData) {
	web.NewPage(web.AppTitle, r.URL.Path, []string{web.IndexTemplate}, data).Render(w, r, status)
}
