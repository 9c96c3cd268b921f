package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/auth"
	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/processor"
	"github.com/getzep/nerlog/pkg/server/apihandlers"
	"github.com/getzep/nerlog/pkg/server/webhandlers"
)

var log = internal.GetLogger()

const ReadHeaderTimeout = 5 * time.Second

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", appState.Config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}, nil
}

func setupRouter(appState *models.AppState) (*chi.Mux, error) {
	proc, err := processor.New(appState)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))
	if appState.Config.OTel.Enabled {
		router.Use(otelchi.Middleware(appState.Config.OTel.ServiceName, otelchi.WithChiRoutes(router)))
	}

	downloads := appState.Config.Report.Mode == config.ReportModeDownload

	if !appState.Config.Server.WebDisabled {
		h := webhandlers.NewHandlers(appState, proc)
		router.Get("/", h.IndexHandler)
		router.Post("/upload", h.UploadHandler)
		router.Post("/process/document", h.ProcessDocumentHandler)
		router.Post("/process/text", h.ProcessTextHandler)
		router.Get("/history.xlsx", h.WorkbookHandler)
		if downloads {
			router.Get("/report.pdf", h.ReportHandler)
			router.Get("/history/{index}/report.pdf", h.InteractionReportHandler)
		}
	}

	var verifier func(http.Handler) http.Handler
	if appState.Config.Auth.Required {
		log.Info("JWT authentication required")
		verifier, err = auth.JWTVerifier(appState.Config)
		if err != nil {
			return nil, err
		}
	}

	router.Route("/api/v1", func(r chi.Router) {
		if verifier != nil {
			r.Use(verifier)
			r.Use(jwtauth.Authenticator)
		}
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Post("/text", apihandlers.ProcessTextHandler(appState, proc))
			r.Post("/extract", apihandlers.ExtractDocumentHandler(proc))
			r.Post("/document", apihandlers.ProcessDocumentHandler(appState, proc))
			r.Get("/history", apihandlers.GetHistoryHandler(appState))
			r.Get("/history.xlsx", apihandlers.GetWorkbookHandler(appState))
			if downloads {
				r.Get("/report", apihandlers.GetReportHandler(appState))
				r.Get("/history/{index}/report", apihandlers.GetInteractionReportHandler(appState))
			}
		})
	})

	return router, nil
}
