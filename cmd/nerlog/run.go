package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/pkg/auth"
	"github.com/getzep/nerlog/pkg/extractors"
	"github.com/getzep/nerlog/pkg/extractors/tesseract"
	"github.com/getzep/nerlog/pkg/history"
	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/ner"
	"github.com/getzep/nerlog/pkg/observability"
	"github.com/getzep/nerlog/pkg/report"
	"github.com/getzep/nerlog/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// run is the entrypoint for the nerlog server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring nerlog: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting nerlog server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, &cfg.OTel)
	if err != nil {
		log.Fatal(err)
	}

	appState, err := NewAppState(ctx, cfg)
	if err != nil {
		// the server never starts without a working model
		log.Fatal(err)
	}

	srv, err := server.Create(appState)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		log.Infof("Listening on: %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down server: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Errorf("Error shutting down tracing: %v", err)
	}
}

// NewAppState loads the entity model and wires the extractors, session registry and log sink
// from the config. It fails if the model cannot be loaded.
func NewAppState(ctx context.Context, cfg *config.Config) (*models.AppState, error) {
	annotator, err := ner.Load(ctx, &cfg.NER)
	if err != nil {
		return nil, err
	}
	log.Infof("Using %s entity model", annotator.Name())

	ocr := tesseract.NewEngine(cfg.Extract.OCRLanguages...)
	log.Debugf("Using tesseract %s for image uploads", tesseract.Version())

	appState := &models.AppState{
		Annotator: annotator,
		Extractor: extractors.NewDispatcher(cfg.Extract.PDFPages, ocr),
		Sessions:  history.NewSessions(cfg.Session.IdleTimeout),
		LogSink:   report.NewSink(&cfg.Report),
		Config:    cfg,
	}

	log.Infof("Interaction log mode: %s", cfg.Report.Mode)
	return appState, nil
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)
		os.Exit(0)
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg, "nerlog")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}
