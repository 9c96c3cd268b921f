package ner

import (
	"context"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/pkg/models"
)

const (
	loadBackoff    = 500 * time.Millisecond
	loadMaxBackoff = 10 * time.Second
)

type readier interface {
	models.Annotator
	Ready(ctx context.Context) error
}

// Load builds the configured annotator once and waits for it to become ready, retrying the
// readiness probe up to cfg.LoadRetries times. Any failure is returned as *models.ModelLoadError;
// the caller decides whether to abort.
func Load(ctx context.Context, cfg *config.NERConfig) (models.Annotator, error) {
	return load(ctx, cfg, loadBackoff)
}

func load(ctx context.Context, cfg *config.NERConfig, backoff time.Duration) (models.Annotator, error) {
	a, err := newAnnotator(cfg)
	if err != nil {
		return nil, &models.ModelLoadError{Backend: cfg.Backend, Err: err}
	}

	retryPolicy := retrypolicy.Builder[any]().
		WithBackoff(backoff, loadMaxBackoff).
		WithMaxRetries(cfg.LoadRetries).
		Build()

	attempt := 0
	err = failsafe.NewExecutor[any](retryPolicy).
		WithContext(ctx).
		Run(func() error {
			attempt++
			if err := a.Ready(ctx); err != nil {
				log.Warnf("%s annotator not ready (attempt %d): %v", a.Name(), attempt, err)
				return err
			}
			return nil
		})
	if err != nil {
		return nil, &models.ModelLoadError{Backend: cfg.Backend, Err: err}
	}

	log.Infof("Using %s entity annotator", a.Name())
	return a, nil
}

func newAnnotator(cfg *config.NERConfig) (readier, error) {
	switch cfg.Backend {
	case config.NERBackendNLPServer, "":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ner.server_url must be set")
		}
		client := NewRetryableHTTPClient(cfg.Retries, cfg.Timeout)
		return NewNLPServerAnnotator(cfg.ServerURL, cfg.Language, client), nil
	case config.NERBackendProse:
		return NewProseAnnotator(cfg.Prose.ModelPath)
	default:
		return nil, fmt.Errorf("ner.backend (%s) is not supported", cfg.Backend)
	}
}
