package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/pkg/models"
	"github.com/getzep/nerlog/pkg/processor"
	"github.com/getzep/nerlog/pkg/report"
)

type annotateOptions struct {
	file string
	text string
	out  string
}

var errNoInput = errors.New("one of --file or --text is required")

func runAnnotate(ctx context.Context, cfg *config.Config, opts *annotateOptions, w io.Writer) error {
	if opts.file == "" && opts.text == "" {
		return errNoInput
	}
	appState, err := NewAppState(ctx, cfg)
	if err != nil {
		return err
	}
	proc, err := processor.New(appState)
	if err != nil {
		return err
	}
	return annotate(ctx, proc, cfg.Report.Layout, opts, w)
}

// annotate applies the same validation as the server, prints one line per entity and
// optionally writes a single-interaction log. Nothing is kept between runs.
func annotate(
	ctx context.Context,
	proc *processor.Processor,
	layout config.LayoutConfig,
	opts *annotateOptions,
	w io.Writer,
) error {
	text := opts.text
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.file, err)
		}
		text, err = proc.Extract(ctx, &models.Upload{
			Filename: filepath.Base(opts.file),
			Data:     data,
		})
		if err != nil {
			return err
		}
	}

	interaction, err := proc.AnnotateText(ctx, text)
	if err != nil {
		return err
	}
	if opts.file != "" {
		interaction.Source = models.SourceDocument
		interaction.Filename = filepath.Base(opts.file)
	}

	if len(interaction.Entities) == 0 {
		fmt.Fprintln(w, report.NoEntitiesLine)
	}
	for _, e := range interaction.Entities {
		fmt.Fprintln(w, e.String())
	}

	if opts.out == "" {
		return nil
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	defer f.Close()
	if err := report.Render(report.BuildInteraction(layout, interaction, time.Now()), f); err != nil {
		return err
	}
	log.Infof("Wrote interaction log to %s", opts.out)
	return f.Close()
}
