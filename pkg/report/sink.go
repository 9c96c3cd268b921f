package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/pkg/models"
)

// DownloadFilename is the attachment name of on-demand logs.
const DownloadFilename = "ner_log.pdf"

// NewSink returns the log sink for the configured report mode. Download and none modes keep
// nothing on disk, so they share the no-op sink.
func NewSink(cfg *config.ReportConfig) models.LogSink {
	if cfg.Mode == config.ReportModeFile {
		return NewFileSink(cfg.FilePath, cfg.Layout)
	}
	return NopSink{}
}

type NopSink struct{}

func (NopSink) Record(context.Context, *models.Interaction) error { return nil }

// FileSink keeps every interaction accepted during the process lifetime and rewrites a single
// history log on disk after each one.
type FileSink struct {
	path    string
	layout  config.LayoutConfig
	mu      sync.Mutex
	entries []models.Interaction
	now     func() time.Time
}

func NewFileSink(path string, layout config.LayoutConfig) *FileSink {
	return &FileSink{path: path, layout: layout, now: time.Now}
}

// Record renders the log including ix and replaces the file. The entry is only kept once the
// file has been written.
func (s *FileSink) Record(ctx context.Context, ix *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(slices.Clip(s.entries), *ix)
	out, err := RenderBytes(BuildHistory(s.layout, entries, s.now()))
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeAtomic(s.path, out); err != nil {
		return fmt.Errorf("failed to write interaction log %s: %w", s.path, err)
	}
	s.entries = entries
	log.Debugf("interaction log %s updated with %d entries", s.path, len(entries))
	return nil
}

func (s *FileSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// writeAtomic replaces dest via a temp file in the same directory, so readers never see a
// partial log.
func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0o644)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
