package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1000, cfg.Limits.WordLimit)
	assert.Equal(t, 1, cfg.Extract.PDFPages)
	assert.Equal(t, ReportModeDownload, cfg.Report.Mode)
	assert.Equal(t, DefaultLayout(), cfg.Report.Layout)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTimeout)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
limits:
  word_limit: 50
extract:
  pdf_pages: -1
ner:
  backend: prose
  timeout: 3s
report:
  mode: file
  file_path: /tmp/log.pdf
  layout:
    wrap_width: 40
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Limits.WordLimit)
	assert.Equal(t, AllPages, cfg.Extract.PDFPages)
	assert.Equal(t, NERBackendProse, cfg.NER.Backend)
	assert.Equal(t, 3*time.Second, cfg.NER.Timeout)
	assert.Equal(t, ReportModeFile, cfg.Report.Mode)
	assert.Equal(t, "/tmp/log.pdf", cfg.Report.FilePath)
	assert.Equal(t, 40, cfg.Report.Layout.WrapWidth)
	// unset layout fields keep their defaults
	assert.Equal(t, float64(750), cfg.Report.Layout.TopOffset)
}

func TestLoadConfig_ExplicitZeros(t *testing.T) {
	path := writeConfig(t, `
session:
  idle_timeout: 0s
report:
  layout:
    left_margin: 0
    min_offset: 0
    section_spacing: 0
    entry_spacing: 0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Zero(t, cfg.Session.IdleTimeout)
	assert.Zero(t, cfg.Report.Layout.LeftMargin)
	assert.Zero(t, cfg.Report.Layout.MinOffset)
	assert.Zero(t, cfg.Report.Layout.SectionSpacing)
	assert.Zero(t, cfg.Report.Layout.EntrySpacing)
	// zero is not special for the other fields
	assert.Equal(t, float64(750), cfg.Report.Layout.TopOffset)
	assert.Equal(t, 1000, cfg.Limits.WordLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv("NERLOG_LIMITS_WORD_LIMIT", "25")
	t.Setenv("NERLOG_AUTH_SECRET", "s3cret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Limits.WordLimit)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "report:\n  mode: both\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	cfg := DefaultConfig()
	out, err := Dump(&cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "word_limit: 1000")
	assert.Contains(t, out, "mode: download")
}
