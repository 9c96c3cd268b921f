package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Log     LogConfig     `mapstructure:"log"     yaml:"log"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Auth    AuthConfig    `mapstructure:"auth"    yaml:"auth"`
	NER     NERConfig     `mapstructure:"ner"     yaml:"ner"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Limits  LimitsConfig  `mapstructure:"limits"  yaml:"limits"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
	OTel    OTelConfig    `mapstructure:"otel"    yaml:"otel"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
	// MaxUploadSize is a humanized byte size, e.g. "10MB"
	MaxUploadSize string `mapstructure:"max_upload_size" yaml:"max_upload_size"`
	// WebDisabled turns off the HTML page and leaves only the JSON API
	WebDisabled bool `mapstructure:"web_disabled" yaml:"web_disabled"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"   yaml:"secret"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

const (
	NERBackendNLPServer = "nlp_server"
	NERBackendProse     = "prose"
)

type NERConfig struct {
	Backend     string        `mapstructure:"backend"      yaml:"backend"      validate:"oneof=nlp_server prose"`
	ServerURL   string        `mapstructure:"server_url"   yaml:"server_url"   validate:"required_if=Backend nlp_server"`
	Language    string        `mapstructure:"language"     yaml:"language"`
	Timeout     time.Duration `mapstructure:"timeout"      yaml:"timeout"`
	Retries     int           `mapstructure:"retries"      yaml:"retries"      validate:"gte=0"`
	LoadRetries int           `mapstructure:"load_retries" yaml:"load_retries" validate:"gte=0"`
	Prose       ProseConfig   `mapstructure:"prose"        yaml:"prose"`
}

type ProseConfig struct {
	// ModelPath points at a model directory trained with prose. Empty uses the bundled model.
	ModelPath string `mapstructure:"model_path" yaml:"model_path"`
}

type ExtractConfig struct {
	// PDFPages is the number of leading pages read from a PDF. AllPages (-1) reads every page.
	PDFPages     int      `mapstructure:"pdf_pages"     yaml:"pdf_pages"     validate:"gte=-1"`
	OCRLanguages []string `mapstructure:"ocr_languages" yaml:"ocr_languages"`
}

// AllPages as ExtractConfig.PDFPages scans the whole document
const AllPages = -1

type SessionConfig struct {
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}

type LimitsConfig struct {
	WordLimit int `mapstructure:"word_limit" yaml:"word_limit" validate:"gt=0"`
}

const (
	ReportModeFile     = "file"
	ReportModeDownload = "download"
	ReportModeNone     = "none"
)

type ReportConfig struct {
	Mode     string       `mapstructure:"mode"      yaml:"mode"      validate:"oneof=file download none"`
	FilePath string       `mapstructure:"file_path" yaml:"file_path" validate:"required_if=Mode file"`
	Layout   LayoutConfig `mapstructure:"layout"    yaml:"layout"`
}

// LayoutConfig fixes the page geometry of generated logs, in PDF points. Y offsets are measured
// from the bottom of the page.
type LayoutConfig struct {
	PageWidth      float64 `mapstructure:"page_width"      yaml:"page_width"      validate:"gt=0"`
	PageHeight     float64 `mapstructure:"page_height"     yaml:"page_height"     validate:"gt=0"`
	LeftMargin     float64 `mapstructure:"left_margin"     yaml:"left_margin"     validate:"gte=0"`
	TopOffset      float64 `mapstructure:"top_offset"      yaml:"top_offset"      validate:"gtfield=MinOffset"`
	MinOffset      float64 `mapstructure:"min_offset"      yaml:"min_offset"      validate:"gte=0"`
	LineHeight     float64 `mapstructure:"line_height"     yaml:"line_height"     validate:"gt=0"`
	SectionSpacing float64 `mapstructure:"section_spacing" yaml:"section_spacing" validate:"gte=0"`
	EntrySpacing   float64 `mapstructure:"entry_spacing"   yaml:"entry_spacing"   validate:"gte=0"`
	WrapWidth      int     `mapstructure:"wrap_width"      yaml:"wrap_width"      validate:"gt=0"`
	FontSize       float64 `mapstructure:"font_size"       yaml:"font_size"       validate:"gt=0"`
}

type OTelConfig struct {
	Enabled     bool   `mapstructure:"enabled"      yaml:"enabled"`
	Endpoint    string `mapstructure:"endpoint"     yaml:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"     yaml:"insecure"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// DefaultLayout matches a US Letter page with a one-column text log.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		PageWidth:      612,
		PageHeight:     792,
		LeftMargin:     100,
		TopOffset:      750,
		MinOffset:      50,
		LineHeight:     15,
		SectionSpacing: 10,
		EntrySpacing:   20,
		WrapWidth:      90,
		FontSize:       12,
	}
}

// DefaultConfig returns the values used for any option not set in the config file or ENV.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Port:          8000,
			MaxUploadSize: "10MB",
		},
		NER: NERConfig{
			Backend:     NERBackendNLPServer,
			ServerURL:   "http://localhost:5557",
			Language:    "en",
			Timeout:     10 * time.Second,
			Retries:     3,
			LoadRetries: 5,
		},
		Extract: ExtractConfig{
			PDFPages:     1,
			OCRLanguages: []string{"eng"},
		},
		Session: SessionConfig{IdleTimeout: 2 * time.Hour},
		Limits:  LimitsConfig{WordLimit: 1000},
		Report: ReportConfig{
			Mode:     ReportModeDownload,
			FilePath: "interaction_log.pdf",
			Layout:   DefaultLayout(),
		},
		OTel: OTelConfig{ServiceName: "nerlog"},
	}
}
