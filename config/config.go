package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/getzep/nerlog/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const EnvPrefix = "NERLOG"

// LoadConfig loads the config file and ENV variables into a Config struct. A missing config file
// is not an error: defaults and the environment are used instead. Unset options are filled from
// DefaultConfig and the result is validated.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment variables take precedence over config file
	loadDotEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Info("no config.yaml found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	applyExplicitZeros(v, &cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindEnv registers the keys AutomaticEnv can only resolve once they are known to viper, so that
// e.g. NERLOG_AUTH_SECRET is picked up without a config file.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"log.level",
		"server.port",
		"server.max_upload_size",
		"server.web_disabled",
		"auth.secret",
		"auth.required",
		"ner.backend",
		"ner.server_url",
		"ner.language",
		"ner.timeout",
		"ner.prose.model_path",
		"extract.pdf_pages",
		"limits.word_limit",
		"report.mode",
		"report.file_path",
		"otel.enabled",
		"otel.endpoint",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			log.Fatalf("Error binding environment variable: %s", err)
		}
	}
}

// applyExplicitZeros restores options where zero is a meaningful setting. mergo treats zero
// values as unset and would otherwise replace them with the defaults.
func applyExplicitZeros(v *viper.Viper, cfg *Config) {
	if v.IsSet("session.idle_timeout") {
		cfg.Session.IdleTimeout = v.GetDuration("session.idle_timeout")
	}

	layout := map[string]*float64{
		"report.layout.left_margin":     &cfg.Report.Layout.LeftMargin,
		"report.layout.min_offset":      &cfg.Report.Layout.MinOffset,
		"report.layout.section_spacing": &cfg.Report.Layout.SectionSpacing,
		"report.layout.entry_spacing":   &cfg.Report.Layout.EntrySpacing,
	}
	for key, field := range layout {
		if v.IsSet(key) {
			*field = v.GetFloat64(key)
		}
	}
}

// Validate checks struct constraints on the config.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dump renders the effective config as YAML.
func Dump(cfg *Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
