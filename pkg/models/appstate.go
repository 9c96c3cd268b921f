package models

import (
	"github.com/getzep/nerlog/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Annotator Annotator
	Extractor TextExtractor
	Sessions  SessionStore
	LogSink   LogSink
	Config    *config.Config
}
