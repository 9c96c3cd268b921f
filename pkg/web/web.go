// Package web renders the single-page NER interface.
package web

import "embed"

//go:embed templates/*
var TemplatesFS embed.FS

var LayoutTemplates = []string{
	"templates/layout.html",
}
