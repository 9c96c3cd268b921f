package web

import (
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/getzep/sprig/v3"
)

func add(a, b int) int {
	return a + b
}

func humanBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

func humanTime(t time.Time) string {
	return humanize.Time(t)
}

// TemplateFuncs is the sprig function map plus the page's own helpers.
func TemplateFuncs() template.FuncMap {
	funcs := sprig.FuncMap()
	own := template.FuncMap{
		"Add":        add,
		"HumanBytes": humanBytes,
		"HumanTime":  humanTime,
		"Comma":      humanize.Comma,
	}
	for k, v := range own {
		funcs[k] = v
	}
	return funcs
}
