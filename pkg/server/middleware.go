package server

import (
	"net/http"

	"github.com/getzep/nerlog/config"
)

const versionHeader = "X-Nerlog-Version"

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(versionHeader, config.VersionString)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
