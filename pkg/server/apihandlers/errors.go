package apihandlers

import (
	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/server/handlertools"
)

var log = internal.GetLogger()

// APIError represents an error response.
type APIError = handlertools.APIError
