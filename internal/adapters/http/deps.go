package http

import (
	"github.com/ibarra/sarscope/internal/core/usecases"
)

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Lookup *usecases.LookupService

	// VisionConfigured is false when Imagga credentials are missing; the
	// lookup endpoint rejects requests in that state.
	VisionConfigured bool

	// LLMConfigured is false when the completion API key is missing. This
	// never blocks a request, it only shows up in readiness output.
	LLMConfigured bool
}
