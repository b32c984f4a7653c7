package domain

import (
	"errors"
	"fmt"
)

// Terminal lookup outcomes. Only the catalog stage can produce these;
// enrichment and interpretation failures degrade the payload instead.
var (
	// ErrNoScenes means the catalog returned zero features for the point.
	ErrNoScenes = errors.New("no SAR data found for this location")

	// ErrNoPreviews means features exist but none carries a browse URL.
	ErrNoPreviews = errors.New("SAR data found, but no preview images are available")
)

// UpstreamError wraps a failure of the catalog call itself.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
