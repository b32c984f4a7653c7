package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ibarra/sarscope/internal/core/domain"
)

// Exact response messages for the lookup endpoint.
const (
	msgMissingCoordinates = "Latitude and Longitude are required."
	msgMissingVisionCreds = "Server configuration error: Imagga credentials missing."
	msgNoScenes           = "No SAR data found for this location."
	msgNoPreviews         = "SAR data found, but no preview images are available."
	msgCatalogFailure     = "Failed to process SAR data."
)

// lookupRequest uses pointers so that absent fields are distinguishable
// from zero coordinates. No range validation: out-of-range values go to
// the catalog verbatim.
type lookupRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// LookupHandler runs the SAR lookup pipeline for a coordinate pair.
// POST /api/get-sar-image {"latitude": 34.05, "longitude": -118.24}
func LookupHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req lookupRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, msgMissingCoordinates)
		}
		if req.Latitude == nil || req.Longitude == nil {
			return errBadRequest(c, msgMissingCoordinates)
		}

		if !deps.VisionConfigured {
			return errInternal(c, msgMissingVisionCreds)
		}

		result, err := deps.Lookup.Lookup(c.UserContext(), *req.Latitude, *req.Longitude)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoScenes):
				return errNotFound(c, msgNoScenes)
			case errors.Is(err, domain.ErrNoPreviews):
				return errNotFound(c, msgNoPreviews)
			default:
				LoggerFromCtx(c.UserContext()).Error("lookup failed", "error", err)
				return errInternal(c, msgCatalogFailure)
			}
		}

		return c.JSON(result)
	}
}
