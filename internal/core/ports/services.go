package ports

import (
	"context"

	"github.com/ibarra/sarscope/internal/core/domain"
)

// SceneCatalog searches a SAR imagery catalog for acquisitions covering
// a point.
type SceneCatalog interface {
	Search(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error)
}

// VisionAnalyzer extracts colors and tags from a preview image URL. The
// two calls are independent; callers absorb failures from either.
type VisionAnalyzer interface {
	Colors(ctx context.Context, imageURL string) ([]domain.ColorSample, error)
	Tags(ctx context.Context, imageURL string) ([]domain.Tag, error)
}

// Interpreter turns a prompt into a natural-language interpretation.
type Interpreter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
