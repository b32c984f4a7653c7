package usecases

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ibarra/sarscope/internal/core/domain"
	"github.com/ibarra/sarscope/internal/core/ports"
	"github.com/ibarra/sarscope/internal/pkg/metrics"
)

// FallbackExplanation replaces the interpretation text whenever the LLM
// call fails. Enrichment and interpretation failures never abort a lookup.
const FallbackExplanation = "AI interpretation unavailable due to service error."

const (
	maxTags          = 5
	minTagConfidence = 15
)

// LookupService orchestrates one SAR image lookup: catalog search, scene
// selection, vision enrichment, prompt construction, and interpretation.
type LookupService struct {
	catalog ports.SceneCatalog
	vision  ports.VisionAnalyzer
	llm     ports.Interpreter
}

// NewLookupService creates a new LookupService.
func NewLookupService(catalog ports.SceneCatalog, vision ports.VisionAnalyzer, llm ports.Interpreter) *LookupService {
	return &LookupService{catalog: catalog, vision: vision, llm: llm}
}

// Lookup runs the full pipeline for a coordinate. Only the catalog stage
// can fail the request: it returns domain.ErrNoScenes, domain.ErrNoPreviews,
// or a *domain.UpstreamError. Every later stage degrades its own slice of
// the result and the lookup still succeeds.
func (s *LookupService) Lookup(ctx context.Context, lat, lon float64) (*domain.Interpretation, error) {
	features, err := s.catalog.Search(ctx, lat, lon)
	if err != nil {
		metrics.CatalogQueries.WithLabelValues("error").Inc()
		return nil, &domain.UpstreamError{Service: "catalog", Err: err}
	}
	if len(features) == 0 {
		metrics.CatalogQueries.WithLabelValues("empty").Inc()
		return nil, domain.ErrNoScenes
	}

	scene, ok := SelectLatest(features)
	if !ok {
		metrics.CatalogQueries.WithLabelValues("no_previews").Inc()
		return nil, domain.ErrNoPreviews
	}
	metrics.CatalogQueries.WithLabelValues("ok").Inc()

	imageURL := scene.Browse[0]

	// Colors and tags are independent and both absorb their own failures,
	// so they can run concurrently without changing observable behavior.
	colors := []domain.ColorSample{}
	var rawTags []domain.Tag

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cs, err := s.vision.Colors(gctx, imageURL)
		if err != nil {
			slog.Warn("color analysis failed", "image_url", imageURL, "error", err)
			metrics.EnrichmentFailures.WithLabelValues("colors").Inc()
			return nil
		}
		colors = cs
		return nil
	})
	g.Go(func() error {
		ts, err := s.vision.Tags(gctx, imageURL)
		if err != nil {
			slog.Warn("tag analysis failed", "image_url", imageURL, "error", err)
			metrics.EnrichmentFailures.WithLabelValues("tags").Inc()
			return nil
		}
		rawTags = ts
		return nil
	})
	_ = g.Wait()

	if colors == nil {
		colors = []domain.ColorSample{}
	}
	tags := FilterTags(rawTags)

	meta := domain.SceneMetadata{
		SceneName:       scene.SceneName,
		Platform:        scene.Platform,
		Date:            scene.StartTime,
		FlightDirection: scene.FlightDirection,
		Polarization:    scene.Polarization,
		BeamMode:        scene.BeamMode,
		Orbit:           scene.Orbit,
		Coordinates:     domain.Coordinate{Latitude: lat, Longitude: lon},
	}

	prompt := BuildPrompt(colors, tags, meta)

	explanation, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("interpretation failed", "scene", scene.SceneName, "error", err)
		metrics.Interpretations.WithLabelValues("error").Inc()
		explanation = FallbackExplanation
	} else {
		metrics.Interpretations.WithLabelValues("ok").Inc()
	}

	return &domain.Interpretation{
		ImageURL:    imageURL,
		Explanation: explanation,
		SceneName:   scene.SceneName,
		ImageTags:   tags,
		ImageColors: colors,
		Metadata:    meta,
	}, nil
}

// SelectLatest filters features to those with a preview image and returns
// the one with the most recent start time. The sort is stable, so equal
// timestamps keep their catalog order. ok is false when no feature has a
// preview.
func SelectLatest(features []domain.SceneFeature) (domain.SceneFeature, bool) {
	eligible := make([]domain.SceneFeature, 0, len(features))
	for _, f := range features {
		if f.HasBrowse() {
			eligible = append(eligible, f)
		}
	}
	if len(eligible) == 0 {
		return domain.SceneFeature{}, false
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].StartTime > eligible[j].StartTime
	})
	return eligible[0], true
}

// FilterTags keeps tags with confidence strictly above 15, capped to the
// first 5 survivors in upstream order, projected to their labels. Survivors
// are deliberately not re-sorted by confidence.
func FilterTags(tags []domain.Tag) []string {
	labels := make([]string, 0, maxTags)
	for _, t := range tags {
		if t.Confidence <= minTagConfidence {
			continue
		}
		labels = append(labels, t.Label)
		if len(labels) == maxTags {
			break
		}
	}
	return labels
}
