package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/ibarra/sarscope/internal/adapters/http"
	"github.com/ibarra/sarscope/internal/core/domain"
	"github.com/ibarra/sarscope/internal/core/usecases"
)

// ---- Mock collaborators ----

type mockCatalog struct {
	searchFn func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error)
	calls    int
}

func (m *mockCatalog) Search(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, lat, lon)
	}
	return nil, nil
}

type mockVision struct {
	colorsFn func(ctx context.Context, imageURL string) ([]domain.ColorSample, error)
	tagsFn   func(ctx context.Context, imageURL string) ([]domain.Tag, error)
}

func (m *mockVision) Colors(ctx context.Context, imageURL string) ([]domain.ColorSample, error) {
	if m.colorsFn != nil {
		return m.colorsFn(ctx, imageURL)
	}
	return []domain.ColorSample{}, nil
}

func (m *mockVision) Tags(ctx context.Context, imageURL string) ([]domain.Tag, error) {
	if m.tagsFn != nil {
		return m.tagsFn(ctx, imageURL)
	}
	return []domain.Tag{}, nil
}

type mockLLM struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return "an interpretation", nil
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(catalog *mockCatalog, vision *mockVision, llm *mockLLM) *handler.Dependencies {
	if catalog == nil {
		catalog = &mockCatalog{}
	}
	if vision == nil {
		vision = &mockVision{}
	}
	if llm == nil {
		llm = &mockLLM{}
	}
	return &handler.Dependencies{
		Lookup:           usecases.NewLookupService(catalog, vision, llm),
		VisionConfigured: true,
		LLMConfigured:    true,
	}
}

func postLookup(app *fiber.App, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest("POST", "/api/get-sar-image", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func singleScene() []domain.SceneFeature {
	return []domain.SceneFeature{{
		SceneName:       "S1A_IW_GRDH_1SDV_20240320T060102",
		Platform:        "Sentinel-1A",
		StartTime:       "2024-03-20T06:01:02Z",
		FlightDirection: "ASCENDING",
		Polarization:    "VV+VH",
		BeamMode:        "IW",
		Orbit:           53012,
		Browse:          []string{"https://img/scene.jpg"},
	}}
}

// ---- Validation ----

func TestLookup_MissingLatitude(t *testing.T) {
	catalog := &mockCatalog{}
	app := setupApp(makeDeps(catalog, nil, nil))

	status, body := postLookup(app, `{"longitude": -118.24}`)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] != "Latitude and Longitude are required." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if catalog.calls != 0 {
		t.Errorf("expected no outbound calls, got %d", catalog.calls)
	}
}

func TestLookup_MissingLongitude(t *testing.T) {
	catalog := &mockCatalog{}
	app := setupApp(makeDeps(catalog, nil, nil))

	status, body := postLookup(app, `{"latitude": 34.05}`)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] != "Latitude and Longitude are required." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if catalog.calls != 0 {
		t.Errorf("expected no outbound calls, got %d", catalog.calls)
	}
}

func TestLookup_EmptyBody(t *testing.T) {
	app := setupApp(makeDeps(nil, nil, nil))

	status, body := postLookup(app, `{}`)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] != "Latitude and Longitude are required." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

// ---- Configuration ----

func TestLookup_MissingVisionCredentials(t *testing.T) {
	catalog := &mockCatalog{}
	deps := makeDeps(catalog, nil, nil)
	deps.VisionConfigured = false
	app := setupApp(deps)

	status, body := postLookup(app, `{"latitude": 34.05, "longitude": -118.24}`)
	if status != 500 {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["error"] != "Server configuration error: Imagga credentials missing." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if catalog.calls != 0 {
		t.Errorf("expected no outbound calls, got %d", catalog.calls)
	}
}

// ---- Catalog outcomes ----

func TestLookup_NoScenes(t *testing.T) {
	catalog := &mockCatalog{
		searchFn: func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
			return []domain.SceneFeature{}, nil
		},
	}
	app := setupApp(makeDeps(catalog, nil, nil))

	status, body := postLookup(app, `{"latitude": 0, "longitude": 0}`)
	if status != 404 {
		t.Fatalf("expected 404, got %d", status)
	}
	if body["error"] != "No SAR data found for this location." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestLookup_NoPreviews(t *testing.T) {
	catalog := &mockCatalog{
		searchFn: func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
			scenes := singleScene()
			scenes[0].Browse = nil
			return scenes, nil
		},
	}
	app := setupApp(makeDeps(catalog, nil, nil))

	status, body := postLookup(app, `{"latitude": 0, "longitude": 0}`)
	if status != 404 {
		t.Fatalf("expected 404, got %d", status)
	}
	if body["error"] != "SAR data found, but no preview images are available." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestLookup_CatalogFailure(t *testing.T) {
	catalog := &mockCatalog{
		searchFn: func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}
	app := setupApp(makeDeps(catalog, nil, nil))

	status, body := postLookup(app, `{"latitude": 0, "longitude": 0}`)
	if status != 500 {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["error"] != "Failed to process SAR data." {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

// ---- Success & degradation ----

func TestLookup_Success(t *testing.T) {
	catalog := &mockCatalog{
		searchFn: func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
			return singleScene(), nil
		},
	}
	vision := &mockVision{
		colorsFn: func(ctx context.Context, imageURL string) ([]domain.ColorSample, error) {
			return []domain.ColorSample{{Name: "black", Hex: "#0d0d0d", Percent: 52.3}}, nil
		},
		tagsFn: func(ctx context.Context, imageURL string) ([]domain.Tag, error) {
			return []domain.Tag{{Label: "sea", Confidence: 90}}, nil
		},
	}
	app := setupApp(makeDeps(catalog, vision, nil))

	status, body := postLookup(app, `{"latitude": 34.05, "longitude": -118.24}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}

	for _, key := range []string{"imageUrl", "explanation", "sceneName", "imageTags", "imageColors", "metadata"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing response key %q", key)
		}
	}
	if body["imageUrl"] != "https://img/scene.jpg" {
		t.Errorf("unexpected imageUrl: %v", body["imageUrl"])
	}
	if body["sceneName"] != "S1A_IW_GRDH_1SDV_20240320T060102" {
		t.Errorf("unexpected sceneName: %v", body["sceneName"])
	}

	meta, ok := body["metadata"].(map[string]interface{})
	if !ok {
		t.Fatal("metadata is not an object")
	}
	coords, ok := meta["coordinates"].(map[string]interface{})
	if !ok {
		t.Fatal("metadata.coordinates is not an object")
	}
	if coords["latitude"] != 34.05 {
		t.Errorf("unexpected latitude: %v", coords["latitude"])
	}
}

func TestLookup_ColorsFailureStill200(t *testing.T) {
	catalog := &mockCatalog{
		searchFn: func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
			return singleScene(), nil
		},
	}
	vision := &mockVision{
		colorsFn: func(ctx context.Context, imageURL string) ([]domain.ColorSample, error) {
			return nil, fmt.Errorf("timeout")
		},
	}
	app := setupApp(makeDeps(catalog, vision, nil))

	status, body := postLookup(app, `{"latitude": 0, "longitude": 0}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}

	colors, ok := body["imageColors"].([]interface{})
	if !ok {
		t.Fatalf("imageColors is not an array: %v", body["imageColors"])
	}
	if len(colors) != 0 {
		t.Errorf("expected empty imageColors, got %v", colors)
	}
	if body["explanation"] == "" {
		t.Error("expected a non-empty explanation")
	}
}

func TestLookup_LLMFailureUsesFallback(t *testing.T) {
	catalog := &mockCatalog{
		searchFn: func(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
			return singleScene(), nil
		},
	}
	llm := &mockLLM{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "", fmt.Errorf("503 from provider")
		},
	}
	app := setupApp(makeDeps(catalog, nil, llm))

	status, body := postLookup(app, `{"latitude": 0, "longitude": 0}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["explanation"] != usecases.FallbackExplanation {
		t.Errorf("unexpected explanation: %v", body["explanation"])
	}
	if body["imageUrl"] != "https://img/scene.jpg" {
		t.Errorf("unexpected imageUrl: %v", body["imageUrl"])
	}
}

// ---- Health & readiness ----

func TestHealth_Returns200(t *testing.T) {
	app := setupApp(makeDeps(nil, nil, nil))

	req := httptest.NewRequest("GET", "/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Status    string `json:"status"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Status != "ok" {
		t.Errorf("expected ok status, got %q", result.Status)
	}
	if result.Timestamp <= 0 {
		t.Errorf("expected positive epoch-ms timestamp, got %d", result.Timestamp)
	}
}

func TestHealth_TimestampStrictlyIncreasing(t *testing.T) {
	app := setupApp(makeDeps(nil, nil, nil))

	var last int64
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		resp, _ := app.Test(req, -1)

		var result struct {
			Timestamp int64 `json:"timestamp"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatal(err)
		}
		if result.Timestamp <= last {
			t.Fatalf("timestamp not strictly increasing: %d after %d", result.Timestamp, last)
		}
		last = result.Timestamp
	}
}

func TestReady_MissingVisionCredentials(t *testing.T) {
	deps := makeDeps(nil, nil, nil)
	deps.VisionConfigured = false
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestReady_MissingLLMKeyStillReady(t *testing.T) {
	deps := makeDeps(nil, nil, nil)
	deps.LLMConfigured = false
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// ---- Headers ----

func TestAPIVersionHeader(t *testing.T) {
	app := setupApp(makeDeps(nil, nil, nil))

	req := httptest.NewRequest("GET", "/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if v := resp.Header.Get("X-API-Version"); v != "1.0.0" {
		t.Errorf("expected X-API-Version 1.0.0, got %q", v)
	}
}

func TestHealth_NoStoreCacheControl(t *testing.T) {
	app := setupApp(makeDeps(nil, nil, nil))

	req := httptest.NewRequest("GET", "/health", nil)
	resp, _ := app.Test(req, -1)
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Errorf("expected no-store, got %q", cc)
	}
}
