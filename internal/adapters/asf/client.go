package asf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ibarra/sarscope/internal/core/domain"
	"github.com/ibarra/sarscope/internal/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.daac.asf.alaska.edu"
	defaultTimeout = 15 * time.Second

	// Fixed search parameters: Sentinel-1 scenes intersecting the query
	// point, GeoJSON output, capped result set.
	dataset    = "SENTINEL-1"
	maxResults = 250
)

// ClientOpts configures the catalog client.
type ClientOpts struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the ASF SearchAPI for SAR acquisitions.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a new ASF catalog client.
func NewClient(opts ClientOpts) *Client {
	baseURL := defaultBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	timeout := defaultTimeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Search returns all catalog features intersecting the point. Coordinates
// are forwarded verbatim; range validation is the catalog's concern.
func (c *Client) Search(ctx context.Context, lat, lon float64) ([]domain.SceneFeature, error) {
	defer metrics.ObserveUpstream("asf", time.Now())

	result := &searchResponse{}
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"intersectsWith": fmt.Sprintf("POINT(%v %v)", lon, lat),
			"dataset":        dataset,
			"maxResults":     strconv.Itoa(maxResults),
			"output":         "geojson",
		}).
		SetResult(result).
		Get("/services/search/param")
	if _, err = handleError(res, err); err != nil {
		return nil, err
	}

	features := make([]domain.SceneFeature, 0, len(result.Features))
	for _, f := range result.Features {
		p := f.Properties
		orbit := 0
		if p.Orbit != nil {
			orbit = *p.Orbit
		}
		features = append(features, domain.SceneFeature{
			SceneName:       p.SceneName,
			Platform:        p.Platform,
			StartTime:       p.StartTime,
			FlightDirection: p.FlightDirection,
			Polarization:    p.Polarization,
			BeamMode:        p.BeamModeType,
			Orbit:           orbit,
			Browse:          p.Browse,
		})
	}
	return features, nil
}

// handleError converts >399 responses into errors; resty leaves them nil.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}
	return res, nil
}
