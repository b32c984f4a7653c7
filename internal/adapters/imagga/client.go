package imagga

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ibarra/sarscope/internal/core/domain"
	"github.com/ibarra/sarscope/internal/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.imagga.com"
	defaultTimeout = 20 * time.Second
)

// ClientOpts configures the Imagga client. APIKey and APISecret are sent
// as HTTP basic auth on every call.
type ClientOpts struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client calls the Imagga colors and tags endpoints. Both methods return
// an error on any transport or status failure; the caller decides whether
// to absorb it.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a new Imagga client.
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
			SetBasicAuth(opts.APIKey, opts.APISecret),
	}
}

type colorsResponse struct {
	Result struct {
		Colors struct {
			ImageColors []imageColor `json:"image_colors"`
		} `json:"colors"`
	} `json:"result"`
}

type imageColor struct {
	ClosestPaletteColor       string  `json:"closest_palette_color"`
	ClosestPaletteColorParent string  `json:"closest_palette_color_parent"`
	HTMLCode                  string  `json:"html_code"`
	Percent                   float64 `json:"percent"`
}

type tagsResponse struct {
	Result struct {
		Tags []struct {
			Confidence float64 `json:"confidence"`
			Tag        struct {
				En string `json:"en"`
			} `json:"tag"`
		} `json:"tags"`
	} `json:"result"`
}

// Colors extracts the dominant colors of an image. A response missing the
// expected nesting decodes to zero values and yields an empty list rather
// than an error.
func (c *Client) Colors(ctx context.Context, imageURL string) ([]domain.ColorSample, error) {
	defer metrics.ObserveUpstream("imagga", time.Now())

	result := &colorsResponse{}
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("image_url", imageURL).
		SetResult(result).
		Get("/v2/colors")
	if _, err = handleError(res, err); err != nil {
		return nil, err
	}

	raw := result.Result.Colors.ImageColors
	colors := make([]domain.ColorSample, 0, len(raw))
	for _, ic := range raw {
		colors = append(colors, domain.ColorSample{
			Name:    ic.ClosestPaletteColor,
			Palette: ic.ClosestPaletteColorParent,
			Hex:     ic.HTMLCode,
			Percent: ic.Percent,
		})
	}
	return colors, nil
}

// Tags returns all tags with their confidence scores, in upstream order.
// Filtering is the orchestrator's job.
func (c *Client) Tags(ctx context.Context, imageURL string) ([]domain.Tag, error) {
	defer metrics.ObserveUpstream("imagga", time.Now())

	result := &tagsResponse{}
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("image_url", imageURL).
		SetResult(result).
		Get("/v2/tags")
	if _, err = handleError(res, err); err != nil {
		return nil, err
	}

	tags := make([]domain.Tag, 0, len(result.Result.Tags))
	for _, t := range result.Result.Tags {
		tags = append(tags, domain.Tag{Label: t.Tag.En, Confidence: t.Confidence})
	}
	return tags, nil
}

func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}
	return res, nil
}
