package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ibarra/sarscope/internal/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

// ClientOpts configures the chat-completions client. The API must be
// OpenAI-compatible; BaseURL may point at any such provider.
type ClientOpts struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client submits prompts to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a new completion client.
func NewClient(opts ClientOpts) *Client {
	baseURL := defaultBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	model := defaultModel
	if opts.Model != "" {
		model = opts.Model
	}
	timeout := defaultTimeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetAuthToken(opts.APIKey).
			SetHeader("Content-Type", "application/json"),
		model: model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		// Legacy completions field, still emitted by some providers.
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete submits the prompt as a single user message and returns the
// first choice's content. A well-formed response without usable content
// yields an empty string, not an error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	defer metrics.ObserveUpstream("openai", time.Now())

	result := &chatResponse{}
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    c.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(result).
		Post("/v1/chat/completions")
	if _, err = handleError(res, err); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	choice := result.Choices[0]
	if choice.Message.Content != "" {
		return choice.Message.Content, nil
	}
	return choice.Text, nil
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
