package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Gateway is the set of backend calls the UI depends on. *Client
// implements it; tests may substitute their own.
type Gateway interface {
	CheckHealth(ctx context.Context) (HealthResponse, error)
	CheckInference(ctx context.Context, apiURL string) error
	Models(ctx context.Context) ([]string, error)
	ModelInfo(ctx context.Context) (ModelInfo, error)
	Explain(ctx context.Context, req ExplainRequest) (ExplainResponse, error)
	Summarize(ctx context.Context, req SummarizeRequest) (SummaryResponse, error)
	Quiz(ctx context.Context, req QuizRequest) (QuizResponse, error)
	Flashcards(ctx context.Context, req FlashcardsRequest) (FlashcardsResponse, error)
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the Concepta backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	models    *cache.Cache
}

const (
	defaultBackendURL = "http://localhost:8000"
	defaultUserAgent  = "concepta/0.1"

	// HealthTimeout bounds the startup probes. Generation calls are bounded
	// only by the caller's context.
	HealthTimeout = 5 * time.Second

	modelsCacheKey = "models"
	modelsCacheTTL = 5 * time.Minute
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Path   string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// NewClient builds a Client for the backend at backendURL.
func NewClient(backendURL string) (*Client, error) {
	base, err := parseBaseURL(backendURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		models:    cache.New(modelsCacheTTL, 2*modelsCacheTTL),
	}, nil
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// CheckHealth probes GET /health. Any transport failure, non-2xx status or
// timeout is an error.
func (c *Client) CheckHealth(ctx context.Context) (HealthResponse, error) {
	if c == nil {
		return HealthResponse{}, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	var payload HealthResponse
	if err := c.do(ctx, http.MethodGet, c.resolve("/health"), nil, &payload); err != nil {
		return HealthResponse{}, err
	}
	return payload, nil
}

// CheckInference probes GET {apiURL}/api/tags on the inference engine.
func (c *Client) CheckInference(ctx context.Context, apiURL string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	target := base.ResolveReference(&url.URL{Path: "/api/tags"})
	return c.do(ctx, http.MethodGet, target, nil, nil)
}

// Models lists the models the backend can use. Results are cached; on
// failure the error is returned alongside FallbackModels.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	if c == nil {
		return FallbackModels, fmt.Errorf("client is nil")
	}
	if cached, ok := c.models.Get(modelsCacheKey); ok {
		return cached.([]string), nil
	}
	var payload ModelsResponse
	if err := c.do(ctx, http.MethodGet, c.resolve("/models"), nil, &payload); err != nil {
		return FallbackModels, err
	}
	if len(payload.Models) == 0 {
		return FallbackModels, nil
	}
	c.models.SetDefault(modelsCacheKey, payload.Models)
	return payload.Models, nil
}

// ModelInfo fetches per-model specs from GET /model-info.
func (c *Client) ModelInfo(ctx context.Context) (ModelInfo, error) {
	if c == nil {
		return ModelInfo{}, fmt.Errorf("client is nil")
	}
	var payload ModelInfo
	if err := c.do(ctx, http.MethodGet, c.resolve("/model-info"), nil, &payload); err != nil {
		return ModelInfo{}, err
	}
	return payload, nil
}

// Explain requests a structured explanation of a topic.
func (c *Client) Explain(ctx context.Context, req ExplainRequest) (ExplainResponse, error) {
	var payload ExplainResponse
	if err := c.post(ctx, "/explain", req, &payload); err != nil {
		return ExplainResponse{}, err
	}
	return payload, nil
}

// Summarize requests a summary of study notes.
func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (SummaryResponse, error) {
	var payload SummaryResponse
	if err := c.post(ctx, "/summarize", req, &payload); err != nil {
		return SummaryResponse{}, err
	}
	return payload, nil
}

// Quiz requests quiz questions about content. An empty question list is a
// valid response.
func (c *Client) Quiz(ctx context.Context, req QuizRequest) (QuizResponse, error) {
	var payload QuizResponse
	if err := c.post(ctx, "/quiz", req, &payload); err != nil {
		return QuizResponse{}, err
	}
	return payload, nil
}

// Flashcards requests a flashcard deck about content.
func (c *Client) Flashcards(ctx context.Context, req FlashcardsRequest) (FlashcardsResponse, error) {
	var payload FlashcardsResponse
	if err := c.post(ctx, "/flashcards", req, &payload); err != nil {
		return FlashcardsResponse{}, err
	}
	return payload, nil
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.resolve(path), encoded, dest)
}

func (c *Client) resolve(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: path})
}

func (c *Client) do(ctx context.Context, method string, target *url.URL, body []byte, dest any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: target.Path, Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readDetail extracts FastAPI's {"detail": "..."} error body when present.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		return fmt.Sprint(payload.Detail)
	}
	return strings.TrimSpace(string(data))
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// IsUnreachable reports whether err means the server could not be reached
// at all, as opposed to answering with an error.
func IsUnreachable(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
