package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const notionVersion = "2022-06-28"

// Client talks to the Notion REST API on behalf of one integration token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
}

// Option adjusts a Client; the zero configuration talks to the public API.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(r rate.Limit) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, 1) }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.notion.com",
		token:   token,
		// Notion allows an average of three requests per second.
		limiter: rate.NewLimiter(rate.Every(time.Second/3), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response. Code and Message come from Notion's error
// body; a schema mismatch surfaces as code "validation_error".
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion: %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("notion: unexpected status %d", e.StatusCode)
}

// PageMatch is one page found by a database query.
type PageMatch struct {
	ID      string
	numbers map[string]float64
}

// Number reports the value of a number property on the matched page.
func (m *PageMatch) Number(property string) (int, bool) {
	v, ok := m.numbers[property]
	return int(v), ok
}

type queryRequest struct {
	Filter   queryFilter `json:"filter"`
	PageSize int         `json:"page_size"`
}

type queryFilter struct {
	Property string      `json:"property"`
	Title    titleFilter `json:"title"`
}

type titleFilter struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results []struct {
		ID         string `json:"id"`
		Properties map[string]struct {
			Number *float64 `json:"number"`
		} `json:"properties"`
	} `json:"results"`
}

type createPageRequest struct {
	Parent     pageParent `json:"parent"`
	Properties Properties `json:"properties"`
	Children   []Block    `json:"children,omitempty"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties Properties `json:"properties"`
}

// QueryByTitle finds the page whose title property equals value, or nil when
// no page matches.
func (c *Client) QueryByTitle(ctx context.Context, databaseID, property, value string) (*PageMatch, error) {
	body := queryRequest{
		Filter:   queryFilter{Property: property, Title: titleFilter{Equals: value}},
		PageSize: 1,
	}

	var res queryResponse
	if err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", body, &res); err != nil {
		return nil, err
	}
	if len(res.Results) == 0 {
		return nil, nil
	}

	r := res.Results[0]
	match := &PageMatch{ID: r.ID, numbers: make(map[string]float64)}
	for name, p := range r.Properties {
		if p.Number != nil {
			match.numbers[name] = *p.Number
		}
	}
	return match, nil
}

// CreatePage creates one page in the database with the given property set and
// optional body blocks.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties, children []Block) error {
	body := createPageRequest{
		Parent:     pageParent{DatabaseID: databaseID},
		Properties: props,
		Children:   children,
	}
	return c.do(ctx, http.MethodPost, "/v1/pages", body, nil)
}

// UpdatePage replaces the given properties on an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props Properties) error {
	return c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, updatePageRequest{Properties: props}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
