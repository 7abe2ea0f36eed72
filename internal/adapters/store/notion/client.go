package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bodycomp-notion/internal/platform/httpclient"
)

var (
	ErrNotionNotConfigured = errors.New("notion client not configured")
	ErrNotionUnauthorized  = errors.New("notion unauthorized")
	ErrNotionNotFound      = errors.New("notion object not found")
	ErrNotionUpstream      = errors.New("notion upstream error")
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
)

// Config del cliente Notion. Normalmente viene de env (NOTION_*).
type Config struct {
	BaseURL string
	APIKey  string
	Version string

	// Timeout HTTP; 0 => httpclient.DefaultTimeout.
	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client habla con la API REST de Notion. Es inmutable después de NewClient
// y seguro para uso concurrente.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNotionNotConfigured
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = DefaultVersion
	}

	hc, err := httpclient.NewWithConfig(httpclient.Config{
		BaseURL:   base,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
		Headers: map[string]string{
			"Authorization":  "Bearer " + apiKey,
			"Notion-Version": version,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// SearchFilter filtra por tipo de objeto ("database" | "page").
type SearchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

type searchRequest struct {
	Filter *SearchFilter `json:"filter,omitempty"`
}

// SearchResponse trae solo lo que usamos de cada resultado; Raw conserva el resto.
type SearchResponse struct {
	Object     string         `json:"object"`
	Results    []SearchResult `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor"`
}

type SearchResult struct {
	Object string     `json:"object"`
	ID     string     `json:"id"`
	Title  []RichText `json:"title,omitempty"`
	URL    string     `json:"url,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text,omitempty"`
	Text      *Text  `json:"text,omitempty"`
}

type Text struct {
	Content string `json:"content"`
}

// Search: POST /search.
func (c *Client) Search(ctx context.Context, filter *SearchFilter) (SearchResponse, error) {
	var out SearchResponse
	if err := c.do(ctx, http.MethodPost, "/search", searchRequest{Filter: filter}, &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

// UpdateDatabase: PATCH /databases/{id}. Notion mergea properties: las que no
// vienen en el body quedan como están.
func (c *Client) UpdateDatabase(ctx context.Context, databaseID string, properties map[string]any) (json.RawMessage, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("%w: database id required", ErrNotionNotFound)
	}

	var out json.RawMessage
	body := map[string]any{"properties": properties}
	if err := c.do(ctx, http.MethodPatch, "/databases/"+url.PathEscape(databaseID), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Page es lo mínimo que leemos de la respuesta de POST /pages.
type Page struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	URL    string `json:"url"`
}

// CreatePage: POST /pages con parent database_id.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]any) (Page, json.RawMessage, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return Page{}, nil, fmt.Errorf("%w: database id required", ErrNotionNotFound)
	}

	body := map[string]any{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": properties,
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/pages", body, &raw); err != nil {
		return Page{}, nil, err
	}

	var p Page
	if err := json.Unmarshal(raw, &p); err != nil {
		return Page{}, nil, fmt.Errorf("%w: invalid json: %v", ErrNotionUpstream, err)
	}
	return p, raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.http == nil {
		return ErrNotionNotConfigured
	}

	err := c.http.DoJSON(ctx, method, path, nil, in, out)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrNotionUnauthorized, apiMessage(httpErr.Body))
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotionNotFound, apiMessage(httpErr.Body))
		default:
			return fmt.Errorf("%w: status=%d %s", ErrNotionUpstream, httpErr.StatusCode, apiMessage(httpErr.Body))
		}
	}
	return fmt.Errorf("%w: %v", ErrNotionUpstream, err)
}

// apiMessage extrae "message" del error JSON de Notion si se puede.
func apiMessage(body string) string {
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &e); err != nil || e.Message == "" {
		return body
	}
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}
