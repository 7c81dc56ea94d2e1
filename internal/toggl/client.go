// Package toggl talks to the Toggl Track v9 REST API to record practice time.
package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.track.toggl.com/api/v9"
	defaultCreatedWith = "sketchdeck"
	defaultHTTPTimeout = 10 * time.Second
)

var (
	// ErrNoWorkspace is returned when the account has no workspace.
	ErrNoWorkspace = errors.New("toggl: no workspace available")
	// ErrNoAPIKey is returned when the client is built without a credential.
	ErrNoAPIKey = errors.New("toggl: api key is required")
)

// Config describes the Toggl client configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	CreatedWith string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client wraps the Toggl Track API.
type Client struct {
	apiKey      string
	createdWith string
	baseURL     *url.URL
	http        *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("toggl: parse base url: %w", err)
	}
	createdWith := strings.TrimSpace(cfg.CreatedWith)
	if createdWith == "" {
		createdWith = defaultCreatedWith
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:      apiKey,
		createdWith: createdWith,
		baseURL:     baseURL,
		http:        client,
	}, nil
}

// Workspace is a Toggl workspace.
type Workspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TimeEntry is a Toggl time entry. A running entry has a negative Duration.
type TimeEntry struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	Duration    int64      `json:"duration"`
}

// Running reports whether the entry is still open.
func (e TimeEntry) Running() bool { return e.Duration < 0 }

type startRequest struct {
	CreatedWith string `json:"created_with"`
	Description string `json:"description"`
	WorkspaceID int64  `json:"workspace_id"`
	Start       string `json:"start"`
	Duration    int64  `json:"duration"`
}

// Workspaces lists the workspaces the credential can access.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var workspaces []Workspace
	if err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("workspaces"), nil, &workspaces); err != nil {
		return nil, fmt.Errorf("toggl: list workspaces: %w", err)
	}
	return workspaces, nil
}

// StartEntry opens a running time entry in workspace.
func (c *Client) StartEntry(ctx context.Context, workspace int64, description string, start time.Time) (TimeEntry, error) {
	body := startRequest{
		CreatedWith: c.createdWith,
		Description: description,
		WorkspaceID: workspace,
		Start:       start.UTC().Format(time.RFC3339),
		Duration:    -1,
	}
	endpoint := c.baseURL.JoinPath("workspaces", strconv.FormatInt(workspace, 10), "time_entries")
	var entry TimeEntry
	if err := c.do(ctx, http.MethodPost, endpoint, body, &entry); err != nil {
		return TimeEntry{}, fmt.Errorf("toggl: start entry: %w", err)
	}
	return entry, nil
}

// StopEntry stops a running time entry.
func (c *Client) StopEntry(ctx context.Context, workspace, entry int64) (TimeEntry, error) {
	endpoint := c.baseURL.JoinPath(
		"workspaces", strconv.FormatInt(workspace, 10),
		"time_entries", strconv.FormatInt(entry, 10), "stop",
	)
	var stopped TimeEntry
	if err := c.do(ctx, http.MethodPatch, endpoint, nil, &stopped); err != nil {
		return TimeEntry{}, fmt.Errorf("toggl: stop entry %d: %w", entry, err)
	}
	return stopped, nil
}

func (c *Client) do(ctx context.Context, method string, endpoint *url.URL, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "api_token")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is a non-2xx response from Toggl.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// Unauthorized reports whether the credential was rejected.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}
