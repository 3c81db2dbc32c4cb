// Package api is the REST client for the Snapfest backend: the paged
// gallery listing, event listing, uploads, and the admin moderation
// namespace.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/snapfest/gallery/internal/config"
	"github.com/snapfest/gallery/internal/gallery"
	"github.com/snapfest/gallery/internal/media"
)

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Normalizer converts fetched items into displayable ones. Satisfied
// by *media.Normalizer; nil disables normalization.
type Normalizer interface {
	Normalize(ctx context.Context, item media.Item) media.Item
}

// Client talks to the backend. Not an interface - concrete type.
type Client struct {
	baseURL    string
	headers    map[string]string
	adminToken string
	client     *http.Client
	limiter    *rate.Limiter
	normalizer Normalizer
}

// NewClient creates a Client from the given configuration. The rate
// limiter keeps the client polite toward the tunnel; it is generous
// enough to never be felt during normal browsing.
func NewClient(cfg *config.Config, timeout time.Duration, normalizer Normalizer) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		headers:    config.DefaultHeaders(),
		adminToken: cfg.AdminToken,
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		normalizer: normalizer,
	}
}

// pagedEnvelope is the backend's standard paged-list response shape.
type pagedEnvelope struct {
	Content       []wireItem `json:"content"`
	Number        int        `json:"number"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int        `json:"totalElements"`
	Size          int        `json:"size"`
}

// itemsEnvelope is the older flat shape some deployments still return.
type itemsEnvelope struct {
	Items []wireItem `json:"items"`
}

type wireItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Src      string `json:"src"`
	Title    string `json:"title"`
	Event    string `json:"event"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Featured bool   `json:"featured"`
}

// FetchPage retrieves one page of the gallery for the given query and
// maps it into a PageResult, running image items through the
// normalizer. No automatic retries: failures surface to the caller.
func (c *Client) FetchPage(ctx context.Context, q gallery.Query) (*gallery.PageResult, error) {
	body, err := c.get(ctx, config.EndpointGallery, q.Params())
	if err != nil {
		return nil, err
	}

	env, err := decodePage(body)
	if err != nil {
		return nil, err
	}

	items := make([]media.Item, 0, len(env.Content))
	for _, w := range env.Content {
		item := w.toItem()
		if c.normalizer != nil {
			item = c.normalizer.Normalize(ctx, item)
		}
		items = append(items, item)
	}

	return &gallery.PageResult{
		Items:         items,
		PageIndex:     env.Number,
		PageSize:      env.Size,
		TotalPages:    env.TotalPages,
		TotalElements: env.TotalElements,
	}, nil
}

// decodePage decodes the paged envelope, falling back to a flat array
// or an {items: []} wrapper treated as a single complete page.
func decodePage(body []byte) (*pagedEnvelope, error) {
	var env pagedEnvelope
	if err := json.Unmarshal(body, &env); err == nil && (env.TotalPages > 0 || env.Content != nil) {
		if env.Size == 0 {
			env.Size = len(env.Content)
		}
		return &env, nil
	}

	var flat []wireItem
	if err := json.Unmarshal(body, &flat); err == nil {
		return singlePage(flat), nil
	}

	var wrapped itemsEnvelope
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Items != nil {
		return singlePage(wrapped.Items), nil
	}

	return nil, fmt.Errorf("unrecognized gallery response shape")
}

func singlePage(items []wireItem) *pagedEnvelope {
	return &pagedEnvelope{
		Content:       items,
		Number:        0,
		TotalPages:    1,
		TotalElements: len(items),
		Size:          len(items),
	}
}

func (w wireItem) toItem() media.Item {
	t := media.TypeImage
	if w.Type == "video" {
		t = media.TypeVideo
	}
	return media.Item{
		ID:       w.ID,
		Type:     t,
		Src:      w.Src,
		Title:    w.Title,
		Event:    w.Event,
		Author:   w.Author,
		Date:     parseDate(w.Date),
		Featured: w.Featured,
	}
}

// parseDate accepts RFC3339 or epoch milliseconds; the backend has
// used both over time.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	return time.Time{}
}

// Event is a community event media can be tagged with.
type Event struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// ListEvents returns the events known to the backend.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	body, err := c.get(ctx, config.EndpointEvents, nil)
	if err != nil {
		return nil, err
	}
	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// Upload posts a single file to the upload endpoint, tagged with an
// event name. Returns the created item as the backend reports it.
func (c *Client) Upload(ctx context.Context, filePath, event string) (*media.Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if event != "" {
		if err := mw.WriteField("event", event); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+config.EndpointUpload, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var w wireItem
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	item := w.toItem()
	return &item, nil
}

// Approve marks an item as approved in the moderation queue.
func (c *Client) Approve(ctx context.Context, id string) error {
	return c.adminPost(ctx, config.EndpointAdminApprove+"/"+url.PathEscape(id))
}

// Reject marks an item as rejected in the moderation queue.
func (c *Client) Reject(ctx context.Context, id string) error {
	return c.adminPost(ctx, config.EndpointAdminReject+"/"+url.PathEscape(id))
}

// Delete removes an item entirely.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+config.EndpointAdminDelete+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) adminPost(ctx context.Context, path string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// do applies the fixed headers, executes the request, and maps non-2xx
// statuses to *HTTPError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: snippet(body)}
	}
	return body, nil
}

// snippet trims an error body down to something fit for a status bar.
func snippet(body []byte) string {
	const maxLen = 120
	s := string(body)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
