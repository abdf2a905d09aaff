package httpapi

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

	"github.com/google/uuid"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// Ensure Client implements the backend ports.
var (
	_ driven.CatalogAPI = (*Client)(nil)
	_ driven.ClosetAPI  = (*Client)(nil)
)

// Header and cookie names understood by the backend.
const (
	HeaderRequestID   = "X-Request-ID"
	SessionCookieName = "session_token"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 512

// Client talks to the catalogue backend.
type Client struct {
	http     *http.Client
	settings domain.APISettings
	limiter  *RateLimiter
	newID    func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRequestIDs replaces the X-Request-ID generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		c.newID = gen
	}
}

// NewClient creates a client for the backend described by settings.
// Empty endpoint paths fall back to the defaults.
func NewClient(settings domain.APISettings, opts ...Option) (*Client, error) {
	if settings.BaseURL == "" {
		settings.BaseURL = domain.DefaultBaseURL
	}
	if settings.SearchPath == "" {
		settings.SearchPath = domain.DefaultSearchPath
	}
	if settings.ClosetsPath == "" {
		settings.ClosetsPath = domain.DefaultClosetsPath
	}
	if settings.AddItemPath == "" {
		settings.AddItemPath = domain.DefaultAddItemPath
	}

	u, err := url.Parse(settings.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", domain.ErrInvalidInput, settings.BaseURL)
	}
	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")

	c := &Client{
		// Zero timeout keeps a request pending until it resolves or is
		// cancelled through its context.
		http:     &http.Client{Timeout: settings.Timeout},
		settings: settings,
		limiter:  NewRateLimiter(settings.RateLimit),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.settings.BaseURL
}

// SearchBar performs GET {search}?input=<text>.
func (c *Client) SearchBar(ctx context.Context, input string) (domain.SearchResult, error) {
	q := url.Values{}
	q.Set("input", input)

	var payload searchPayload
	if err := c.do(ctx, http.MethodGet, c.settings.SearchPath+"?"+q.Encode(), nil, &payload); err != nil {
		return domain.SearchResult{}, err
	}
	if !payload.sawKeys {
		return domain.SearchResult{}, fmt.Errorf("search %q: %w: no result fields", input, domain.ErrMalformedPayload)
	}

	return domain.SearchResult{
		Tags:   payload.Tags,
		Items:  payload.Items,
		Brands: payload.Brands,
	}.Normalise(), nil
}

// ListClosets performs GET {closets}.
func (c *Client) ListClosets(ctx context.Context) ([]domain.Closet, error) {
	var payload []closetPayload
	if err := c.do(ctx, http.MethodGet, c.settings.ClosetsPath, nil, &payload); err != nil {
		return nil, err
	}

	closets := make([]domain.Closet, 0, len(payload))
	for _, p := range payload {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("list closets: %w: closet without a name", domain.ErrMalformedPayload)
		}
		closets = append(closets, domain.Closet{Name: p.Name, Items: p.items})
	}
	return closets, nil
}

// CreateCloset performs POST {closets} {"closet_name": name}.
func (c *Client) CreateCloset(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, c.settings.ClosetsPath, closetNameBody{ClosetName: name}, nil)
}

// DeleteCloset performs DELETE {closets} {"closet_name": name}.
func (c *Client) DeleteCloset(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, c.settings.ClosetsPath, closetNameBody{ClosetName: name}, nil)
}

// AddItem performs POST {add_item} {"closet_name", "item", "brand"}.
func (c *Client) AddItem(ctx context.Context, closet string, item domain.ItemRef) error {
	body := addItemBody{ClosetName: closet, Item: item.Item, Brand: item.Brand}
	return c.do(ctx, http.MethodPost, c.settings.AddItemPath, body, nil)
}

// do sends a single request. in is JSON encoded when non-nil; out is
// decoded from a 2xx body when non-nil. Requests are never retried.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.settings.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	id := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, id)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.settings.SessionToken != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: c.settings.SessionToken})
	}

	logger.Debug("%s %s [%s]", method, path, id)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			// Surface the bare context error so callers can recognise it.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return context.Canceled
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, method, path, id); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrMalformedPayload, err)
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response, method, path, id string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	logger.Debug("%s %s [%s]: status %d: %s", method, path, id, resp.StatusCode, strings.TrimSpace(string(snippet)))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	case http.StatusTooManyRequests:
		c.limiter.Backoff(resp.Header.Get("Retry-After"))
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrRateLimited)
	default:
		return fmt.Errorf("%s %s: %w (status %d)", method, path, domain.ErrRequestFailed, resp.StatusCode)
	}
}
