// Package cms talks to the headless content API that backs the club site.
// It owns the request plumbing (bearer tokens, timeouts, the 401 hook) and
// the response normalization that shields the rest of the service from the
// API's two historical envelope shapes.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/pawnsgambit/club-api/internal/notify"
)

const defaultTimeout = 10 * time.Second

// Config carries the connection settings for the content API.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:1337/api".
	BaseURL string
	// MediaURL prefixes relative upload paths, e.g. "http://localhost:1337".
	MediaURL string
	// APIToken is the static read token sent when no user token applies.
	APIToken string
	// Timeout bounds each request; defaultTimeout when zero.
	Timeout time.Duration
	// CacheTTL enables in-process caching of single-entry lookups when > 0.
	CacheTTL time.Duration
}

// TokenSource supplies a per-user bearer token. An empty return falls back
// to the static API token.
type TokenSource func() string

// Client is the HTTP client for the content API.
type Client struct {
	http     *http.Client
	baseURL  string
	mediaURL string
	apiToken string
	cache    *gocache.Cache
	bus      *notify.Bus
	log      *zap.Logger

	tokenSource    TokenSource
	onUnauthorized func()
}

func New(cfg Config, bus *notify.Bus, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	var cache *gocache.Cache
	if cfg.CacheTTL > 0 {
		cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		mediaURL: strings.TrimRight(cfg.MediaURL, "/"),
		apiToken: cfg.APIToken,
		cache:    cache,
		bus:      bus,
		log:      log,
	}
}

// SetTokenSource installs the per-user token supplier. The session manager
// binds its stored token here so every call authenticates as the signed-in
// user.
func (c *Client) SetTokenSource(src TokenSource) {
	c.tokenSource = src
}

// SetUnauthorizedHook installs a callback invoked once per 401 response,
// after the auth-error notification is published.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// GetList fetches a collection and returns it normalized, preserving order.
func (c *Client) GetList(ctx context.Context, path string, q *Query) ([]Record, error) {
	body, err := c.getBody(ctx, path, q, "")
	if err != nil {
		return nil, err
	}
	_, list, isList := Normalize(body, c.mediaURL)
	if !isList {
		return nil, nil
	}
	return list, nil
}

// GetOne fetches a single entry and returns it normalized. Lookups are
// served from the in-process cache when one is configured.
func (c *Client) GetOne(ctx context.Context, path string, q *Query) (Record, error) {
	key := path
	if q != nil {
		key += "?" + q.Encode()
	}
	if c.cache != nil {
		if x, found := c.cache.Get(key); found {
			return x.(Record), nil
		}
	}

	body, err := c.getBody(ctx, path, q, "")
	if err != nil {
		return nil, err
	}
	one, _, _ := Normalize(body, c.mediaURL)
	if one != nil && c.cache != nil {
		c.cache.Set(key, one, gocache.DefaultExpiration)
	}
	return one, nil
}

// PutData issues a partial update, wrapping data in the API's {data: ...}
// request envelope, and returns the updated entry normalized.
func (c *Client) PutData(ctx context.Context, path string, data map[string]any) (Record, error) {
	return c.writeData(ctx, http.MethodPut, path, data)
}

// PostData creates an entry, wrapping data in the {data: ...} envelope.
func (c *Client) PostData(ctx context.Context, path string, data map[string]any) (Record, error) {
	return c.writeData(ctx, http.MethodPost, path, data)
}

// PostJSON sends body as-is and decodes the raw response into out. The auth
// endpoints use this: their responses are not enveloped.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, "", body, out, "")
}

// PostJSONAs is PostJSON authenticated as the given bearer token.
func (c *Client) PostJSONAs(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, "", body, out, token)
}

// GetJSONAs fetches path as the given bearer token, decoding the raw
// response into out.
func (c *Client) GetJSONAs(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out, token)
}

func (c *Client) writeData(ctx context.Context, method, path string, data map[string]any) (Record, error) {
	var body map[string]any
	err := c.do(ctx, method, path, "", map[string]any{"data": data}, &body, "")
	if err != nil {
		return nil, err
	}
	one, _, _ := Normalize(body, c.mediaURL)
	return one, nil
}

func (c *Client) getBody(ctx context.Context, path string, q *Query, token string) (map[string]any, error) {
	rawQuery := ""
	if q != nil {
		rawQuery = q.Encode()
	}
	var body map[string]any
	if err := c.do(ctx, http.MethodGet, path, rawQuery, nil, &body, token); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path, rawQuery string, body, out any, token string) error {
	url := c.baseURL + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cms: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.bearer(token); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("content api rejected credentials", zap.String("path", path))
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		if c.bus != nil {
			c.bus.Publish(notify.TopicAuthError)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cms: decode response: %w", err)
	}
	return nil
}

// bearer picks the token for a request: explicit override, then the
// installed token source, then the static API token.
func (c *Client) bearer(override string) string {
	if override != "" {
		return override
	}
	if c.tokenSource != nil {
		if tok := c.tokenSource(); tok != "" {
			return tok
		}
	}
	return c.apiToken
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Name = body.Error.Name
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
