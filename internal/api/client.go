package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
)

// DefaultBaseURL is used when no API base URL is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// The anti-forgery header is sourced from the same-named cookie the API sets.
const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

// TokenStore is where the bearer token lives between requests.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	ClearToken() error
}

// MemoryTokens is a TokenStore that only lives as long as the process.
type MemoryTokens struct {
	mu    sync.RWMutex
	token string
}

func (m *MemoryTokens) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *MemoryTokens) SetToken(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokens) ClearToken() error {
	return m.SetToken("")
}

// Client is the single point of contact with the remote API for one visitor.
// It keeps the visitor's backend cookies (session, csrftoken) in its own jar.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport. A cookie jar is attached when the given
// client has none, since the anti-forgery header depends on it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		copied := *hc
		if copied.Jar == nil {
			copied.Jar = c.httpClient.Jar
		}
		c.httpClient = &copied
	}
}

// WithCookieJar replaces the client's in-memory jar, for instance with one
// that persists the backend session.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		if jar == nil {
			return
		}
		copied := *c.httpClient
		copied.Jar = jar
		c.httpClient = &copied
	}
}

// WithTokenStore shares a token store with the caller (normally the session container).
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithUnauthorizedHandler registers the hook that runs after a 401 cleared the token.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient builds a gateway for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		tokens:     &MemoryTokens{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens exposes the token store the client reads from.
func (c *Client) Tokens() TokenStore { return c.tokens }

// do performs one call. Transport errors come back untouched; HTTP errors come
// back as *Error. The only side effect on failure is the global 401 teardown.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	// 1. --- Build the request ---
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// 2. --- Attach bearer + anti-forgery headers ---
	c.authorize(req)

	// 3. --- Send ---
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 4. --- Global 401 handling ---
	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := newError(resp)
		c.handleUnauthorized()
		return apiErr
	}
	if resp.StatusCode >= 300 {
		return newError(resp)
	}

	// 5. --- Decode ---
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.httpClient.Jar == nil {
		return
	}
	for _, cookie := range c.httpClient.Jar.Cookies(req.URL) {
		if cookie.Name != CSRFCookieName {
			continue
		}
		value := cookie.Value
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		req.Header.Set(CSRFHeaderName, value)
		return
	}
}

func (c *Client) handleUnauthorized() {
	if err := c.tokens.ClearToken(); err != nil {
		log.Printf("api: failed to clear token after 401: %v", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
