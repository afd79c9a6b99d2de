package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	retry "github.com/appleboy/go-httpretry"
	"github.com/google/uuid"
)

// Client is the authenticated HTTP client for the todo-web backend. It
// attaches the current access token to every request and, when the server
// rejects a token with 401, transparently refreshes it: at most one refresh
// call is in flight at any time, callers that fail while a refresh is
// underway wait for its outcome, and every waiting caller replays its
// original request once the new token is stored.
//
// A 401 from the refresh endpoint itself is never retried; it means the
// session is gone.
type Client struct {
	baseURL string
	http    *retry.Client
	tokens  *TokenStore

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
	onExpired  func()
}

// NewClient creates a client for the backend at baseURL. The retry client
// carries the transport configuration (TLS, keep-alives, cookie jar).
func NewClient(baseURL string, hc *retry.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    hc,
		tokens:  &TokenStore{},
	}
}

// Tokens returns the client's token store.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// OnSessionExpired registers fn to run once per failed refresh, after the
// token store has been cleared. The UI layer uses it to return to the login
// screen.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

// Get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs an authenticated POST with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch performs an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do runs one JSON round trip. The request body is marshaled up front so the
// exact same bytes can be resent after a token refresh.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	status, respBody, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	// A 401 only means "expired access token" when a token was attached.
	// Unauthenticated calls (login with bad credentials) surface it as-is,
	// and the refresh endpoint never retries itself.
	if status == http.StatusUnauthorized && path != URIAuthRefresh && c.tokens.Get() != nil {
		if err := c.awaitRefresh(ctx); err != nil {
			return err
		}
		// Replay the original request; send attaches the fresh token.
		status, respBody, err = c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return newStatusError(status, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// send issues a single decorated request and reads the full response body.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if tok := c.tokens.Get(); tok != nil {
		tok.SetAuthHeader(req)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// awaitRefresh serializes token refreshes. The first caller performs the
// refresh call; concurrent callers join a waiter list and block until the
// in-flight refresh settles. Each waiter is settled exactly once with the
// shared outcome. On failure the token store is cleared and the
// session-expired hook fires before any waiter is released.
func (c *Client) awaitRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case err := <-ch:
			if err != nil {
				return fmt.Errorf("%w: %v", ErrSessionExpired, err)
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	refreshErr := c.refreshToken(ctx)
	if refreshErr != nil {
		c.tokens.Clear()
	}

	c.mu.Lock()
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	onExpired := c.onExpired
	c.mu.Unlock()

	if refreshErr != nil && onExpired != nil {
		onExpired()
	}
	for _, ch := range waiters {
		ch <- refreshErr
	}

	if refreshErr != nil {
		return fmt.Errorf("%w: %v", ErrSessionExpired, refreshErr)
	}
	return nil
}

// refreshToken calls the refresh endpoint and stores the new access token.
// The refresh credential travels as a cookie, so the request has no body.
// Because the path is the refresh endpoint, a 401 here surfaces directly
// from do instead of recursing.
func (c *Client) refreshToken(ctx context.Context) error {
	var ar AuthResponse
	if err := c.do(ctx, http.MethodPost, URIAuthRefresh, nil, &ar); err != nil {
		return err
	}
	c.tokens.Set(ar.Token())
	return nil
}
