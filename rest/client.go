package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sentirsebien/go-client/internal/config"
	errs "github.com/sentirsebien/go-client/internal/errors"
)

// TokenProvider supplies the current in-memory access token used to sign
// requests. An empty string means no bearer header is attached.
type TokenProvider interface {
	AccessToken() string
}

// TokenRefresher exchanges the stored refresh token for a new access token.
// The session controller implements this; on failure it has already torn the
// session down before returning.
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Client issues JSON requests against the configured API origin. It attaches
// the bearer header on the way out and, on the first 401 of a logical
// request, runs one refresh-and-retry cycle through the registered
// TokenRefresher. Interceptor behaviour is fixed at construction; callers
// never register their own.
type Client struct {
	baseURL    string // origin, no trailing slash
	prefix     string // API prefix, leading slash, no trailing slash
	httpClient *http.Client

	provider  TokenProvider
	refresher TokenRefresher

	// refreshMu serializes refresh cycles so a burst of concurrent 401s
	// results in a single call to the refresh endpoint.
	refreshMu sync.Mutex
}

// New creates a client for the configured base URL and API prefix.
func New(cfg config.Config) (*Client, error) {
	base := cfg.GetBaseURL()
	if _, err := url.Parse(base); err != nil || base == "" {
		return nil, errors.Errorf("[rest.New] invalid base URL %q", base)
	}
	return &Client{
		baseURL:    base,
		prefix:     cfg.GetAPIPrefix(),
		httpClient: &http.Client{Timeout: cfg.GetHTTPTimeout()},
	}, nil
}

// SetAuth registers the token source and refresher. The session controller
// calls this once during its own construction.
func (c *Client) SetAuth(provider TokenProvider, refresher TokenRefresher) {
	c.provider = provider
	c.refresher = refresher
}

// URL returns the absolute URL for an API path, for links handed to the
// user (web payment page, invoice downloads).
func (c *Client) URL(path string) string {
	return c.baseURL + c.prefix + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	options := applyOptions(opts)

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, "[Client.do] marshal body")
		}
	}

	accessToken := ""
	if !options.noAuth {
		accessToken = c.accessToken()
	}

	resp, err := c.send(ctx, method, path, payload, accessToken)
	if err != nil {
		return err
	}

	// One refresh-and-retry cycle per logical request. A second 401, or a
	// 401 on a request that opted out, propagates untouched.
	if resp.StatusCode == http.StatusUnauthorized && !options.noRetry && !options.noAuth && c.refresher != nil {
		firstErr := readStatusError(resp)

		freshToken, refreshErr := c.refreshAfter401(ctx, accessToken)
		if refreshErr != nil {
			// The refresher has already transitioned the session to
			// anonymous; hand the original 401 back to the caller.
			log.Debug().Str("path", path).Err(refreshErr).Msg("token refresh after 401 failed")
			return firstErr
		}

		if resp, err = c.send(ctx, method, path, payload, freshToken); err != nil {
			return err
		}
	}

	return decodeResponse(resp, out)
}

// refreshAfter401 runs at most one refresh for a burst of concurrent 401s.
// A caller whose stale token was already replaced while it waited reuses the
// fresh token instead of triggering a second refresh call.
func (c *Client) refreshAfter401(ctx context.Context, staleToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.accessToken(); current != "" && current != staleToken {
		return current, nil
	}
	return c.refresher.Refresh(ctx)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.send] build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, errs.Wrapf(errs.ErrNetwork, "%s %s: %s", method, path, err.Error())
	}
	return resp, nil
}

func (c *Client) accessToken() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.AccessToken()
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return newStatusError(resp.StatusCode, resp.Body)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "[Client.do] decode response")
	}
	return nil
}

// readStatusError consumes and closes the response body, returning the
// status as an error.
func readStatusError(resp *http.Response) error {
	defer resp.Body.Close()
	return newStatusError(resp.StatusCode, resp.Body)
}
