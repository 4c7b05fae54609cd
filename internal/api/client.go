// Package api is the REST client for the story-publishing backend. The
// transport is an explicit interceptor chain (auth header injection,
// unauthorized handling) so cross-cutting behavior stays swappable and
// testable apart from the resource methods.
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
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "quill/1.0 (story platform client)"
)

// TokenSource supplies the current bearer token; an empty string means
// unauthenticated.
type TokenSource interface {
	Token() string
}

// Interceptor wraps a RoundTripper with cross-cutting behavior.
type Interceptor func(http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// AuthInterceptor injects an Authorization header when a token is present.
func AuthInterceptor(tokens TokenSource) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if tokens != nil {
				if token := tokens.Token(); token != "" {
					if !strings.HasPrefix(token, "Bearer ") {
						token = "Bearer " + token
					}
					req.Header.Set("Authorization", token)
				}
			}
			return next.RoundTrip(req)
		})
	}
}

// UnauthorizedInterceptor invokes onUnauthorized whenever the backend
// answers 401, after the response is returned to the caller's error
// mapping. Session teardown hangs off this hook.
func UnauthorizedInterceptor(onUnauthorized func()) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err == nil && resp.StatusCode == http.StatusUnauthorized && onUnauthorized != nil {
				onUnauthorized()
			}
			return resp, err
		})
	}
}

// Client talks to the backend REST API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	interceptors []Interceptor
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithInterceptor appends to the transport chain; interceptors run in
// registration order on the request path.
func WithInterceptor(i Interceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, i) }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := http.DefaultTransport
	for i := len(c.interceptors) - 1; i >= 0; i-- {
		transport = c.interceptors[i](transport)
	}
	c.httpClient.Transport = transport
	return c
}

// do performs a JSON request. body may be nil; out may be nil for
// responses whose body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart uploads a single file under the given form field.
func (c *Client) doMultipart(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("reading upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalizing multipart form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: req.URL.String(), Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
