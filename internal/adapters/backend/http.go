package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/httpx"
	"trucklogix-service/internal/ports"
)

var (
	_ ports.RouteBackend  = (*Client)(nil)
	_ ports.EldLogBackend = (*Client)(nil)
	_ ports.RouteBackend  = (*MockBackend)(nil)
	_ ports.EldLogBackend = (*MockBackend)(nil)
)

// APIError is a non-2xx answer from the backend. Message is the backend's
// {"error": ...} text when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// Client talks to the TruckLogix routing and log history API.
// It is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	backoff time.Duration
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		backoff: 200 * time.Millisecond,
	}, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	path string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := httpx.Do(c.session, req)
	return resp, asAPIError(err)
}

// doWithRetry retries transient failures with exponential backoff.
// Only idempotent requests go through here.
func (c *Client) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	resp, err := httpx.DoWithRetry(ctx, c.session, c.backoff, makeReq)
	return resp, asAPIError(err)
}

// asAPIError rewrites an HTTP status failure as *APIError, pulling the
// "error" field out of the body and falling back to "HTTP <code>".
func asAPIError(err error) error {
	var se *httpx.StatusError
	if !errors.As(err, &se) {
		return err
	}

	msg := fmt.Sprintf("HTTP %d", se.Code)
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal([]byte(se.Body), &payload) == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Detail != "":
			msg = payload.Detail
		}
	}

	return &APIError{Status: se.Code, Message: msg}
}

// getJSON issues a retried GET and decodes the body into out.
// A 404 is reported as domain.ErrNotFound.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return notFound(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sendJSON issues a single, unretried request with an optional JSON body.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return notFound(err)
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func notFound(err error) error {
	var ae *APIError
	if errors.As(err, &ae) && ae.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, ae.Message)
	}
	return err
}
