package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 4096

// Error is a failed gateway call. StatusCode 0 means the gateway was not
// reachable at all.
type Error struct {
	StatusCode int
	Message    string
	Endpoint   string
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("backend unreachable: %s: %v", e.Endpoint, e.Cause)
		}
		return "backend unreachable: " + e.Endpoint
	}
	if e.Message != "" {
		return fmt.Sprintf("backend status=%d endpoint=%s body=%s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("backend status=%d endpoint=%s", e.StatusCode, e.Endpoint)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *Error) Unreachable() bool {
	return e != nil && e.StatusCode == 0
}

// StatusOf extracts the gateway status carried by err.
func StatusOf(err error) (int, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.StatusCode, true
	}
	return 0, false
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx; every gateway call made
// with that context forwards it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

func tokenFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(tokenKey{}).(string)
	return v
}

type Client struct {
	baseURL    string
	accountURL string
	client     *http.Client
	logger     *log.Logger
}

func NewClient(baseURL, accountURL string, timeout time.Duration, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountURL: strings.TrimRight(strings.TrimSpace(accountURL), "/"),
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// doJSON sends body (if any) as JSON and decodes a 2xx response into out
// (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any, out any) error {
	var rdr io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, endpoint, rdr, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp.Body, out)
}

func decodeBody(r io.Reader, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, r)
		return nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

// send performs the request and returns the response only when it is 2xx.
// The caller owns resp.Body.
func (c *Client) send(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	if c == nil {
		return nil, &Error{Endpoint: endpoint, Cause: errors.New("nil backend client")}
	}
	if c.client == nil {
		return nil, &Error{Endpoint: endpoint, Cause: errors.New("nil http client")}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if tok := tokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Backend] %s %s unreachable: %v", method, endpoint, err)
		}
		return nil, &Error{Endpoint: endpoint, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Backend] %s %s error status=%d body=%q", method, endpoint, resp.StatusCode, bodyStr)
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: bodyStr, Endpoint: endpoint}
	}

	return resp, nil
}
