// Package api is the client for the habits REST collection endpoint:
//
//	GET    {base}/habits       -> [{_id, name, status}]
//	POST   {base}/habits       {name, status} -> {_id, name, status}
//	PUT    {base}/habits/{id}  {status}
//	DELETE {base}/habits/{id}
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"habitual/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:3000/api"
	DefaultTimeout = 10 * time.Second

	RequestIDHeader = "X-Request-ID"

	// Bodies we don't read are drained up to this size so the connection can be reused.
	drainLimit = 64 << 10
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	breaker *Breaker
	newID   func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBreaker installs a circuit breaker. A nil breaker disables short-circuiting.
func WithBreaker(b *Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zap.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Breaker() *Breaker { return c.breaker }

func (c *Client) List(ctx context.Context) ([]model.Habit, error) {
	var out []model.Habit
	if err := c.do(ctx, "list habits", http.MethodGet, "/habits", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Habit{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, name string, status model.Status) (model.Habit, error) {
	body := struct {
		Name   string       `json:"name"`
		Status model.Status `json:"status"`
	}{Name: name, Status: status}

	var out model.Habit
	if err := c.do(ctx, "create habit", http.MethodPost, "/habits", body, &out); err != nil {
		return model.Habit{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return model.Habit{}, fmt.Errorf("create habit: response has no _id: %w", ErrNotImplemented)
	}
	return out, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	body := struct {
		Status model.Status `json:"status"`
	}{Status: status}
	return c.do(ctx, "update habit", http.MethodPut, "/habits/"+url.PathEscape(id), body, nil)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete habit", http.MethodDelete, "/habits/"+url.PathEscape(id), nil, nil)
}

// do issues one request. When out is non-nil a 2xx body must decode into it;
// anything else is reported as ErrNotImplemented.
func (c *Client) do(ctx context.Context, op, method, path string, in any, out any) error {
	return c.breaker.Execute(func() error {
		var body io.Reader
		if in != nil {
			b, err := json.Marshal(in)
			if err != nil {
				return fmt.Errorf("%s: encode: %w", op, err)
			}
			body = bytes.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reqID := c.newID()
		req.Header.Set("Accept", "application/json")
		req.Header.Set(RequestIDHeader, reqID)
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Debug("request failed",
				zap.String("op", op),
				zap.String("request_id", reqID),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err),
			)
			return fmt.Errorf("%s: %w", op, err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
			_ = resp.Body.Close()
		}()

		c.log.Debug("request done",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
		)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return statusErr(op, resp)
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode: %v: %w", op, err, ErrNotImplemented)
		}
		return nil
	})
}
