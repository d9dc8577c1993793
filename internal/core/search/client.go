package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultEndpoint is the backend route used when none is configured.
const DefaultEndpoint = "http://127.0.0.1:8000/api/v1/find_medications/"

const (
	defaultTimeout     = 30 * time.Second
	defaultInitialWait = 500 * time.Millisecond
	maxResponseBytes   = 16 << 20
)

var (
	// ErrInvalidResponse is returned when the backend answers with a body
	// that does not match the response schema.
	ErrInvalidResponse = errors.New("invalid backend response")
	// ErrEmptyText is returned for requests without text.
	ErrEmptyText = errors.New("text is required")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Code, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// HTTPClient implements Client against the backend's JSON API.
type HTTPClient struct {
	Endpoint    string
	HTTPClient  *http.Client
	Retries     int           // additional attempts after the first
	InitialWait time.Duration // first backoff delay, doubled per retry
	Logger      zerolog.Logger
}

var _ Client = (*HTTPClient)(nil)

// Find posts req to the backend. Transport failures and 5xx responses are
// retried with exponential backoff; 4xx and malformed bodies are not.
func (c *HTTPClient) Find(ctx context.Context, req Request) (Result, error) {
	if req.Text == "" {
		return Result{}, ErrEmptyText
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	wait := c.InitialWait
	if wait <= 0 {
		wait = defaultInitialWait
	}

	attempts := max(c.Retries, 0) + 1
	for i := 0; ; i++ {
		res, err := c.do(ctx, body)
		if err == nil {
			c.Logger.Info().Ctx(ctx).
				Int("drugs", len(res.Drugs)).
				Int("attempt", i+1).
				Msg("backend search complete")
			return res, nil
		}

		if !retryable(err) || i+1 >= attempts {
			return Result{}, err
		}

		c.Logger.Warn().Ctx(ctx).Err(err).
			Int("attempt", i+1).
			Dur("backoff", wait).
			Msg("backend search failed, retrying")

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}

func (c *HTTPClient) do(ctx context.Context, body []byte) (Result, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &StatusError{Code: resp.StatusCode, Body: truncate(string(data), 200)}
	}

	return decodeResult(data)
}

// decodeResult validates data against the response schema and decodes it.
func decodeResult(data []byte) (Result, error) {
	schema, err := responseSchema()
	if err != nil {
		return Result{}, fmt.Errorf("compile response schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if err := schema.Validate(doc); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return res, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrInvalidResponse) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
