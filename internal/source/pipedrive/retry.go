package pipedrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// RemoteError is a non-2xx response from the CRM.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: status %d", e.Status)
}

// Retryable reports whether the response indicates a transient condition.
// 5xx and 429 are transient; any other 4xx is a request defect and is
// surfaced immediately.
func (e *RemoteError) Retryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// retryClient issues one logical GET with bounded exponential backoff.
// Each attempt gets its own timeout; all attempts of one call share an
// overall call timeout.
type retryClient struct {
	http           *http.Client
	apiToken       string
	attemptTimeout time.Duration
	callTimeout    time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func (c *retryClient) getJSON(ctx context.Context, url string, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.attempt(callCtx, url, out)
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}
		if attempt == c.maxAttempts {
			break
		}

		backoff := c.backoff(attempt)
		c.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-callCtx.Done():
			return fmt.Errorf("call budget exhausted: %w", callCtx.Err())
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *retryClient) attempt(ctx context.Context, url string, out any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "DealSyncer/1.0")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *retryClient) backoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func retryable(err error) bool {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Retryable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	// Attempt timeouts and transport-level failures are transient. The
	// overall call timeout is enforced by the backoff select.
	return true
}
