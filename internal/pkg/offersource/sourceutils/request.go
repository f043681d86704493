package sourceutils

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

// BaseBackoff is the first retry delay; it doubles on every attempt.
var BaseBackoff = 200 * time.Millisecond

// RequestFunc builds a fresh request for every attempt.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// FetchJSON executes the request built by newRequest and decodes the JSON body
// into out. Transport errors, 429 and 5xx responses are retried with
// exponential backoff up to maxRetries; other 4xx responses fail immediately.
func FetchJSON(ctx context.Context, client *http.Client, source string, maxRetries int,
	newRequest RequestFunc, out interface{},
) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: base * 2^(attempt-1)
			backoff := BaseBackoff * time.Duration(1<<(attempt-1))
			slog.InfoContext(ctx, "retrying with exponential backoff", "source", source,
				"backoff", backoff, "next_attempt", attempt+1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
			}
		}

		err := fetchOnce(ctx, client, newRequest, out)
		if err == nil {
			return nil
		}

		lastErr = err
		slog.WarnContext(ctx, "failed to call source API", "source", source,
			"attempt", attempt+1, "error", err)

		if !isRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("failed to get %s data after %d attempts: %w", source, maxRetries+1, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, newRequest RequestFunc, out interface{}) error {
	req, err := newRequest(ctx)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", parseError{err})
	}

	return nil
}

func statusError(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("status %s: %w", resp.Status, ErrSourceUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("status %s: %w", resp.Status, ErrSourceRateLimitExceeded)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("status %s: %w", resp.Status, ErrSourceInternalError)
	default:
		return fmt.Errorf("status %s: %w", resp.Status, ErrSourceBadRequest)
	}
}

type parseError struct {
	err error
}

func (e parseError) Error() string { return e.err.Error() }

func (e parseError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var pe parseError
	switch {
	case errors.As(err, &pe):
		return false
	case errors.Is(err, ErrSourceUnauthorized), errors.Is(err, ErrSourceBadRequest):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	return true
}
