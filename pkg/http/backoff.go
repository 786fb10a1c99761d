package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"
)

// BackoffConfig controls retries of failed requests with exponential delay.
type BackoffConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// RetryOn decides whether a status code is retryable. Defaults to 429 and 5xx.
	RetryOn func(status int) bool
}

// NewBackoffConfig returns a backoff with 3 retries starting at 200ms.
func NewBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:   3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	}
}

// WithMaxRetries sets the number of retries after the first attempt.
func (b *BackoffConfig) WithMaxRetries(maxRetries int) *BackoffConfig {
	b.MaxRetries = maxRetries
	return b
}

// WithInitialDelay sets the delay before the first retry.
func (b *BackoffConfig) WithInitialDelay(delay time.Duration) *BackoffConfig {
	b.InitialDelay = delay
	return b
}

// WithMaxDelay caps the delay between retries.
func (b *BackoffConfig) WithMaxDelay(delay time.Duration) *BackoffConfig {
	b.MaxDelay = delay
	return b
}

func (b *BackoffConfig) delay(retry int) time.Duration {
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	d := time.Duration(float64(b.InitialDelay) * math.Pow(multiplier, float64(retry)))
	if b.MaxDelay > 0 && d > b.MaxDelay {
		return b.MaxDelay
	}
	return d
}

func (b *BackoffConfig) retryable(a attempt) bool {
	if a.err == nil {
		return false
	}
	if errors.Is(a.err, context.Canceled) || errors.Is(a.err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if !errors.As(a.err, &statusErr) {
		// transport failure, no status received
		return a.status == 0
	}
	if b.RetryOn != nil {
		return b.RetryOn(statusErr.StatusCode)
	}
	return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
}

// doRequestWithBackoff runs doRequest and retries retryable failures according to the client backoff.
// A nil backoff means a single attempt.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	backoff := hc.backoff

	result := hc.doRequest(ctx, method, path, queryParams, headers, successResp, errorResp)
	if backoff == nil {
		return result.successResp, result.errorResp, result.status, result.err
	}

	for retry := 0; retry < backoff.MaxRetries && backoff.retryable(result); retry++ {
		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, hc.buildURL(path), headers, "", result.status, result.respBody, 0, result.err, retry+1, backoff.MaxRetries)
		}

		timer := time.NewTimer(backoff.delay(retry))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, result.status, ctx.Err()
		case <-timer.C:
		}

		result = hc.doRequest(ctx, method, path, queryParams, headers, successResp, errorResp)
	}

	return result.successResp, result.errorResp, result.status, result.err
}
