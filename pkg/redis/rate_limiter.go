package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimited is returned by Acquire when the window is exhausted and waiting is disabled or timed out.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiterOptions configures a fixed-window limiter shared by every process using the same key
type RateLimiterOptions struct {
	// Limit is the number of permits per Window
	Limit int
	// Window is the window length, 1s by default
	Window time.Duration
	// WaitOnLimit makes Acquire block until a permit is free instead of failing
	WaitOnLimit bool
	// WaitTimeout bounds the time Acquire blocks when WaitOnLimit is set
	WaitTimeout time.Duration
	// RetryDelay is the polling interval while waiting
	RetryDelay time.Duration
}

func NewRateLimiterOptions(limit int) *RateLimiterOptions {
	return &RateLimiterOptions{
		Limit:       limit,
		Window:      time.Second,
		WaitOnLimit: true,
		WaitTimeout: 10 * time.Second,
		RetryDelay:  50 * time.Millisecond,
	}
}

func (o *RateLimiterOptions) WithWindow(window time.Duration) *RateLimiterOptions {
	o.Window = window
	return o
}

func (o *RateLimiterOptions) WithWaitOnLimit(wait bool) *RateLimiterOptions {
	o.WaitOnLimit = wait
	return o
}

func (o *RateLimiterOptions) WithWaitTimeout(timeout time.Duration) *RateLimiterOptions {
	o.WaitTimeout = timeout
	return o
}

func (o *RateLimiterOptions) Validate() error {
	if o.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", o.Limit)
	}
	if o.Window < time.Millisecond {
		return fmt.Errorf("window must be at least 1ms, got %v", o.Window)
	}
	return nil
}

// RateLimiter counts requests per time window in a redis key
type RateLimiter struct {
	client *Client
	key    string
	opts   *RateLimiterOptions
	now    func() time.Time
}

// NewRateLimiter creates a limiter identified by key
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		return nil, fmt.Errorf("rate limiter options are required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &RateLimiter{client: client, key: key, opts: opts, now: time.Now}, nil
}

func (rl *RateLimiter) windowKey(t time.Time) string {
	window := t.UnixMilli() / rl.opts.Window.Milliseconds()
	return rl.client.config.namespaced(fmt.Sprintf("rate_limiter::%s::%d", rl.key, window))
}

// Allow consumes a permit of the current window if one is left
func (rl *RateLimiter) Allow(ctx context.Context) (bool, error) {
	key := rl.windowKey(rl.now())

	pipe := rl.client.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, rl.opts.Window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment rate limiter: %w", err)
	}
	return incr.Val() <= int64(rl.opts.Limit), nil
}

// Acquire obtains a permit, waiting for the next window when WaitOnLimit is set
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	ok, err := rl.Allow(ctx)
	if err != nil || ok {
		return err
	}
	if !rl.opts.WaitOnLimit {
		return ErrRateLimited
	}

	waitCtx := ctx
	if rl.opts.WaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, rl.opts.WaitTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(rl.opts.RetryDelay)
	defer ticker.Stop()
	for {
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrRateLimited
		case <-ticker.C:
			ok, err := rl.Allow(waitCtx)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}
