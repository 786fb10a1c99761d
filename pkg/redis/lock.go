package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned when releasing or refreshing a lock owned by someone else.
var ErrLockNotHeld = errors.New("lock was not held by this client")

// ErrLockNotAcquired is returned when every acquisition attempt found the lock taken.
var ErrLockNotAcquired = errors.New("lock not acquired")

var (
	unlockScript = redis.NewScript(`
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		end
		return 0
	`)
	refreshScript = redis.NewScript(`
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("PEXPIRE", KEYS[1], ARGV[2])
		end
		return 0
	`)
)

// LockOptions represents options for distributed lock operations
type LockOptions struct {
	// TTL is the time the lock survives without refresh
	TTL time.Duration
	// RetryDelay is the wait between acquisition attempts
	RetryDelay time.Duration
	// MaxRetries is the number of extra attempts after the first one
	MaxRetries int
	// RefreshInterval is used by AutoRefresh
	RefreshInterval time.Duration
	// LockNamespace groups lock keys, stored as <LockNamespace>::<key>
	LockNamespace string
}

// NewLockOptions returns options with a 30s TTL and no retries
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		RefreshInterval: 10 * time.Second,
		LockNamespace:   "locks",
	}
}

func (lo *LockOptions) WithTTL(ttl time.Duration) *LockOptions {
	if ttl <= 0 {
		panic(fmt.Sprintf("invalid TTL: %v, must be positive", ttl))
	}
	lo.TTL = ttl
	return lo
}

func (lo *LockOptions) WithRetryDelay(delay time.Duration) *LockOptions {
	lo.RetryDelay = delay
	return lo
}

func (lo *LockOptions) WithMaxRetries(maxRetries int) *LockOptions {
	lo.MaxRetries = maxRetries
	return lo
}

func (lo *LockOptions) WithRefreshInterval(interval time.Duration) *LockOptions {
	if interval <= 0 {
		panic(fmt.Sprintf("invalid refresh interval: %v, must be positive", interval))
	}
	lo.RefreshInterval = interval
	return lo
}

func (lo *LockOptions) WithLockNamespace(namespace string) *LockOptions {
	lo.LockNamespace = namespace
	return lo
}

// Lock represents a distributed lock identified by a random owner token
type Lock struct {
	client *Client
	key    string
	token  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		token:  uuid.NewString(),
		opts:   opts,
	}
}

// NewScheduledTaskLock creates a lock meant to be held for the life of a scheduler,
// kept alive with AutoRefresh.
func NewScheduledTaskLock(client *Client, key string, ttl, refreshInterval time.Duration, namespace string) *Lock {
	opts := NewLockOptions().
		WithTTL(ttl).
		WithRefreshInterval(refreshInterval).
		WithLockNamespace(namespace)
	return NewLock(client, key, opts)
}

// Key returns the full redis key of the lock
func (l *Lock) Key() string {
	key := l.key
	if l.opts.LockNamespace != "" {
		key = l.opts.LockNamespace + "::" + key
	}
	return l.client.config.namespaced(key)
}

// TryLock makes a single acquisition attempt
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.client.client.SetNX(ctx, l.Key(), l.token, l.opts.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return ok, nil
}

// Lock acquires the lock, retrying up to MaxRetries times
func (l *Lock) Lock(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		ok, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if attempt >= l.opts.MaxRetries {
			return fmt.Errorf("%w after %d attempts", ErrLockNotAcquired, attempt+1)
		}

		timer := time.NewTimer(l.opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Unlock releases the lock if it is still owned by this instance
func (l *Lock) Unlock(ctx context.Context) error {
	n, err := unlockScript.Run(ctx, l.client.client, []string{l.Key()}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh resets the TTL of an owned lock
func (l *Lock) Refresh(ctx context.Context) error {
	n, err := refreshScript.Run(ctx, l.client.client, []string{l.Key()}, l.token, l.opts.TTL.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// AutoRefresh refreshes the lock every RefreshInterval until ctx is done or a refresh fails.
// The returned channel receives exactly one value: the refresh error, or nil on cancellation.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					if ctx.Err() != nil {
						errChan <- nil
						return
					}
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}
