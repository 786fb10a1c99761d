package redis

import (
	"context"
	"strconv"
	"time"
)

// HealthStatus represents the health status
type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// HealthCheck is the result of a redis health check
type HealthCheck struct {
	Status  HealthStatus
	Latency time.Duration
	Details map[string]string
}

// HealthChecker pings redis and reports pool statistics
type HealthChecker struct {
	client  *Client
	timeout time.Duration
}

func NewHealthChecker(client *Client, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthChecker{client: client, timeout: timeout}
}

// Check pings redis within the checker timeout
func (h *HealthChecker) Check(ctx context.Context) HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	started := time.Now()
	err := h.client.Ping(ctx)
	latency := time.Since(started)

	stats := h.client.client.PoolStats()
	details := map[string]string{
		"addr":        h.client.config.Addr(),
		"latency":     latency.String(),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
	}

	if err != nil {
		details["message"] = err.Error()
		return HealthCheck{Status: StatusDown, Latency: latency, Details: details}
	}
	details["message"] = string(StatusUp)
	return HealthCheck{Status: StatusUp, Latency: latency, Details: details}
}
