package cache

import (
	"context"

	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/redis"
)

// RedisChecker is satisfied by *redis.HealthChecker
type RedisChecker interface {
	Check(ctx context.Context) redis.HealthCheck
}

type RedisHealthCacheGateway struct {
	checker RedisChecker
}

var _ HealthCacheGateway = (*RedisHealthCacheGateway)(nil)

// NewRedisHealthCacheGateway reports UNKNOWN when checker is nil, which is the case when redis is disabled
func NewRedisHealthCacheGateway(checker RedisChecker) *RedisHealthCacheGateway {
	return &RedisHealthCacheGateway{checker: checker}
}

func (gateway *RedisHealthCacheGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	if gateway.checker == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "Cache disabled"},
		}
	}

	check := gateway.checker.Check(ctx)
	status := model.StatusDown
	switch check.Status {
	case redis.StatusUp:
		status = model.StatusUp
	case redis.StatusUnknown:
		status = model.StatusUnknown
	}
	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}
