package cache

import (
	"context"

	"surfcast-api/internal/domain/model"
)

type HealthCacheGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
