package health

import (
	"context"
	"sync"

	"surfcast-api/internal/domain/gateway/cache"
	"surfcast-api/internal/domain/gateway/db"
	"surfcast-api/internal/domain/gateway/queue"
	"surfcast-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cacheGateway cache.HealthCacheGateway
	queueGateway queue.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.HealthCacheGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		cacheGateway: cacheGateway,
		queueGateway: queueGateway,
	}
}

// CheckHealth checks the components in parallel. UNKNOWN components do not bring the service down.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var (
		wg          sync.WaitGroup
		dbHealth    model.ComponentHealthStatus
		cacheHealth model.ComponentHealthStatus
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		dbHealth = useCase.dbGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}()
	queueHealth := useCase.queueGateway.Health()
	wg.Wait()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, cacheHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Queue:    queueHealth,
	}
}
