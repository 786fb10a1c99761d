package queue

import (
	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/sqs"
)

// WorkerHealthChecker is satisfied by *sqs.Worker
type WorkerHealthChecker interface {
	HealthCheck() sqs.WorkerHealth
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerHealthChecker)
	UnregisterWorker(name string)
}
