package queue

import (
	"strconv"
	"sync"

	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/sqs"
)

type QueueHealthGateway struct {
	workers map[string]WorkerHealthChecker
	mutex   sync.RWMutex
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway() *QueueHealthGateway {
	return &QueueHealthGateway{workers: make(map[string]WorkerHealthChecker)}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker WorkerHealthChecker) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

// Health is UNKNOWN without workers and DOWN as soon as one registered worker is down
func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	total := len(gateway.workers)
	if total == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "No refresh worker registered", "workers_total": "0"},
		}
	}

	details := map[string]string{}
	down := 0
	for name, worker := range gateway.workers {
		health := worker.HealthCheck()
		if health.Status != sqs.StatusUp {
			down++
		}
		details[name+"_status"] = string(health.Status)
		for key, value := range health.Details {
			details[name+"_"+key] = value
		}
	}
	details["workers_total"] = strconv.Itoa(total)
	details["workers_up"] = strconv.Itoa(total - down)
	details["workers_down"] = strconv.Itoa(down)

	status := model.StatusUp
	if down > 0 {
		status = model.StatusDown
	}
	return model.ComponentHealthStatus{Status: status, Details: details}
}
