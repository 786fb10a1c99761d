package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"surfcast-api/internal/domain/usecase/weather"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
)

// TaskLock is satisfied by *redis.Lock
type TaskLock interface {
	Lock(ctx context.Context) error
	AutoRefresh(ctx context.Context) <-chan error
}

// RefreshSchedulerConfig holds configuration for the refresh scheduler
type RefreshSchedulerConfig struct {
	CronExpression string
	// Timeout bounds one run of the scheduled task
	Timeout time.Duration
}

// RefreshScheduler periodically refreshes stale locations. With a lock only the instance holding it schedules.
type RefreshScheduler struct {
	cron    *cron.Cron
	useCase weather.UseCase
	lock    TaskLock
	config  RefreshSchedulerConfig
}

func NewRefreshScheduler(useCase weather.UseCase, lock TaskLock, config RefreshSchedulerConfig) *RefreshScheduler {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Minute
	}
	return &RefreshScheduler{
		cron:    cron.New(),
		useCase: useCase,
		lock:    lock,
		config:  config,
	}
}

// InitRefreshScheduleTasks starts the scheduler in background until ctx is done or the lock is lost
func (s *RefreshScheduler) InitRefreshScheduleTasks(ctx context.Context) {
	go s.run(ctx)
}

func (s *RefreshScheduler) run(ctx context.Context) {
	var lost <-chan error
	if s.lock != nil {
		if err := s.lock.Lock(ctx); err != nil {
			log.Warn(msg.GetMessage("schedule.refresh.lock.failure"), zap.Error(err))
			return
		}
		lost = s.lock.AutoRefresh(ctx)
	}

	if _, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask); err != nil {
		log.Error(msg.GetMessage("schedule.refresh.invalid-cron", s.config.CronExpression), zap.Error(err))
		return
	}
	s.cron.Start()
	log.Info(msg.GetMessage("schedule.refresh.started", s.config.CronExpression))

	var err error
	select {
	case <-ctx.Done():
	case err = <-lost:
	}
	s.Stop()

	if err != nil {
		log.Error(msg.GetMessage("schedule.refresh.lock.lost"), zap.Error(err))
		return
	}
	log.Info(msg.GetMessage("schedule.refresh.stopped"))
}

// ExecuteScheduledTask refreshes every stale location once
func (s *RefreshScheduler) ExecuteScheduledTask() {
	requestID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	log.Info(msg.GetMessage("schedule.refresh.triggered"), zap.String("request_id", requestID))
	if _, err := s.useCase.RefreshAllStale(ctx, requestID); err != nil {
		log.Error(msg.GetMessage("forecast.refresh-all.failure"), zap.String("request_id", requestID), zap.Error(err))
	}
}

// Stop waits for a running task to finish
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}
