package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "surfcast-api/docs"
	"surfcast-api/internal/application/controller"
	"surfcast-api/internal/application/middleware"
	"surfcast-api/internal/application/processor"
	"surfcast-api/internal/application/schedule"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
	"surfcast-api/pkg/redis"
	"surfcast-api/pkg/resource"
	"surfcast-api/pkg/sqs"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, the refresh scheduler and the refresh queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	log.Info(msg.GetMessage("app.start"))

	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	// Init Controller
	healthController := controller.NewHealthController(api, c.healthUseCase)
	locationController := controller.NewLocationController(api, c.locationUseCase, c.notifier)
	weatherController := controller.NewWeatherController(api, c.weatherUseCase)

	// Init Routes
	healthController.InitHealthRoutes()
	locationController.InitLocationRoutes()
	weatherController.InitWeatherRoutes()
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	var background sync.WaitGroup

	// Init Schedule
	if resource.GetBool("app.schedule.refresh.enabled") {
		var lock schedule.TaskLock
		if c.redisClient != nil {
			lock = redis.NewScheduledTaskLock(c.redisClient, "refresh-stale-locations",
				resource.GetDuration("app.schedule.refresh.lock-ttl"),
				resource.GetDuration("app.schedule.refresh.refresh-interval"),
				resource.GetString("app.redis.namespace"))
		}
		refreshScheduler := schedule.NewRefreshScheduler(c.weatherUseCase, lock, schedule.RefreshSchedulerConfig{
			CronExpression: resource.GetString("app.schedule.refresh.cron"),
			Timeout:        resource.GetDuration("app.schedule.refresh.timeout"),
		})
		refreshScheduler.InitRefreshScheduleTasks(ctx)
	}

	// Init Worker
	if c.sqsClient != nil {
		queueName := resource.GetString("app.queue.refresh-queue")
		worker, err := sqs.NewWorker(ctx, c.sqsClient, queueName, processor.NewRefreshProcessor(c.weatherUseCase),
			&sqs.WorkerConfig{PoolSize: resource.GetInt("app.queue.pool-size")})
		if err != nil {
			log.Error(msg.GetMessage("processor.worker.failure", queueName), zap.Error(err))
		} else {
			c.queueHealth.RegisterWorker(queueName, worker)
			background.Add(1)
			go func() {
				defer background.Done()
				log.Info(msg.GetMessage("processor.worker.started", queueName))
				worker.Start(ctx)
			}()
		}
	}

	// Start Routes
	port := resource.GetString("app.server.port")
	serverErr := make(chan error, 1)
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	cancelRun()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn("failed to shut down http server", zap.Error(shutdownErr))
	}
	background.Wait()
	log.Info(msg.GetMessage("app.stopped"))

	return err
}
