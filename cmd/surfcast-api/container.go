package main

import (
	"context"
	"fmt"
	"time"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"surfcast-api/internal/domain/gateway/api"
	"surfcast-api/internal/domain/gateway/cache"
	"surfcast-api/internal/domain/gateway/db"
	"surfcast-api/internal/domain/gateway/queue"
	"surfcast-api/internal/domain/usecase/health"
	"surfcast-api/internal/domain/usecase/location"
	"surfcast-api/internal/domain/usecase/weather"
	"surfcast-api/internal/infra/aws"
	infracache "surfcast-api/internal/infra/cache"
	database "surfcast-api/internal/infra/database/gorm"
	"surfcast-api/pkg/http"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/redis"
	"surfcast-api/pkg/resource"
)

// container owns the infrastructure clients and the use cases built on them
type container struct {
	db          *gorm.DB
	redisClient *redis.Client
	sqsClient   *awssqs.Client
	notifier    queue.ChangeNotifier
	queueHealth *queue.QueueHealthGateway

	locationUseCase location.UseCase
	weatherUseCase  weather.UseCase
	healthUseCase   health.UseCase
}

func newContainer(ctx context.Context) (*container, error) {
	c := &container{queueHealth: queue.NewQueueHealthGateway()}

	conn, err := database.Open(database.ConfigFromProperties())
	if err != nil {
		return nil, err
	}
	c.db = conn

	locationGateway := db.NewGormLocationGateway(conn)
	if err := locationGateway.Migrate(ctx); err != nil {
		c.Close()
		return nil, err
	}

	var (
		spotIDCache  api.SpotIDCache
		limiter      api.RateLimiter
		redisChecker cache.RedisChecker
		queueSender  queue.Sender
	)
	c.notifier = queue.NewLocalChangeNotifier()

	if resource.GetBool("app.redis.enabled") {
		c.redisClient, err = infracache.Connect(ctx, infracache.ConfigFromProperties())
		if err != nil {
			c.Close()
			return nil, err
		}
		spotIDCache = redis.NewCache(c.redisClient, redis.NewCacheOptions(infracache.SpotIDCacheName))
		rateLimiter, err := redis.NewRateLimiter(c.redisClient, "surfline",
			redis.NewRateLimiterOptions(resource.GetInt("app.providers.surfline.rate-per-minute")).WithWindow(time.Minute))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create surfline rate limiter: %w", err)
		}
		limiter = rateLimiter
		redisChecker = redis.NewHealthChecker(c.redisClient, 2*time.Second)
		c.notifier = queue.NewRedisChangeNotifier(c.redisClient)
	}

	if resource.GetBool("app.queue.enabled") {
		settings := aws.SettingsFromProperties()
		awsConfig, err := aws.LoadConfig(ctx, settings)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.sqsClient = aws.NewSqsClient(awsConfig, settings.Endpoint)
		queueSender = aws.NewSQSSenderAdapter(c.sqsClient)
	}

	clientOptions := func(name string) http.ClientOptions {
		return http.ClientOptions{
			ReadTimeout: resource.GetDuration("app.providers.timeout"),
			Backoff:     http.NewBackoffConfig(),
			Logger:      http.NewZapHTTPLogger(name),
		}
	}
	openMeteo := api.NewOpenMeteoGateway(
		resource.GetString("app.providers.open-meteo.marine-url"),
		resource.GetString("app.providers.open-meteo.forecast-url"),
		resource.GetInt("app.providers.open-meteo.forecast-days"),
		clientOptions("open-meteo"),
	)
	surfline := api.NewSurflineGateway(
		resource.GetString("app.providers.surfline.url"),
		resource.GetInt("app.providers.surfline.days"),
		clientOptions("surfline"),
		spotIDCache,
		limiter,
	)

	clock := clockwork.NewRealClock()
	providers := weather.Providers{
		Marine:      openMeteo,
		Atmospheric: openMeteo,
		Tides:       surfline,
		Ratings:     surfline,
		SurfHeights: surfline,
	}

	c.locationUseCase = location.NewLocationUseCase(locationGateway, c.notifier, clock)
	c.weatherUseCase = weather.NewWeatherUseCase(resource.GetString("app.queue.refresh-queue"), queueSender, providers,
		locationGateway, c.notifier, clock)
	c.healthUseCase = health.NewHealthUseCase(db.NewGormHealthDBGateway(conn),
		cache.NewRedisHealthCacheGateway(redisChecker), c.queueHealth)

	return c, nil
}

func (c *container) Close() {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			log.Warnf("failed to close redis client: %v", err)
		}
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
