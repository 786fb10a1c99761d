package cache

import (
	"context"
	"fmt"

	"surfcast-api/pkg/redis"
	"surfcast-api/pkg/resource"
)

// SpotIDCacheName is the cache holding surf spot ids by compacted location title
const SpotIDCacheName = "spot_id"

// ConfigFromProperties reads the app.redis.* and app.cache.* properties
func ConfigFromProperties() *redis.Config {
	config := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database"))

	if namespace := resource.GetString("app.redis.namespace"); namespace != "" {
		config.WithKeyNamespace(namespace)
	}
	if ttl := resource.GetDuration("app.cache.spot-id-ttl"); ttl > 0 {
		config.WithCacheTTL(SpotIDCacheName, ttl)
	}
	return config
}

// Connect creates the client and checks the server answers
func Connect(ctx context.Context, config *redis.Config) (*redis.Client, error) {
	client, err := redis.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", config.Addr(), err)
	}
	return client, nil
}
