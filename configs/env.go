package configs

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"surfcast-api/pkg/resource"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
}

var Env *EnvConfig

func init() {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()
	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "surfcast-api"),
		ContextPath:     getStringOrDefault("CONTEXT_PATH", "/surfcast"),
	}

	registerDefaults()
}

// registerDefaults keeps the service bootable when application.yml is absent
func registerDefaults() {
	defaults := map[string]any{
		"app.server.port":                        "8080",
		"app.server.context-path":                Env.ContextPath,
		"app.log.level":                          "info",
		"app.db.driver":                          "sqlite",
		"app.db.dsn":                             "surfcast.db",
		"app.db.log-level":                       "warn",
		"app.redis.enabled":                      false,
		"app.redis.host":                         "localhost",
		"app.redis.port":                         6379,
		"app.redis.namespace":                    "surfcast",
		"app.queue.enabled":                      false,
		"app.queue.refresh-queue":                "location-refresh",
		"app.queue.pool-size":                    2,
		"app.providers.open-meteo.marine-url":    "https://marine-api.open-meteo.com",
		"app.providers.open-meteo.forecast-url":  "https://api.open-meteo.com",
		"app.providers.open-meteo.forecast-days": 7,
		"app.providers.surfline.url":             "https://services.surfline.com",
		"app.providers.surfline.days":            5,
		"app.providers.surfline.rate-per-minute": 60,
		"app.providers.timeout":                  "20s",
		"app.schedule.refresh.enabled":           true,
		"app.schedule.refresh.cron":              "0 */3 * * *",
		"app.schedule.refresh.lock-ttl":          "10m",
		"app.schedule.refresh.refresh-interval":  "1m",
		"app.schedule.refresh.timeout":           "10m",
		"app.cache.spot-id-ttl":                  "720h",
	}
	for key, value := range defaults {
		resource.SetDefault(key, value)
	}
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
