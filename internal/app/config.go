package app

import (
	"strings"
	"time"

	"github.com/yungbote/publisher-backend/internal/observability"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
	"github.com/yungbote/publisher-backend/internal/utils"
)

type Config struct {
	Port            string
	Environment     string
	DBDriver        string
	SQLitePath      string
	RedisAddr       string
	CacheTTL        time.Duration
	MetricsEnabled  bool
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	Otel            observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	environment := utils.GetEnv("APP_ENV", "development", log)
	dbDriver := strings.ToLower(strings.TrimSpace(utils.GetEnv("DB_DRIVER", "postgres", log)))
	sqlitePath := utils.GetEnv("SQLITE_PATH", "publisher.db", log)
	redisAddr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	cacheTTLSeconds := utils.GetEnvAsInt("CACHE_TTL_SECONDS", 300, log)
	metricsEnabled := utils.GetEnvAsBool("METRICS_ENABLED", true, log)
	shutdownSeconds := utils.GetEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10, log)

	var origins []string
	for _, o := range strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:            port,
		Environment:     environment,
		DBDriver:        dbDriver,
		SQLitePath:      sqlitePath,
		RedisAddr:       redisAddr,
		CacheTTL:        time.Duration(cacheTTLSeconds) * time.Second,
		MetricsEnabled:  metricsEnabled,
		CORSOrigins:     origins,
		ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
		Otel: observability.OtelConfig{
			Enabled:     utils.GetEnvAsBool("OTEL_ENABLED", false, log),
			ServiceName: utils.GetEnv("OTEL_SERVICE_NAME", "publisher", log),
			Environment: environment,
			Version:     utils.GetEnv("APP_VERSION", "dev", log),
			Exporter:    utils.GetEnv("OTEL_EXPORTER", "otlp", log),
			Endpoint:    utils.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318", log),
			Insecure:    utils.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			SampleRatio: utils.GetEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0, log),
		},
	}
}
