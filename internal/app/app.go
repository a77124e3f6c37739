package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/http"
	"github.com/yungbote/publisher-backend/internal/observability"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
	"github.com/yungbote/publisher-backend/internal/utils"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	store         database
	otelShutdown  func(context.Context) error
	cancelMetrics context.CancelFunc
}

func New() (*App, error) {
	// The overlay has to land before LOG_MODE is read.
	if err := utils.LoadEnvFile(os.Getenv("CONFIG_FILE"), nil); err != nil {
		return nil, err
	}

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	store, err := openDatabase(log, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := store.DB()

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	// Nothing below can fail once tracing starts.
	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel)

	metrics := observability.Init(log, cfg.MetricsEnabled)
	metricsCtx, cancelMetrics := context.WithCancel(context.Background())
	metrics.RegisterDB(log, theDB, cfg.DBDriver)
	if cfg.RedisAddr != "" {
		metrics.StartRedisCollector(metricsCtx, log, clients.LookupCache, 15*time.Second)
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, clients)
	handlerset := wireHandlers(log, serviceset)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Log:           log,
		DB:            theDB,
		Server:        server,
		Cfg:           cfg,
		Clients:       clients,
		Repos:         reposet,
		Services:      serviceset,
		Metrics:       metrics,
		store:         store,
		otelShutdown:  otelShutdown,
		cancelMetrics: cancelMetrics,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "port", a.Cfg.Port)
	return a.Server.Run()
}

// Shutdown stops accepting requests, drains in-flight ones, flushes spans and
// releases the database and redis connections.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if a.cancelMetrics != nil {
		a.cancelMetrics()
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("otel shutdown: %w", err))
		}
	}
	if err := a.Clients.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close clients: %w", err))
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
