package app

import (
	"github.com/yungbote/publisher-backend/internal/http"
	httpH "github.com/yungbote/publisher-backend/internal/http/handlers"
	"github.com/yungbote/publisher-backend/internal/observability"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Media       *httpH.MediaHandler
	Post        *httpH.PostHandler
	Publication *httpH.PublicationHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Media:       httpH.NewMediaHandler(services.Media),
		Post:        httpH.NewPostHandler(services.Post),
		Publication: httpH.NewPublicationHandler(services.Publication),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		ServiceName:        cfg.Otel.ServiceName,
		CORSOrigins:        cfg.CORSOrigins,
		MediaHandler:       handlers.Media,
		PostHandler:        handlers.Post,
		PublicationHandler: handlers.Publication,
		HealthHandler:      handlers.Health,
	}, ":"+cfg.Port)
}
