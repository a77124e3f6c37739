package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/publisher-backend/internal/http/handlers"
	httpMW "github.com/yungbote/publisher-backend/internal/http/middleware"
	"github.com/yungbote/publisher-backend/internal/observability"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	MediaHandler       *httpH.MediaHandler
	PostHandler        *httpH.PostHandler
	PublicationHandler *httpH.PublicationHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "publisher"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Medias
	if cfg.MediaHandler != nil {
		r.POST("/medias", cfg.MediaHandler.Create)
		r.GET("/medias", cfg.MediaHandler.List)
		r.GET("/medias/:id", cfg.MediaHandler.Get)
		r.PUT("/medias/:id", cfg.MediaHandler.Update)
		r.DELETE("/medias/:id", cfg.MediaHandler.Delete)
	}

	// Posts
	if cfg.PostHandler != nil {
		r.POST("/posts", cfg.PostHandler.Create)
		r.GET("/posts", cfg.PostHandler.List)
		r.GET("/posts/:id", cfg.PostHandler.Get)
		r.PUT("/posts/:id", cfg.PostHandler.Update)
		r.DELETE("/posts/:id", cfg.PostHandler.Delete)
	}

	// Publications
	if cfg.PublicationHandler != nil {
		r.POST("/publications", cfg.PublicationHandler.Create)
		r.GET("/publications", cfg.PublicationHandler.List)
		r.GET("/publications/:id", cfg.PublicationHandler.Get)
		r.PUT("/publications/:id", cfg.PublicationHandler.Update)
		r.DELETE("/publications/:id", cfg.PublicationHandler.Delete)
	}

	return r
}
