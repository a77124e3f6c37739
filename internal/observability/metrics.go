package observability

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests    *prometheus.CounterVec
	apiLatency     *prometheus.HistogramVec
	apiInflight    prometheus.Gauge
	ruleRejections *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	redisUp        prometheus.Gauge
	redisPing      prometheus.Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process-wide metrics, or nil when Init was never called
// with metrics enabled. Every method is safe on a nil receiver.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if log != nil {
			log.Info("prometheus metrics initialized")
		}
	})
	return instance
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "In-flight API requests.",
		}),
		ruleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_rule_rejections_total",
			Help: "Requests vetoed by a business rule, by entity and error code.",
		}, []string{"entity", "code"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lookup_cache_requests_total",
			Help: "Lookup cache reads by entity and result (hit/miss/error).",
		}, []string{"entity", "result"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "redis_up",
			Help: "1 when the last redis ping succeeded.",
		}),
		redisPing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "redis_ping_seconds",
			Help: "Latency of the last redis ping.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.ruleRejections,
		m.cacheLookups,
		m.redisUp,
		m.redisPing,
	)
	return m
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncRuleRejection(entity, code string) {
	if m == nil {
		return
	}
	m.ruleRejections.WithLabelValues(entity, code).Inc()
}

func (m *Metrics) IncCacheLookup(entity, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(entity, result).Inc()
}

// RegisterDB exports database/sql pool statistics for db.
func (m *Metrics) RegisterDB(log *logger.Logger, db *gorm.DB, name string) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	if err := m.registry.Register(collectors.NewDBStatsCollector(sqlDB, name)); err != nil && log != nil {
		log.Warn("metrics: db stats collector not registered", "error", err)
	}
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, p Pinger, interval time.Duration) {
	if m == nil || p == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := p.Ping(ctx); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
