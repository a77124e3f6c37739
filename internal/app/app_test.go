package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg := LoadConfig(nil)
	if cfg.Port != "9090" || cfg.DBDriver != "sqlite" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("cache ttl: want=30s got=%v", cfg.CacheTTL)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("METRICS_ENABLED=false ignored")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.Otel.SampleRatio != 0.25 || cfg.Otel.Enabled {
		t.Fatalf("otel config: %+v", cfg.Otel)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout default: %v", cfg.ShutdownTimeout)
	}
}

func TestNewFailureLeavesNoTracerProvider(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER", "stdout")

	if _, err := New(); err == nil {
		t.Fatalf("New: expected unknown driver error")
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); ok {
		t.Fatalf("failed start installed a tracer provider")
	}
}

func TestNewServesWithSQLite(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "publisher.yaml")
	yaml := "db_driver: sqlite\nsqlite_path: " + filepath.Join(dir, "publisher.db") + "\nport: 18080\n"
	if err := os.WriteFile(cfgFile, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	// Keys exported from the file are not tracked by t.Setenv.
	t.Cleanup(func() {
		for _, k := range []string{"DB_DRIVER", "SQLITE_PATH", "PORT"} {
			_ = os.Unsetenv(k)
		}
	})
	t.Setenv("CONFIG_FILE", cfgFile)
	t.Setenv("LOG_MODE", "test")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "")

	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
	}()

	if a.Cfg.DBDriver != "sqlite" || a.Cfg.Port != "18080" {
		t.Fatalf("config file not applied: %+v", a.Cfg)
	}

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status=%d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/medias", strings.NewReader(`{"title":"Acme","username":"acme1"}`))
	req.Header.Set("Content-Type", "application/json")
	a.Server.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create media through wired app: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := openDatabase(nil, Config{DBDriver: "mysql"})
	if err == nil || !strings.Contains(err.Error(), "mysql") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}
