package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tochoprime/league-console/internal/config"
	"github.com/tochoprime/league-console/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		PhoneRegion:        "MX",
		ReconcileInterval:  time.Hour,
		ReconcileWorkers:   2,
	}
}

func TestNew_MemoryStorageServesSeedData(t *testing.T) {
	app, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Scheduler != nil {
		t.Fatalf("expected no scheduler when reconcile is disabled")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing seasons, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNew_ReconcileEnabledBuildsScheduler(t *testing.T) {
	cfg := memoryConfig()
	cfg.ReconcileEnabled = true

	app, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Scheduler == nil {
		t.Fatalf("expected scheduler when reconcile is enabled")
	}
	_ = app.Scheduler.Stop()
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
