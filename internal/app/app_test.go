package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/config"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:                config.EnvDev,
		ServiceName:           "cricket-auction-api",
		HTTPAddr:              ":0",
		CORSAllowedOrigins:    []string{"*"},
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		AccountBaseURL:        "http://localhost:8081",
		AccountIntrospectPath: "/v1/auth/introspect",
		AccountTimeout:        time.Second,
		AuctionTimerSeconds:   60,
		AuctionIncrementFloor: 50,
		MatchMaxOvers:         20,
	}
}

func TestNew_InMemoryWiring(t *testing.T) {
	application, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	if application.Server == nil || application.Hub == nil || application.Timekeeper == nil {
		t.Fatalf("expected server, hub and timekeeper to be wired")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected health status: %d", rec.Code)
	}
}

func TestNew_SeededAuctionSnapshot(t *testing.T) {
	application, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	req := httptest.NewRequest(http.MethodGet, "/v1/auction", nil)
	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected auction snapshot status: %d", rec.Code)
	}
}
