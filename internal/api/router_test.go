package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/virtgraph/vgcore/internal/api"
	"github.com/virtgraph/vgcore/internal/safety"
)

func TestNewRouter_HealthRouteReachableWithoutDatabase(t *testing.T) {
	t.Parallel()

	deps := &api.RouterDeps{
		Log:         testLogger(),
		Pool:        nil,
		Limits:      safety.DefaultLimits(),
		CORSOrigins: []string{"http://localhost:3000"},
		Version:     "test",
	}

	handler := api.NewRouter(context.Background(), deps)

	req, _ := http.NewRequest(http.MethodGet, "/v1/health", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_MetricsRouteRegistered(t *testing.T) {
	t.Parallel()

	deps := &api.RouterDeps{
		Log:         testLogger(),
		Pool:        nil,
		Limits:      safety.DefaultLimits(),
		CORSOrigins: []string{"http://localhost:3000"},
		Version:     "test",
	}

	handler := api.NewRouter(context.Background(), deps)

	req, _ := http.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
