package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"bazaar/internal/config"
)

func echoUpstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"service": name, "path": r.URL.Path})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, routes []Route) http.Handler {
	t.Helper()
	gw, err := New(routes, zap.NewNop())
	if err != nil {
		t.Fatalf("gateway construction failed: %v", err)
	}
	return gw.Handler()
}

func TestDispatch_StripsPrefix(t *testing.T) {
	upstream := echoUpstream(t, "customer")
	handler := newTestGateway(t, []Route{
		{Name: "customer", Prefix: "/customer", Upstream: upstream.URL},
	})

	req := httptest.NewRequest(http.MethodGet, "/customer/api/shops", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["path"] != "/api/shops" {
		t.Errorf("the route prefix must be stripped, upstream saw %s", body["path"])
	}
}

func TestDispatch_LongestPrefixWins(t *testing.T) {
	general := echoUpstream(t, "general")
	specific := echoUpstream(t, "specific")
	handler := newTestGateway(t, []Route{
		{Name: "general", Prefix: "/merchant", Upstream: general.URL},
		{Name: "specific", Prefix: "/merchant/reports", Upstream: specific.URL},
	})

	req := httptest.NewRequest(http.MethodGet, "/merchant/reports/daily", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["service"] != "specific" {
		t.Errorf("expected the longer prefix to win, got %s", body["service"])
	}
}

func TestDispatch_PrefixMatchesOnBoundary(t *testing.T) {
	upstream := echoUpstream(t, "customer")
	handler := newTestGateway(t, []Route{
		{Name: "customer", Prefix: "/customer", Upstream: upstream.URL},
	})

	// /customers shares the byte prefix but is a different path segment.
	req := httptest.NewRequest(http.MethodGet, "/customers/api/shops", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a non-segment match, got %d", rec.Code)
	}
}

func TestDispatch_UnknownPath(t *testing.T) {
	handler := newTestGateway(t, []Route{
		{Name: "customer", Prefix: "/customer", Upstream: "http://127.0.0.1:0"},
	})

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["error"] == "" {
		t.Error("the 404 body must carry an error message")
	}
}

func TestHealth_AggregatesUpstreams(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(healthy.Close)
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	handler := newTestGateway(t, []Route{
		{Name: "customer", Prefix: "/customer", Upstream: healthy.URL},
		{Name: "merchant", Prefix: "/merchant", Upstream: failing.URL},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("one failing upstream must degrade the gateway, got %d", rec.Code)
	}
	var body struct {
		Status   string          `json:"status"`
		Services []serviceHealth `json:"services"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("expected degraded, got %s", body.Status)
	}
	if len(body.Services) != 2 {
		t.Fatalf("expected both upstreams reported, got %d", len(body.Services))
	}
}

func TestHealth_AllHealthy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(upstream.Close)

	handler := newTestGateway(t, []Route{
		{Name: "customer", Prefix: "/customer", Upstream: upstream.URL},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestDispatch_UnreachableUpstream(t *testing.T) {
	handler := newTestGateway(t, []Route{
		{Name: "customer", Prefix: "/customer", Upstream: "http://127.0.0.1:1"},
	})

	req := httptest.NewRequest(http.MethodGet, "/customer/api/shops", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestLoadRoutes_DefaultsWithoutFile(t *testing.T) {
	routes, err := LoadRoutes(config.GatewayConfig{
		CustomerURL: "http://localhost:8081",
		MerchantURL: "http://localhost:8082",
		AdminURL:    "http://localhost:8083",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("expected the three built-in routes, got %d", len(routes))
	}
	if routes[0].Prefix != "/customer" || routes[0].Upstream != "http://localhost:8081" {
		t.Errorf("unexpected first route: %+v", routes[0])
	}
}

func TestLoadRoutes_ReadsYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	content := `routes:
  - name: customer
    prefix: /shop
    upstream: http://localhost:9001
  - name: admin
    prefix: /back-office
    upstream: http://localhost:9002
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	routes, err := LoadRoutes(config.GatewayConfig{RoutesFile: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[1].Prefix != "/back-office" || routes[1].Upstream != "http://localhost:9002" {
		t.Errorf("unexpected second route: %+v", routes[1])
	}
}

func TestLoadRoutes_RejectsIncompleteRoute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	content := `routes:
  - name: broken
    prefix: /broken
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadRoutes(config.GatewayConfig{RoutesFile: path}); err == nil {
		t.Fatal("a route without an upstream must be rejected")
	}
}
