package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type upstream struct {
	route Route
	proxy *httputil.ReverseProxy
}

// Gateway dispatches requests to upstream services by longest matching
// path prefix and aggregates their health.
type Gateway struct {
	upstreams    []upstream
	healthClient *http.Client
	logger       *zap.Logger
}

func New(routes []Route, logger *zap.Logger) (*Gateway, error) {
	upstreams := make([]upstream, 0, len(routes))
	for _, route := range routes {
		target, err := url.Parse(route.Upstream)
		if err != nil {
			return nil, fmt.Errorf("parsing upstream %s: %w", route.Upstream, err)
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("upstream unreachable",
				zap.String("upstream", route.Upstream),
				zap.String("path", r.URL.Path),
				zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": "upstream unavailable"})
		}
		upstreams = append(upstreams, upstream{route: route, proxy: proxy})
	}

	// Longest prefix wins, so /merchant/shops never falls into a bare
	// /merchant route shadowed by a more specific one.
	sort.Slice(upstreams, func(i, j int) bool {
		return len(upstreams[i].route.Prefix) > len(upstreams[j].route.Prefix)
	})

	return &Gateway{
		upstreams:    upstreams,
		healthClient: &http.Client{Timeout: 5 * time.Second},
		logger:       logger,
	}, nil
}

func (g *Gateway) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/health", g.handleHealth)
	router.NotFound(g.dispatch)
	return router
}

func (g *Gateway) dispatch(w http.ResponseWriter, r *http.Request) {
	for _, u := range g.upstreams {
		if !matchesPrefix(r.URL.Path, u.route.Prefix) {
			continue
		}
		http.StripPrefix(u.route.Prefix, u.proxy).ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "no route for path"})
}

func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, "/")
}

type serviceHealth struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	services := make([]serviceHealth, len(g.upstreams))
	var wg sync.WaitGroup
	for i, u := range g.upstreams {
		wg.Add(1)
		go func(i int, u upstream) {
			defer wg.Done()
			services[i] = serviceHealth{
				Name:   u.route.Name,
				Status: g.checkUpstream(ctx, u.route.Upstream),
			}
		}(i, u)
	}
	wg.Wait()

	status := "healthy"
	code := http.StatusOK
	for _, s := range services {
		if s.Status != "healthy" {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   status,
		"services": services,
	})
}

func (g *Gateway) checkUpstream(ctx context.Context, base string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return "unknown"
	}

	resp, err := g.healthClient.Do(req)
	if err != nil {
		return "unhealthy"
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return "healthy"
	}
	return "unhealthy"
}
