package gateway

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"bazaar/internal/config"
)

// Route maps a path prefix to an upstream service. The prefix is
// stripped before forwarding, so upstreams serve their own paths.
type Route struct {
	Name     string `yaml:"name"`
	Prefix   string `yaml:"prefix"`
	Upstream string `yaml:"upstream"`
}

type routesFile struct {
	Routes []Route `yaml:"routes"`
}

// LoadRoutes reads the route table from a yaml file when one is
// configured, falling back to the three built-in services.
func LoadRoutes(cfg config.GatewayConfig) ([]Route, error) {
	if cfg.RoutesFile == "" {
		return DefaultRoutes(cfg), nil
	}

	data, err := os.ReadFile(cfg.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("reading routes file: %w", err)
	}

	var parsed routesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing routes file: %w", err)
	}
	if len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("routes file %s defines no routes", cfg.RoutesFile)
	}

	for i, route := range parsed.Routes {
		if route.Prefix == "" || route.Upstream == "" {
			return nil, fmt.Errorf("route %d is missing a prefix or upstream", i)
		}
	}
	return parsed.Routes, nil
}

func DefaultRoutes(cfg config.GatewayConfig) []Route {
	return []Route{
		{Name: "customer", Prefix: "/customer", Upstream: cfg.CustomerURL},
		{Name: "merchant", Prefix: "/merchant", Upstream: cfg.MerchantURL},
		{Name: "admin", Prefix: "/admin", Upstream: cfg.AdminURL},
	}
}
