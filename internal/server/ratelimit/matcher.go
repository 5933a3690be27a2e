package ratelimit

import (
	"strings"
)

var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/static/" matches "/static/app.js").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health check and static assets are unlimited
	if method == "GET" && (path == "/health" || strings.HasPrefix(path, "/static/")) {
		u := unlimited
		return &u
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	// No match found
	return nil
}
