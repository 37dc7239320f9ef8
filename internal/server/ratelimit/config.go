package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix starts every rate limit environment variable.
const EnvPrefix = "PROTOCOL_RATE_LIMIT_"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig is the configuration used when no environment is given.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from the environment.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom reads PROTOCOL_RATE_LIMIT_* variables through getenv.
func LoadConfigFrom(getenv func(string) string) *Config {
	env := envReader{getenv: getenv}
	if !env.bool("ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = env.int("DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = env.duration("DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = env.duration("CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(env.string("WHITELIST"))
	cfg.Blacklist = parseIPList(env.string("BLACKLIST"))

	generate := env.int("GENERATE_LIMIT", 0)
	for i := range cfg.EndpointConfigs {
		if generate > 0 && cfg.EndpointConfigs[i].Path == "/api/generate" {
			cfg.EndpointConfigs[i].Limit = generate
		}
	}
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// document writes and directory scans
		{Path: "/api/generate", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/contracts/update", Method: "POST", Limit: 6, Window: time.Minute, Burst: 2},

		// outbound weather lookups
		{Path: "/api/weather", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},

		{Path: "/api/preview", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/download/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) string(key string) string {
	return strings.TrimSpace(e.getenv(EnvPrefix + key))
}

func (e envReader) int(key string, def int) int {
	if v, err := strconv.Atoi(e.string(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if v, err := strconv.ParseBool(e.string(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(e.string(key)); err == nil {
		return v
	}
	return def
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
