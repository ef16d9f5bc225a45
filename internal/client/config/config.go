package config

import "time"

// Config holds runtime settings for the admin CLI.
//
// Fields:
//   - APIURL: base URL of the REST API.
//   - HealthAddr: host:port of the gRPC health endpoint.
//   - RequestTimeout: bound on every store call, including the reload that
//     follows a move.
//   - Retries: extra attempts for idempotent requests that hit an
//     unavailable server.
//   - Language: initial session language.
type Config struct {
	APIURL         string        `env:"TOURSITE_ADMIN_API_URL"`
	HealthAddr     string        `env:"TOURSITE_ADMIN_HEALTH_ADDR"`
	RequestTimeout time.Duration `env:"TOURSITE_ADMIN_TIMEOUT"`
	Retries        int           `env:"TOURSITE_ADMIN_RETRIES"`
	Language       string        `env:"TOURSITE_ADMIN_LANG"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.Retries = 2
	c.Language = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
