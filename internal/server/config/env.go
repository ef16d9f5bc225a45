package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays TOURSITE_* environment variables. Unset variables leave
// the current values alone. Malformed values panic, like a broken JSON file.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
