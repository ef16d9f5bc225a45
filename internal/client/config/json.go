package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/toursite/internal/flagx"
	"github.com/dmitrijs2005/toursite/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	APIURL         string         `json:"api_url"`
	HealthAddr     string         `json:"health_addr"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	Retries        *int           `json:"retries"`
	Language       string         `json:"language"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Missing keys keep their current values; read or decode errors
// panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	if jc.HealthAddr != "" {
		cfg.HealthAddr = jc.HealthAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Retries != nil {
		cfg.Retries = *jc.Retries
	}
	if jc.Language != "" {
		cfg.Language = jc.Language
	}
}
