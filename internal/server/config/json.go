package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/toursite/internal/flagx"
	"github.com/dmitrijs2005/toursite/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "1m" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr               string         `json:"http_addr"`
	GRPCAddr               string         `json:"grpc_addr"`
	DatabaseDriver         string         `json:"database_driver"`
	DatabaseDSN            string         `json:"database_dsn"`
	CORSOrigins            string         `json:"cors_origins"`
	SMTPHost               string         `json:"smtp_host"`
	SMTPPort               int            `json:"smtp_port"`
	SMTPUser               string         `json:"smtp_user"`
	SMTPPassword           string         `json:"smtp_password"`
	SMTPFrom               string         `json:"smtp_from"`
	BookingNotifyTo        string         `json:"booking_notify_to"`
	PromotionSweepInterval timex.Duration `json:"promotion_sweep_interval"`
	DefaultPageSize        int            `json:"default_page_size"`
	MaxPageSize            int            `json:"max_page_size"`
	ShutdownTimeout        timex.Duration `json:"shutdown_timeout"`
	LogLevel               string         `json:"log_level"`
}

// parseJson loads values from the JSON file named by -c/-config. Keys that
// are missing from the file keep their current values. An unreadable or
// malformed file panics.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.CORSOrigins, c.CORSOrigins)
	setString(&config.SMTPHost, c.SMTPHost)
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
	setString(&config.BookingNotifyTo, c.BookingNotifyTo)
	setString(&config.LogLevel, c.LogLevel)

	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.DefaultPageSize != 0 {
		config.DefaultPageSize = c.DefaultPageSize
	}
	if c.MaxPageSize != 0 {
		config.MaxPageSize = c.MaxPageSize
	}
	if c.PromotionSweepInterval.Duration != 0 {
		config.PromotionSweepInterval = c.PromotionSweepInterval.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
