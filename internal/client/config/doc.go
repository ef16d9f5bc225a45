// Package config loads runtime configuration for the toursite admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. TOURSITE_ADMIN_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string     base URL of the REST API
//	-g string     address:port of the gRPC health endpoint
//	-t duration   per-request timeout
//	-l string     session language (en, id, ru)
//
// # JSON schema
//
//	{
//	  "api_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "retries": 2,
//	  "language": "en"
//	}
package config
