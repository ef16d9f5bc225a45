package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/toursite/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     REST bind address (e.g., ":8080")
//	-g string     gRPC bind address (e.g., ":50051")
//	-r string     database driver: pgx or sqlite
//	-d string     database DSN
//	-o string     allowed CORS origins
//	-m string     SMTP host
//	-n string     booking notification recipient
//	-i duration   promotion sweep interval (e.g., "30s")
//	-l string     log level
//
// Only the flags listed above are picked out of os.Args, so the -c/-config
// flag and unrelated arguments do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-r", "-d", "-o", "-m", "-n", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to serve the REST API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to serve gRPC health")
	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CORSOrigins, "o", config.CORSOrigins, "allowed CORS origins")
	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.StringVar(&config.BookingNotifyTo, "n", config.BookingNotifyTo, "booking notification recipient")
	fs.DurationVar(&config.PromotionSweepInterval, "i", config.PromotionSweepInterval, "promotion sweep interval")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
