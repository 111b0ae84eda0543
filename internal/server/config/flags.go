package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/umkmhub/marketplace/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-l string   gRPC health bind address
//	-e string   environment ("development" or "production")
//	-b string   store backend ("postgres", "mongo", "memory")
//	-d string   PostgreSQL DSN
//	-m string   MongoDB URI
//	-s string   admin token signing secret
//	-t int      admin session validity, minutes
//	-r string   Redis address for customer sessions
//
// os.Args is filtered with flagx.FilterArgs first so that flags owned by
// other layers (the config file, go test) never reach this FlagSet.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-e", "-b", "-d", "-m", "-s", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.HealthAddrGRPC, "l", config.HealthAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "mongo URI")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "admin token secret")
	adminSessionValidity := fs.Int("t", int(config.AdminSessionValidity.Minutes()), "admin session validity (in minutes)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AdminSessionValidity = time.Duration(*adminSessionValidity) * time.Minute
}
