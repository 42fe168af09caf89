package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/alumni/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-b string   storage backend: memory | postgres
//	-d string   PostgreSQL DSN
//	-k string   session backend: memory | redis
//	-r string   Redis address
//	-s string   session token HMAC secret
//	-t int      session validity, minutes
//
// os.Args is first filtered with flagx.FilterArgs so that -c, -env-file and
// flags of other components do not cause parse errors.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-k", "-r", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (memory|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionBackend, "k", config.SessionBackend, "session backend (memory|redis)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	return nil
}
