package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/flagx"
)

var knownFlags = []string{
	"-a", "-l", "-k", "-m", "-n", "-d", "-s", "-t", "-w", "-o", "-r",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags overlays Config from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-l string   log level
//	-k string   storage driver: mongo | postgres
//	-m string   MongoDB URI
//	-n string   MongoDB database name
//	-d string   PostgreSQL DSN
//	-s string   session token secret key
//	-t int      session token validity, minutes
//	-w int      bcrypt cost
//	-o string   comma-separated CORS origins
//	-r float    auth rate limit, requests per second per IP
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket (empty disables uploads)
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// Only these flags are looked at; everything else in args is ignored so the
// -c/-config flag and foreign flags do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.StorageDriver, "k", config.StorageDriver, "storage driver (mongo|postgres)")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionMinutes := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session token validity (in minutes)")
	fs.IntVar(&config.PasswordHashCost, "w", config.PasswordHashCost, "bcrypt cost")

	origins := flagx.StringList(config.AllowedOrigins)
	fs.Var(&origins, "o", "comma-separated CORS origins")
	fs.Float64Var(&config.AuthRateLimit, "r", config.AuthRateLimit, "auth rate limit per IP (req/s)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionTokenValidityDuration = time.Duration(*sessionMinutes) * time.Minute
		case "o":
			config.AllowedOrigins = []string(origins)
		}
	})
	return nil
}
