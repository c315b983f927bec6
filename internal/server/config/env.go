package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/jobportal/internal/flagx"
)

// parseEnv loads envFile (if it exists) into the process environment without
// overriding variables that are already set, then overlays Config from:
//
//	PORT                 HTTP port, becomes ":PORT"
//	HTTP_ADDR            full bind address, wins over PORT
//	LOG_LEVEL
//	STORAGE_DRIVER       mongo | postgres
//	MONGO_URI, MONGO_DATABASE
//	DATABASE_DSN
//	JWT_SECRET
//	SESSION_TTL          Go duration, e.g. "24h"
//	PASSWORD_HASH_COST
//	COOKIE_SECURE        true/false
//	ALLOWED_ORIGINS      comma-separated
//	AUTH_RATE_LIMIT      requests per second
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v, ok := lookup("PORT"); ok {
		config.EndpointAddrHTTP = ":" + v
	}
	envString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.StorageDriver, "STORAGE_DRIVER")
	envString(&config.MongoURI, "MONGO_URI")
	envString(&config.MongoDatabase, "MONGO_DATABASE")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "JWT_SECRET")

	if v, ok := lookup("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		config.SessionTokenValidityDuration = d
	}
	if v, ok := lookup("PASSWORD_HASH_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PASSWORD_HASH_COST: %w", err)
		}
		config.PasswordHashCost = n
	}
	if v, ok := lookup("COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = b
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = flagx.SplitList(v)
	}
	if v, ok := lookup("AUTH_RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("AUTH_RATE_LIMIT: %w", err)
		}
		config.AuthRateLimit = f
	}

	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}
