package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server understands. Unset
// variables leave the current value untouched.
type EnvConfig struct {
	HTTPAddr                string        `env:"HTTP_ADDR"`
	HealthAddrGRPC          string        `env:"HEALTH_ADDR_GRPC"`
	Environment             string        `env:"APP_ENV"`
	PublicBaseURL           string        `env:"PUBLIC_BASE_URL"`
	LegacyPublicURL         string        `env:"NEXT_PUBLIC_API_URL"`
	StoreBackend            string        `env:"STORE_BACKEND"`
	DatabaseDSN             string        `env:"DATABASE_DSN"`
	MongoURI                string        `env:"MONGO_URI"`
	MongoDatabase           string        `env:"MONGO_DATABASE"`
	AdminUsername           string        `env:"ADMIN_USERNAME"`
	AdminPassword           string        `env:"ADMIN_PASSWORD"`
	SecretKey               string        `env:"JWT_SECRET"`
	AdminSessionValidity    time.Duration `env:"ADMIN_SESSION_VALIDITY"`
	CustomerSessionValidity time.Duration `env:"CUSTOMER_SESSION_VALIDITY"`
	RedisAddr               string        `env:"REDIS_ADDR"`
	RedisPassword           string        `env:"REDIS_PASSWORD"`
	GoogleClientID          string        `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret      string        `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL       string        `env:"GOOGLE_REDIRECT_URL"`
	S3RootUser              string        `env:"S3_ROOT_USER"`
	S3RootPassword          string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket                string        `env:"S3_BUCKET"`
	S3Region                string        `env:"S3_REGION"`
	S3BaseEndpoint          string        `env:"S3_BASE_ENDPOINT"`
	LogLevel                string        `env:"LOG_LEVEL"`
	LogFormat               string        `env:"LOG_FORMAT"`
}

// parseEnv overlays values from the process environment. A malformed value
// (for example an unparsable duration) panics.
func parseEnv(config *Config) {
	c := &EnvConfig{}
	if err := env.Parse(c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HealthAddrGRPC, c.HealthAddrGRPC)
	setString(&config.Environment, c.Environment)
	setString(&config.PublicBaseURL, c.LegacyPublicURL)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.SecretKey, c.SecretKey)
	if c.AdminSessionValidity > 0 {
		config.AdminSessionValidity = c.AdminSessionValidity
	}
	if c.CustomerSessionValidity > 0 {
		config.CustomerSessionValidity = c.CustomerSessionValidity
	}
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.GoogleClientID, c.GoogleClientID)
	setString(&config.GoogleClientSecret, c.GoogleClientSecret)
	setString(&config.GoogleRedirectURL, c.GoogleRedirectURL)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}
