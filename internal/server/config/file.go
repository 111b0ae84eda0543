package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/umkmhub/marketplace/internal/flagx"
	"github.com/umkmhub/marketplace/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// "8h"-style strings or a number of minutes.
type FileConfig struct {
	HTTPAddr                string         `json:"http_addr" yaml:"http_addr"`
	HealthAddrGRPC          string         `json:"health_addr_grpc" yaml:"health_addr_grpc"`
	Environment             string         `json:"environment" yaml:"environment"`
	PublicBaseURL           string         `json:"public_base_url" yaml:"public_base_url"`
	StoreBackend            string         `json:"store_backend" yaml:"store_backend"`
	DatabaseDSN             string         `json:"database_dsn" yaml:"database_dsn"`
	MongoURI                string         `json:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase           string         `json:"mongo_database" yaml:"mongo_database"`
	AdminUsername           string         `json:"admin_username" yaml:"admin_username"`
	AdminPassword           string         `json:"admin_password" yaml:"admin_password"`
	SecretKey               string         `json:"secret_key" yaml:"secret_key"`
	AdminSessionValidity    timex.Duration `json:"admin_session_validity" yaml:"admin_session_validity"`
	CustomerSessionValidity timex.Duration `json:"customer_session_validity" yaml:"customer_session_validity"`
	RedisAddr               string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword           string         `json:"redis_password" yaml:"redis_password"`
	GoogleClientID          string         `json:"google_client_id" yaml:"google_client_id"`
	GoogleClientSecret      string         `json:"google_client_secret" yaml:"google_client_secret"`
	GoogleRedirectURL       string         `json:"google_redirect_url" yaml:"google_redirect_url"`
	S3RootUser              string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel                string         `json:"log_level" yaml:"log_level"`
	LogFormat               string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays values from the file named by -c/-config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. Only fields
// present in the file replace the current values. A file that cannot be read
// or decoded panics, as startup cannot continue with a half-applied config.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HealthAddrGRPC, c.HealthAddrGRPC)
	setString(&config.Environment, c.Environment)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.SecretKey, c.SecretKey)
	if c.AdminSessionValidity.Duration > 0 {
		config.AdminSessionValidity = c.AdminSessionValidity.Duration
	}
	if c.CustomerSessionValidity.Duration > 0 {
		config.CustomerSessionValidity = c.CustomerSessionValidity.Duration
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

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
