package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hairizuan-noorazman/scenario-builder/database"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Session    SessionConfig
	Storage    StorageConfig
	Drafts     DraftsConfig
	Certs      CertsConfig
	Gateway    GatewayConfig
	Log        LogConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Driver       string // "mysql" or "sqlite"
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
}

// SessionConfig holds editor session configuration.
type SessionConfig struct {
	CookieName      string
	CookieSecret    string
	Duration        time.Duration
	CleanupInterval time.Duration
	Secure          bool
}

// StorageConfig holds blob storage configuration.
type StorageConfig struct {
	Type     string // "local" or "s3"
	BaseDir  string // For local: "./data"
	S3Bucket string
	S3Region string
	S3Prefix string
}

// DraftsConfig selects where drafts are kept.
type DraftsConfig struct {
	Backend string // "database" or "blob"
}

// CertsConfig locates the development certificates. An empty Dir reads them
// from the blob storage.
type CertsConfig struct {
	Dir string
}

// GatewayConfig holds the code-generation service settings.
type GatewayConfig struct {
	BaseURL string
	Path    string
	Timeout time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// ValidationConfig holds optional validation rules.
type ValidationConfig struct {
	ActionCatalog bool
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "scenario_builder")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("session.cookie_name", "scenario_session")
	v.SetDefault("session.cookie_secret", "change-this-secret-in-production-min-32-chars")
	v.SetDefault("session.duration", "12h")
	v.SetDefault("session.cleanup_interval", "5m")
	v.SetDefault("session.secure", false)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_dir", "./data")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_prefix", "")

	v.SetDefault("drafts.backend", "database")

	v.SetDefault("certs.dir", "./certs")

	v.SetDefault("gateway.base_url", gateway.DefaultBaseURL)
	v.SetDefault("gateway.path", gateway.DefaultPath)
	v.SetDefault("gateway.timeout", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("validation.action_catalog", false)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults
	}

	// Parse configuration
	var config Config

	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")
	config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	config.Server.WriteTimeout = v.GetDuration("server.write_timeout")

	config.Database.Driver = v.GetString("database.driver")
	config.Database.Host = v.GetString("database.host")
	config.Database.Port = v.GetInt("database.port")
	config.Database.User = v.GetString("database.user")
	config.Database.Password = v.GetString("database.password")
	config.Database.Database = v.GetString("database.database")
	config.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	config.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")

	config.Session.CookieName = v.GetString("session.cookie_name")
	config.Session.CookieSecret = v.GetString("session.cookie_secret")
	config.Session.Duration = v.GetDuration("session.duration")
	config.Session.CleanupInterval = v.GetDuration("session.cleanup_interval")
	config.Session.Secure = v.GetBool("session.secure")

	config.Storage.Type = v.GetString("storage.type")
	config.Storage.BaseDir = v.GetString("storage.base_dir")
	config.Storage.S3Bucket = v.GetString("storage.s3_bucket")
	config.Storage.S3Region = v.GetString("storage.s3_region")
	config.Storage.S3Prefix = v.GetString("storage.s3_prefix")

	config.Drafts.Backend = strings.ToLower(v.GetString("drafts.backend"))

	config.Certs.Dir = v.GetString("certs.dir")

	config.Gateway.BaseURL = v.GetString("gateway.base_url")
	config.Gateway.Path = v.GetString("gateway.path")
	config.Gateway.Timeout = v.GetDuration("gateway.timeout")

	config.Log.Level = v.GetString("log.level")
	config.Log.Format = v.GetString("log.format")

	config.Validation.ActionCatalog = v.GetBool("validation.action_catalog")

	if config.Drafts.Backend != "database" && config.Drafts.Backend != "blob" {
		return nil, fmt.Errorf("unsupported drafts backend %q (want database or blob)", config.Drafts.Backend)
	}

	return &config, nil
}

func (c DatabaseConfig) connection() database.Config {
	return database.Config{
		Driver:       c.Driver,
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Password:     c.Password,
		Database:     c.Database,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
	}
}

func (c StorageConfig) blobs() storage.Config {
	return storage.Config{
		Type:     c.Type,
		BaseDir:  c.BaseDir,
		Bucket:   c.S3Bucket,
		Region:   c.S3Region,
		S3Prefix: c.S3Prefix,
	}
}

func (c GatewayConfig) client() gateway.Config {
	return gateway.Config{
		BaseURL: c.BaseURL,
		Path:    c.Path,
		Timeout: c.Timeout,
	}
}
