package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values, populated from
// environment variables. A .env file in the working directory is loaded
// first when present; real environment variables win over it.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // development or production
	HttpServer ServerConfig
	Logger     LoggerConfig
	Storage    StorageConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	FileEnable bool   `envconfig:"LOG_FILE_ENABLE" default:"false"`
	Filename   string `envconfig:"LOG_FILENAME" default:"catalog-service.log"`
}

// StorageConfig locates the on-device data file.
type StorageConfig struct {
	DataDir  string `envconfig:"STORAGE_DATA_DIR" default:"data"`
	Filename string `envconfig:"STORAGE_FILENAME" default:"catalog.db"`
}

// Path returns the full path of the bolt data file.
func (sc *StorageConfig) Path() string {
	return filepath.Join(sc.DataDir, sc.Filename)
}

// Load initializes the configuration from the environment. It should be
// called once during application startup.
func Load() (*Config, error) {
	// Not finding a .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
