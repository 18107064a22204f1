package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"taskmanager_web/internal/services"
)

// Config holds the settings shared by the server, the stub API and taskctl.
type Config struct {
	Server ServerConfig
	API    APIConfig
	Stub   StubConfig
	Debug  bool
}

// ServerConfig holds the web frontend settings.
type ServerConfig struct {
	Port string
}

// APIConfig holds the task API client settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero means requests are bounded only by their context
	Timeout time.Duration
}

// StubConfig holds the in-memory task API settings.
type StubConfig struct {
	Port string
}

// env names that don't follow the key path
var envAliases = map[string]string{
	"server.port":  "PORT",
	"api.base_url": "API_BASE_URL",
	"api.timeout":  "API_TIMEOUT",
	"stub.port":    "STUB_PORT",
	"debug":        "DEBUG",
}

// Load reads configuration from an optional .env, an optional config file
// named by TASKMANAGER_CONFIG, and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment")
	}

	v := viper.New()

	// default values
	v.SetDefault("server.port", "3000")
	v.SetDefault("api.base_url", services.DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("stub.port", "8080")
	v.SetDefault("debug", false)

	if cfgPath := os.Getenv("TASKMANAGER_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api base url is empty")
	}
	if c.API.Timeout < 0 {
		return Config{}, fmt.Errorf("api timeout must not be negative, got %s", c.API.Timeout)
	}
	return c, nil
}

// NewLogger builds the process logger, at debug level when Debug is set.
func (c Config) NewLogger() *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetLevel(log.InfoLevel)
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
