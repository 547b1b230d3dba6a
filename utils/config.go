package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env             string `mapstructure:"ENV"`
	ServerPort      int    `mapstructure:"SERVER_PORT"`
	SigningKey      string `mapstructure:"SIGNING_KEY"`
	DBUsername      string `mapstructure:"DB_USERNAME"`
	DBPassword      string `mapstructure:"DB_PASSWORD"`
	DBHost          string `mapstructure:"DB_HOST"`
	DBPort          string `mapstructure:"DB_PORT"`
	DBDriver        string `mapstructure:"DB_DRIVER"`
	DBName          string `mapstructure:"DB_NAME"`
	SSLMode         string `mapstructure:"SSLMODE"`
	CacheBackend    string `mapstructure:"CACHE_BACKEND"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	SyslogAddr      string `mapstructure:"SYSLOG_ADDR"`
	SyslogAppName   string `mapstructure:"SYSLOG_APP_NAME"`
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}

	if config.DBUsername == "" || config.DBPassword == "" {
		return fmt.Errorf("database credentials must be provided")
	}

	if config.SigningKey == "" {
		return fmt.Errorf("signing key must be provided")
	}

	switch config.CacheBackend {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend: %v", config.CacheBackend)
	}

	return nil
}

// Redact masks sensitive information for logging.
func (c *Config) Redact() Config {
	redacted := *c
	redacted.SigningKey = "****"
	redacted.DBPassword = "****"
	redacted.RedisPassword = "****"
	return redacted
}
