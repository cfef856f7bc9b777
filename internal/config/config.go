package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// MongoDB configuration
	MongoURI                 string `mapstructure:"MONGO_URI"`
	MongoDatabase            string `mapstructure:"MONGO_DATABASE"`
	MongoConnectTimeoutSec   int    `mapstructure:"MONGO_CONNECT_TIMEOUT_SEC"`
	MongoOperationTimeoutSec int    `mapstructure:"MONGO_OPERATION_TIMEOUT_SEC"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")

	// MongoDB defaults
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "team_builder")
	v.SetDefault("MONGO_CONNECT_TIMEOUT_SEC", 10)
	v.SetDefault("MONGO_OPERATION_TIMEOUT_SEC", 5)

	// CORS defaults: the original service allowed every origin
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
}

func validate(config *Config) error {
	if config.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if config.MongoDatabase == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}
	if config.MongoConnectTimeoutSec <= 0 {
		return fmt.Errorf("MONGO_CONNECT_TIMEOUT_SEC must be positive")
	}
	if config.MongoOperationTimeoutSec <= 0 {
		return fmt.Errorf("MONGO_OPERATION_TIMEOUT_SEC must be positive")
	}
	return nil
}

// ConnectTimeout returns the store connect timeout as a duration
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.MongoConnectTimeoutSec) * time.Second
}

// OperationTimeout returns the per-operation store timeout as a duration
func (c *Config) OperationTimeout() time.Duration {
	return time.Duration(c.MongoOperationTimeoutSec) * time.Second
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
