package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	AWS        AWSConfig
	Conversion ConversionConfig
	LogLevel   zerolog.Level
}

// DatabaseConfig holds database configuration. An empty URL disables conversion history.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables preset storage.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// ConversionConfig holds conversion pipeline configuration
type ConversionConfig struct {
	Workers         int
	MaxContentBytes int64
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	// Set defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("CONVERT_WORKERS", 0)
	v.SetDefault("MAX_CONTENT_BYTES", 5*1024*1024)
	v.SetDefault("LOG_LEVEL", "info")

	// Environment variables override .env file values
	v.AutomaticEnv()

	// Bind specific environment variable names
	for _, key := range []string{
		"DATABASE_URL", "PORT", "ENVIRONMENT", "ALLOWED_ORIGINS",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_ENDPOINT",
		"CONVERT_WORKERS", "MAX_CONTENT_BYTES", "LOG_LEVEL",
	} {
		_ = v.BindEnv(key)
	}

	// Read .env file for the current environment (ignore error if it doesn't exist)
	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(configPath)
	_ = v.ReadInConfig()

	var config Config
	config.Database.URL = v.GetString("DATABASE_URL")
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = env
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")
	config.Conversion.Workers = v.GetInt("CONVERT_WORKERS")
	config.Conversion.MaxContentBytes = v.GetInt64("MAX_CONTENT_BYTES")

	if config.Conversion.Workers < 0 {
		return nil, fmt.Errorf("CONVERT_WORKERS must not be negative, got %d", config.Conversion.Workers)
	}
	if config.Conversion.MaxContentBytes <= 0 {
		return nil, fmt.Errorf("MAX_CONTENT_BYTES must be positive, got %d", config.Conversion.MaxContentBytes)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	config.LogLevel = level

	log.Debug().
		Str("environment", config.Server.Env).
		Bool("history", config.Database.URL != "").
		Bool("storage", config.AWS.S3Bucket != "").
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
