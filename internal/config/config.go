package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	// EnvProduction enables the Secure flag on session cookies.
	EnvProduction = "production"
	// EnvTest relaxes the JWT secret requirement for test harnesses.
	EnvTest = "test"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigin     string
	StorageBackend string // "local" or "s3"
	UploadDir      string
	MaxUploadBytes int64
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	AMQPURL        string
}

// Load builds Config from the environment via Viper with sensible defaults.
// An unset JWT_SECRET is an error outside the test environment: the service
// must never fall back to a hardcoded signing key.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=filedrop password=filedrop dbname=filedrop port=5432 sslmode=disable")
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("STORAGE_BACKEND", "local")
	viper.SetDefault("UPLOAD_DIR", "files")
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(10*1024*1024)) // 10 MiB
	viper.AutomaticEnv()

	cfg := &Config{
		AppPort:        viper.GetString("APP_PORT"),
		AppEnv:         viper.GetString("APP_ENV"),
		DatabaseDSN:    viper.GetString("DATABASE_DSN"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		CORSOrigin:     viper.GetString("CORS_ORIGIN"),
		StorageBackend: viper.GetString("STORAGE_BACKEND"),
		UploadDir:      viper.GetString("UPLOAD_DIR"),
		MaxUploadBytes: viper.GetInt64("MAX_UPLOAD_BYTES"),
		S3Endpoint:     viper.GetString("S3_ENDPOINT"),
		S3AccessKey:    viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:    viper.GetString("S3_SECRET_KEY"),
		S3Bucket:       viper.GetString("S3_BUCKET"),
		AMQPURL:        viper.GetString("AMQP_URL"),
	}

	if cfg.JWTSecret == "" && cfg.AppEnv != EnvTest {
		return nil, fmt.Errorf("JWT_SECRET must be set (no insecure default is provided)")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	return cfg, nil
}
