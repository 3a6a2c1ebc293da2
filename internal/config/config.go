package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs from the environment. The mongo
// URI is selected by APP_ENV so that development, test and production talk to
// separate databases.
type Config struct {
	Env            string
	Port           int
	MongoURI       string
	MongoDatabase  string
	JWTPrivateKey  string
	StaticDir      string
	ShutdownSecond int

	// derived
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 4000)
	v.SetDefault("MONGODB_DATABASE", "photoapp")
	v.SetDefault("STATIC_DIR", "./build")
	v.SetDefault("SHUTDOWN_SECONDS", 15)

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetInt("PORT"),
		MongoDatabase:  v.GetString("MONGODB_DATABASE"),
		JWTPrivateKey:  v.GetString("JWT_PRIVATE_KEY"),
		StaticDir:      v.GetString("STATIC_DIR"),
		ShutdownSecond: v.GetInt("SHUTDOWN_SECONDS"),
	}

	switch cfg.Env {
	case "production":
		cfg.MongoURI = v.GetString("MONGODB_URI_PROD")
	case "test":
		cfg.MongoURI = v.GetString("MONGODB_URI_TEST")
	case "development":
		cfg.MongoURI = v.GetString("MONGODB_URI_DEV")
	default:
		return nil, fmt.Errorf("unknown APP_ENV %q", cfg.Env)
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("mongo URI not specified for %s environment", cfg.Env)
	}
	if cfg.JWTPrivateKey == "" {
		return nil, fmt.Errorf("JWT_PRIVATE_KEY not specified")
	}

	cfg.ShutdownTimeout = time.Duration(cfg.ShutdownSecond) * time.Second
	return cfg, nil
}
