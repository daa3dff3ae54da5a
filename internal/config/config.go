/* Copyright (c) 2025 David Bulkow */

// Package config loads the engine and server settings from a config
// file or CLASSROOMS_* environment variables.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the client engine and the reference
// server.
type Config struct {
	// Client side.
	BaseURL         string        `mapstructure:"BASE_URL"`
	ConnectTimeout  time.Duration `mapstructure:"CONNECT_TIMEOUT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`

	// Timeline geometry.
	SlotMinutes int `mapstructure:"SLOT_MINUTES"`
	StartHour   int `mapstructure:"START_HOUR"`
	EndHour     int `mapstructure:"END_HOUR"`

	// Server side.
	ListenAddr string        `mapstructure:"LISTEN_ADDR"`
	DataFile   string        `mapstructure:"DATA_FILE"`
	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	TokenTTL   time.Duration `mapstructure:"TOKEN_TTL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	Env      string `mapstructure:"ENV"`
}

// Load reads configuration from an optional classrooms.yaml in the
// working directory and from CLASSROOMS_* environment variables, with
// defaults matching the deployed store.
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigName("classrooms")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("CLASSROOMS")
	v.AutomaticEnv()

	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("REFRESH_INTERVAL", 30*time.Second)
	v.SetDefault("SLOT_MINUTES", 30)
	v.SetDefault("START_HOUR", 9)
	v.SetDefault("END_HOUR", 22)
	v.SetDefault("LISTEN_ADDR", "localhost:8080")
	v.SetDefault("DATA_FILE", "reservations.jsonl")
	v.SetDefault("JWT_SECRET", "classrooms-dev-secret")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENV", "development")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		// No config file is fine; environment and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with production
// settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
