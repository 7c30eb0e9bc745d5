package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env"
)

type Config struct {
	AccountsDBPath string `env:"ACCOUNTS_DB_PATH"`
	ServicesDBPath string `env:"SERVICES_DB_PATH"`
	AuthCachePath  string `env:"AUTH_CACHE_PATH"`
	LogLevel       string `env:"LOG_LEVEL"`
	LogFormat      string `env:"LOG_FORMAT"`
}

func NewConfig() (Config, error) {
	cfg := Config{}

	flag.StringVar(&cfg.AccountsDBPath, "a", "users.db", "accounts database file [env:ACCOUNTS_DB_PATH]")
	flag.StringVar(&cfg.ServicesDBPath, "s", "services.db", "services database file [env:SERVICES_DB_PATH]")
	flag.StringVar(&cfg.AuthCachePath, "c", ".auth", "auth cache file [env:AUTH_CACHE_PATH]")
	flag.StringVar(&cfg.LogLevel, "l", "info", "log output level [env:LOG_LEVEL]")
	flag.StringVar(&cfg.LogFormat, "f", "text", "log output format, text or json [env:LOG_FORMAT]")
	flag.Parse()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("env.Parse: %w", err)
	}

	return cfg, nil
}
