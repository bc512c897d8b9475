package config

import (
	"flag"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRunAddress   = ":8080"
	DefaultAdminAddress = ":8081"
	DefaultDatabaseURI  = ""
	DefaultAPIURL       = "http://localhost:8080"
	DefaultAPIRetries   = 0
)

type Config struct {
	RunAddress   string `env:"RUN_ADDRESS"`
	AdminAddress string `env:"ADMIN_ADDRESS"`
	DatabaseURI  string `env:"DATABASE_URI"`
	APIURL       string `env:"API_URL"`
	APIRetries   int    `env:"API_RETRIES"`
}

// Read - сначала флаги, затем переменные окружения (окружение приоритетнее)
func Read() (Config, error) {
	config := Config{}

	flag.StringVar(&config.RunAddress, "a", DefaultRunAddress, "REST API run address")
	flag.StringVar(&config.AdminAddress, "w", DefaultAdminAddress, "Admin console run address")
	flag.StringVar(&config.DatabaseURI, "d", DefaultDatabaseURI, "Database connect string")
	flag.StringVar(&config.APIURL, "u", DefaultAPIURL, "Back-office API base URL protocol://hostname:port")
	flag.IntVar(&config.APIRetries, "r", DefaultAPIRetries, "Retries of failed API requests (0 - no retries)")

	flag.Parse()

	err := env.Parse(&config)
	if err != nil {
		return config, err
	}

	if config.APIRetries < 0 {
		config.APIRetries = 0
	}

	return config, nil
}
