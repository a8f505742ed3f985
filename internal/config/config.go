package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv       string
	DBDriver     string
	DBDSN        string
	LogLevel     string
	DeadlineCron string
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "worktrack.db")
	viper.SetDefault("LOG_LEVEL", "info")
	// Empty means the deadline scan only runs when triggered by hand.
	viper.SetDefault("DEADLINE_CRON", "")

	return &Config{
		AppEnv:       viper.GetString("APP_ENV"),
		DBDriver:     viper.GetString("DB_DRIVER"),
		DBDSN:        viper.GetString("DB_DSN"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		DeadlineCron: viper.GetString("DEADLINE_CRON"),
	}, nil
}
