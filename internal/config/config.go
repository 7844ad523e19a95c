package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the API.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	DatabaseDriver      string
	DatabaseURL         string
	DatabaseAutoMigrate bool

	RabbitMQURL      string
	RabbitMQExchange string
	RabbitMQConsume  bool

	CORSOrigin string
}

// Storage drivers. Postgres and SQLite go through the database package;
// memory keeps products in process and loses them on restart.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// setDefaults registers every known key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "host=127.0.0.1 user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "products")
	v.SetDefault("RABBITMQ_CONSUME", false)
	v.SetDefault("CORS_ORIGIN", "*")
}

// Load reads an optional .env file, then resolves configuration from the
// environment on top of the defaults.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds a Config from an already prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		AppEnv:              v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DatabaseDriver:      v.GetString("DATABASE_DRIVER"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		DatabaseAutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:    v.GetString("RABBITMQ_EXCHANGE"),
		RabbitMQConsume:     v.GetBool("RABBITMQ_CONSUME"),
		CORSOrigin:          v.GetString("CORS_ORIGIN"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// UsesDatabase reports whether products are kept in a SQL database.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseDriver != DriverMemory
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
