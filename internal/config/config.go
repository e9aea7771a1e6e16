package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Docs     DocsConfig     `mapstructure:"docs"`
}

// AppConfig holds HTTP server configuration.
type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects and tunes the product store.
// Driver is one of "postgres", "sqlite" or "memory".
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AccessLog bool   `mapstructure:"access_log"`
}

// CORSConfig lists the origins allowed to call the API, comma separated.
type CORSConfig struct {
	AllowOrigins string `mapstructure:"allow_origins"`
}

// RabbitMQConfig holds broker settings. An empty URL disables product events.
type RabbitMQConfig struct {
	URL     string `mapstructure:"url"`
	Queue   string `mapstructure:"queue"`
	Consume bool   `mapstructure:"consume"`
}

// DocsConfig toggles the API documentation endpoints.
type DocsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Enabled reports whether product events should be published.
func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// Load reads configuration from an optional .env file, an optional config file
// and the environment, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// APP_PORT -> app.port, DATABASE_DSN -> database.dsn, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// FRONTEND_URL is the name the front-end deployment already exports.
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" && os.Getenv("CORS_ALLOW_ORIGINS") == "" {
		v.Set("cors.allow_origins", frontend)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tienda")
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=127.0.0.1 user=postgres password=postgres dbname=tienda port=5432 sslmode=disable")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.access_log", true)

	v.SetDefault("cors.allow_origins", "*")

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "product_events")
	v.SetDefault("rabbitmq.consume", false)

	v.SetDefault("docs.enabled", true)
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required for driver %q", c.Database.Driver)
	}
	if c.App.Port == "" {
		return fmt.Errorf("app port is required")
	}
	return nil
}
