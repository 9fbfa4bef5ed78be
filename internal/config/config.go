package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`          // current application environment (local, dev, production etc)
	LogLevel         string    `mapstructure:"log_level"`    // overrides the level derived from Env when set
	TelegramAPIToken string    `mapstructure:"-"`            // Telegram API token loaded from environment
	CatalogPath      string    `mapstructure:"catalog_path"` // path to the YAML product catalog
	DB               DB        `mapstructure:"database"`     // database configuration section
	Quiz             Quiz      `mapstructure:"quiz"`         // quiz session lifecycle
	Analytics        Analytics `mapstructure:"analytics"`    // notification dispatcher
	Redis            Redis     `mapstructure:"redis"`        // optional Redis pub/sub sink
	HTTP             HTTP      `mapstructure:"http"`         // health and metrics endpoint
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Quiz controls how long quiz sessions live.
type Quiz struct {
	CloseGrace    time.Duration `mapstructure:"close_grace"`    // delay before a closed quiz is reset
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`   // sessions untouched for this long are evicted
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec for the eviction job
}

// Analytics tunes event delivery.
type Analytics struct {
	BufferSize     int           `mapstructure:"buffer_size"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// Redis configures the pub/sub sink. An empty Addr disables it.
type Redis struct {
	Addr    string `mapstructure:"addr"`
	Channel string `mapstructure:"channel"`
}

// HTTP configures the health and metrics server. An empty Addr disables it.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Validate checks the settings only the bot needs.
func (c *Config) Validate() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Load reads configuration from ./config, a .env file and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom is Load with a custom config directory.
func LoadFrom(dir string) (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("catalog_path", "assets/catalog.yaml")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("quiz.close_grace", "500ms")
	v.SetDefault("quiz.idle_timeout", "30m")
	v.SetDefault("quiz.sweep_schedule", "*/10 * * * *")
	v.SetDefault("analytics.buffer_size", 256)
	v.SetDefault("analytics.publish_timeout", "2s")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.channel", "quiz_events")
	v.SetDefault("http.addr", ":9090")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("catalog_path", "CATALOG_PATH")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}
