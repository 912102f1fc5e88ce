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
	Env              string   `mapstructure:"env"`        // current application environment (local, dev, production)
	TelegramAPIToken string   `mapstructure:"-"`          // Telegram API token loaded from environment
	CardsPath        string   `mapstructure:"cards_path"` // path to the vocabulary catalog (.json or .xlsx)
	Language         string   `mapstructure:"language"`   // translation shown in cards and quiz options ("en", "ru")
	Quiz             Quiz     `mapstructure:"quiz"`       // quiz engine configuration section
	Storage          Storage  `mapstructure:"storage"`    // progress storage configuration section
	DB               DB       `mapstructure:"database"`   // database configuration section
	Sessions         Sessions `mapstructure:"sessions"`   // bot session registry configuration section
}

// Quiz contains quiz engine parameters.
type Quiz struct {
	MinCards    int `mapstructure:"min_cards"`    // minimum working set size to start a quiz
	MaxOptions  int `mapstructure:"max_options"`  // options per question
	MaxAttempts int `mapstructure:"max_attempts"` // distractor draws per question, 0 derives it from the pool size
}

// Storage selects where progress is persisted.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // memory, file, sqlite or postgres
	FilePath   string `mapstructure:"file_path"`   // JSON file for the file driver
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Sessions configures eviction of idle per-user sessions in the bot.
type Sessions struct {
	IdleTTL    time.Duration `mapstructure:"idle_ttl"`    // sessions unused for this long are dropped
	EvictEvery time.Duration `mapstructure:"evict_every"` // eviction interval
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("cards_path", "assets/data/vocabulary.json")
	v.SetDefault("language", "en")
	v.SetDefault("quiz.min_cards", 2)
	v.SetDefault("quiz.max_options", 4)
	v.SetDefault("quiz.max_attempts", 0)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file_path", "data/progress.json")
	v.SetDefault("storage.sqlite_path", "data/progress.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("sessions.idle_ttl", "24h")
	v.SetDefault("sessions.evict_every", "10m")
}

func (c *Config) validate() error {
	if c.Quiz.MinCards < 2 {
		return fmt.Errorf("quiz.min_cards must be at least 2, got %d", c.Quiz.MinCards)
	}
	if c.Quiz.MaxOptions < 2 {
		return fmt.Errorf("quiz.max_options must be at least 2, got %d", c.Quiz.MaxOptions)
	}
	if c.Language != "en" && c.Language != "ru" {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	if c.Storage.Driver == "postgres" && c.DB.URL == "" {
		return ErrMissingEnvironmentVariables
	}
	return nil
}

// RequireTelegram checks that the bot token is configured.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return ErrMissingEnvironmentVariables
	}
	return nil
}
