package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
	ErrUnknownAIProvider           = errors.New("unknown ai provider")
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	ProviderHTTP   = "http"
	ProviderOpenAI = "openai"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`   // Telegram API token loaded from environment
	Debug            bool    `mapstructure:"debug"`
	Quiz             Quiz    `mapstructure:"quiz"`
	Storage          Storage `mapstructure:"storage"`
	Remote           Remote  `mapstructure:"remote"`
	AI               AI      `mapstructure:"ai"`
	Sync             Sync    `mapstructure:"sync"`
}

// Quiz configures quiz sessions.
type Quiz struct {
	QuestionTime            time.Duration `mapstructure:"question_time"`              // countdown per question
	WrongAnswerDelay        time.Duration `mapstructure:"wrong_answer_delay"`         // pause before moving on after a wrong answer
	AllowRetreatAfterAnswer bool          `mapstructure:"allow_retreat_after_answer"` // allow going back from an answered question
	Shuffle                 bool          `mapstructure:"shuffle"`                    // shuffle questions and options
}

// Storage selects and configures the local key-value store.
type Storage struct {
	Driver string `mapstructure:"driver"` // sqlite or redis
	SQLite SQLite `mapstructure:"sqlite"`
	Redis  Redis  `mapstructure:"redis"`
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"-"` // loaded from environment
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Remote configures the mirrored flashcard collection.
type Remote struct {
	Enabled    bool   `mapstructure:"enabled"`
	Collection string `mapstructure:"collection"`
	DB         DB     `mapstructure:"database"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// AI configures question generation.
type AI struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"` // http or openai
	BaseURL  string        `mapstructure:"base_url"` // generation server of the http provider
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"-"` // loaded from environment
	Timeout  time.Duration `mapstructure:"timeout"`

	OpenAIBaseURL string `mapstructure:"openai_base_url"` // empty for the public OpenAI API
}

// Sync configures pulling the remote collection into the local deck.
type Sync struct {
	Schedule string `mapstructure:"schedule"` // cron expression
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from an optional .env file, config files and environment variables.
func Load() (*Config, error) {
	return load(".env", "./config")
}

func load(envFile, configDir string) (*Config, error) {
	// Values already present in the environment win over .env.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
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
	cfg.Remote.DB.URL = v.GetString("database_url")
	cfg.AI.APIKey = v.GetString("openai_api_key")
	cfg.Storage.Redis.Password = v.GetString("redis_password")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("debug", false)

	v.SetDefault("quiz.question_time", "10s")
	v.SetDefault("quiz.wrong_answer_delay", "800ms")
	v.SetDefault("quiz.allow_retreat_after_answer", false)
	v.SetDefault("quiz.shuffle", true)

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite.path", "data/flashcards.db")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "flashcards:")

	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.collection", "Flashcards-quiz")
	v.SetDefault("remote.database.max_connections", 10)
	v.SetDefault("remote.database.max_conn_lifetime", "30m")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", ProviderHTTP)
	v.SetDefault("ai.base_url", "http://localhost:3000/api")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.openai_base_url", "")
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("sync.schedule", "@every 5m")
}

func (c *Config) validate() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Remote.Enabled {
		if _, err := c.Remote.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	}

	if c.AI.Enabled {
		switch c.AI.Provider {
		case ProviderHTTP:
		case ProviderOpenAI:
			if c.AI.APIKey == "" {
				return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingEnvironmentVariables)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownAIProvider, c.AI.Provider)
		}
	}

	return nil
}
