package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration. Optional keys disable the
// corresponding capability without failing startup.
type Config struct {
	News     NewsConfig     `envconfig:"NEWS"`
	AI       AIConfig       `envconfig:"AI"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Database DatabaseConfig `envconfig:"DATABASE"`
	Telegram TelegramConfig `envconfig:"TELEGRAM"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// NewsConfig represents news source credentials
type NewsConfig struct {
	APIKey   string `envconfig:"NEWSAPI_KEY" required:"false"`
	PageSize int    `envconfig:"NEWSAPI_PAGE_SIZE" default:"30"`
}

// AIConfig represents embedding and summarizer provider configuration
type AIConfig struct {
	OpenAIKey      string `envconfig:"OPENAI_API_KEY" required:"false"`
	EmbeddingModel string `envconfig:"AI_EMBEDDING_MODEL" default:"text-embedding-ada-002"`
	SummaryModel   string `envconfig:"AI_SUMMARY_MODEL" default:"gpt-4o-mini"`
}

// RedisConfig represents the KV store connection
type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" required:"false"`
}

// DatabaseConfig represents the durable store. An empty URL selects the
// local file-backed SQLite store.
type DatabaseConfig struct {
	URL        string `envconfig:"DATABASE_URL" required:"false"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"memory.db"`
}

// TelegramConfig represents the alert sink credentials
type TelegramConfig struct {
	BotToken string `envconfig:"TG_BOT_TOKEN" required:"false"`
	ChatID   int64  `envconfig:"TG_CHAT_ID" required:"false"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" required:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		return fmt.Errorf("newsapi page size must be between 1 and 100")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when bot token is set")
	}
	return nil
}

// AlertsEnabled reports whether the Telegram alert sink is configured
func (c *TelegramConfig) AlertsEnabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}
