package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort  string `env:"SERVER_PORT" envDefault:"8686"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./noteminder.db"`
	// When enabled, occurrence snapshots and the delivered feed are never
	// written to disk and live only for the process lifetime.
	PrivacyMode bool `env:"PRIVACY_MODE" envDefault:"false"`

	// Engine
	DispatchInterval     time.Duration `env:"DISPATCH_INTERVAL" envDefault:"30s"`
	RebuildQuietPeriod   time.Duration `env:"REBUILD_QUIET_PERIOD" envDefault:"1s"`
	UpcomingDefaultLimit int           `env:"UPCOMING_DEFAULT_LIMIT" envDefault:"10"`
	ResyncCronSpec       string        `env:"RESYNC_CRON_SPEC" envDefault:"0 3 * * *"`

	// Delivery channels. Slack and Telegram are only registered when their
	// credentials are present; in-app and system are always available.
	SlackBotToken       string `env:"SLACK_BOT_TOKEN"`
	SlackChannelID      string `env:"SLACK_CHANNEL_ID"`
	TelegramToken       string `env:"TELEGRAM_TOKEN"`
	TelegramChatID      int64  `env:"TELEGRAM_CHAT_ID"`
	SystemNotifyCommand string `env:"SYSTEM_NOTIFY_COMMAND" envDefault:"notify-send"`
	InAppFeedSize       int    `env:"IN_APP_FEED_SIZE" envDefault:"200"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*Config, error) {
	// godotenv does not override variables that are already set.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if cfg.DispatchInterval <= 0 {
		return nil, fmt.Errorf("DISPATCH_INTERVAL must be positive, got %s", cfg.DispatchInterval)
	}
	if cfg.RebuildQuietPeriod <= 0 {
		return nil, fmt.Errorf("REBUILD_QUIET_PERIOD must be positive, got %s", cfg.RebuildQuietPeriod)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
