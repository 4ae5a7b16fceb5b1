// Package config provides the bot configuration, loaded from an
// optional config file and ANIBOT_-prefixed environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the bot needs at startup.
type Config struct {
	BotToken  string  `mapstructure:"bot_token"`  // Telegram bot API token (required)
	ChannelID int64   `mapstructure:"channel_id"` // Announcement channel; 0 disables announcements
	AdminIDs  []int64 `mapstructure:"admin_ids"`  // Static allow-list of administrator user ids

	DataDir string `mapstructure:"data_dir"` // Directory holding the two JSON documents

	PageSize          int           `mapstructure:"page_size"`           // Entries per catalog list page
	AnnounceQueueSize int           `mapstructure:"announce_queue_size"` // Buffered announcements before drops
	DialogIdleTimeout time.Duration `mapstructure:"dialog_idle_timeout"` // Idle time before a dialog session expires
	LogLevel          string        `mapstructure:"log_level"`
}

// Default returns a configuration with sensible defaults.
func Default() Config {
	return Config{
		DataDir:           "data",
		PageSize:          5,
		AnnounceQueueSize: 16,
		DialogIdleTimeout: 30 * time.Minute,
		LogLevel:          "info",
	}
}

// CatalogFile is the path of the persisted catalog document.
func (c Config) CatalogFile() string {
	return filepath.Join(c.DataDir, "data.json")
}

// UsersFile is the path of the persisted user registry document.
func (c Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// IsAdmin reports whether the user id is on the admin allow-list.
func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Load reads config.yaml from the given path (optional) merged with
// environment overrides, validating required fields.
func Load(configPath string) (Config, error) {
	v := viper.New()
	cfg := Default()

	// Defaults also register the keys so env-only values survive
	// Unmarshal.
	v.SetDefault("bot_token", "")
	v.SetDefault("channel_id", int64(0))
	v.SetDefault("admin_ids", []int64{})
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("page_size", cfg.PageSize)
	v.SetDefault("announce_queue_size", cfg.AnnounceQueueSize)
	v.SetDefault("dialog_idle_timeout", cfg.DialogIdleTimeout)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix("ANIBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("bot_token is required (set ANIBOT_BOT_TOKEN or bot_token in config.yaml)")
	}
	return cfg, nil
}
