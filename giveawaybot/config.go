package giveawaybot

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML config at path, fills in defaults and applies
// the DISCORD_TOKEN and PORT environment overrides (the usual deployment
// knobs on free-tier hosts).
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Web.Port = p
		}
	}

	if cfg.Bot.Prefix == "" {
		cfg.Bot.Prefix = config.DefaultPrefix
	}
	if cfg.Giveaway.StoragePath == "" {
		cfg.Giveaway.StoragePath = config.DefaultStorePath
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = config.DefaultWebPort
	}
	return &cfg, nil
}

type Config struct {
	Log      LogConfig      `toml:"log"`
	Bot      BotConfig      `toml:"bot"`
	Giveaway GiveawayConfig `toml:"giveaway"`
	Archive  ArchiveConfig  `toml:"archive"`
	Web      WebConfig      `toml:"web"`
}

type BotConfig struct {
	Token  string `toml:"token"`
	Prefix string `toml:"prefix"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type GiveawayConfig struct {
	StoragePath        string `toml:"storage_path"`
	PollIntervalSecs   int    `toml:"poll_interval_secs"`
	SessionTimeoutSecs int    `toml:"session_timeout_secs"`
}

type ArchiveConfig struct {
	CategoryID snowflake.ID `toml:"category_id"`
}

type WebConfig struct {
	Port int `toml:"port"`
}
