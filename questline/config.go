package questline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/questline-bot/questline/questline/database"
	"github.com/questline-bot/questline/questline/services"
)

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
	return &cfg, nil
}

type Config struct {
	Log    LogConfig         `toml:"log"`
	Bot    BotConfig         `toml:"bot"`
	DB     database.DBConfig `toml:"db"`
	Gamify GamifyConfig      `toml:"gamify"`
}

type BotConfig struct {
	DevGuilds        []snowflake.ID `toml:"dev_guilds"`
	Token            string         `toml:"token"`
	AdminIDs         []snowflake.ID `toml:"admin_ids"`
	BroadcastChannel snowflake.ID   `toml:"broadcast_channel"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

// GamifyConfig tunes the recurring mission templates and the weekly
// activity competition.
type GamifyConfig struct {
	Daily  services.RecurringMissionConfig `toml:"daily"`
	Weekly services.RecurringMissionConfig `toml:"weekly"`

	TopCount     int   `toml:"top_count"`
	TopPoints    int64 `toml:"top_points"`
	SummaryLimit int   `toml:"summary_limit"`
}

// IsAdmin reports whether the id is in the configured admin list.
func (c BotConfig) IsAdmin(id snowflake.ID) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}
