package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	BotToken         string        `mapstructure:"bot_token"`
	AdminChatID      int64         `mapstructure:"admin_chat_id"`
	BotHandleTimeout time.Duration `mapstructure:"bot_handle_timeout"`

	SpreadsheetID      string        `mapstructure:"spreadsheet_id"`
	CredentialsPath    string        `mapstructure:"credentials_path"`
	ParticipantsSheet  string        `mapstructure:"participants_sheet"`
	PollsSheet         string        `mapstructure:"polls_sheet"`
	PollResponsesSheet string        `mapstructure:"poll_responses_sheet"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	BatchChunk         int           `mapstructure:"batch_chunk"`

	APIListen string `mapstructure:"api_listen"`

	// Parsed from the comma-separated admin_ids key.
	AdminIDs []int64 `mapstructure:"-"`
}

func New() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		logrus.Fatalf("unmarshalling config: %v", err)
	}
	cfg.AdminIDs = parseAdminIDs(viper.GetString("admin_ids"))
	return cfg
}

// IsAdmin reports whether the Telegram user is listed as an administrator.
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func SetupCommon() {
	viper.SetDefault("participants_sheet", "Participants")
	viper.SetDefault("polls_sheet", "Polls")
	viper.SetDefault("poll_responses_sheet", "PollResponses")
	viper.SetDefault("cache_ttl", "10s")
	viper.SetDefault("batch_chunk", 40)
	viper.SetDefault("bot_handle_timeout", "10s")
	viper.SetDefault("api_listen", ":8080")
	viper.SetEnvPrefix("SANTA")

	viper.MustBindEnv("bot_token")
	viper.MustBindEnv("spreadsheet_id")
	viper.MustBindEnv("credentials_path")
	viper.BindEnv("admin_ids")
	viper.BindEnv("admin_chat_id")
	viper.AutomaticEnv()
}

func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logrus.Warnf("skipping malformed admin id %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
