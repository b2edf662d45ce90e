package chatgateway

import "time"

type Config struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	BotToken string        `mapstructure:"bot_token"`
}
