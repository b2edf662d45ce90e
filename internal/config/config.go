package config

import (
	"fmt"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API         API                `mapstructure:"api"`
	Database    mysql.Config       `mapstructure:"database"`
	RabbitMQ    mq.Config          `mapstructure:"rabbitmq"`
	ChatGateway chatgateway.Config `mapstructure:"chat_gateway"`
	Bot         Bot                `mapstructure:"bot"`
	Accrual     Accrual            `mapstructure:"accrual"`
}

type API struct {
	Port        string `mapstructure:"port"`
	MetricsPort string `mapstructure:"metrics_port"`
}

type Bot struct {
	SelfID          int64   `mapstructure:"self_id"`
	ExcludedBotIDs  []int64 `mapstructure:"excluded_bot_ids"`
	StreamChannelID int64   `mapstructure:"stream_channel_id"`
}

type Accrual struct {
	BasePoints int64         `mapstructure:"base_points"`
	Cooldown   time.Duration `mapstructure:"cooldown"`

	// Subscriber-tier multipliers keyed by role ID. Loaded for parity with
	// the production config; accrual currently grants a flat BasePoints.
	RoleMultipliers map[int64]int64 `mapstructure:"role_multipliers"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("accrual.base_points", 50)
	viper.SetDefault("accrual.cooldown", 15*time.Minute)

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
