package config

import (
	"time"

	"golang-stock-sentiment/pkg/config"

	"github.com/spf13/viper"
)

// Scheduler holds scheduler-specific configuration.
type Scheduler struct {
	Cron     string        `mapstructure:"cron"`
	Tickers  []string      `mapstructure:"tickers"`
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// Config holds the full configuration for the scheduler service.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	Redis     config.Redis  `mapstructure:"redis"`
	API       config.API    `mapstructure:"api"`
	Scheduler Scheduler     `mapstructure:"scheduler"`
}

// Load loads the scheduler configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, setDefaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sentiment-scheduler")
	v.SetDefault("api.port", 8001)
	v.SetDefault("scheduler.cron", "*/30 * * * *")
	v.SetDefault("scheduler.tickers", []string{})
	v.SetDefault("scheduler.cooldown", "10m")
}
