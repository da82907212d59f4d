package config

import (
	"time"

	"golang-stock-sentiment/pkg/config"

	"github.com/spf13/viper"
)

// FMP holds the configuration for the Financial Modeling Prep articles feed.
type FMP struct {
	Enabled             bool          `mapstructure:"enabled"`
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	UserAgent           string        `mapstructure:"user_agent"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// RSS holds the configuration for the Google News RSS feed.
type RSS struct {
	Enabled     bool          `mapstructure:"enabled"`
	URLTemplate string        `mapstructure:"url_template"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// News holds news fetching configuration.
type News struct {
	Limit int `mapstructure:"limit"`
	Page  int `mapstructure:"page"`
	FMP   FMP `mapstructure:"fmp"`
	RSS   RSS `mapstructure:"rss"`
}

// Classifier holds sentiment model configuration.
type Classifier struct {
	Backend   string `mapstructure:"backend"`
	ModelName string `mapstructure:"model_name"`
	ModelPath string `mapstructure:"model_path"`
	ModelDir  string `mapstructure:"model_dir"`
	AsyncLoad bool   `mapstructure:"async_load"`
}

// Storage holds record store tuning.
type Storage struct {
	InsertBatchSize int `mapstructure:"insert_batch_size"`
}

// Stream holds the analysis request stream consumer configuration.
type Stream struct {
	Enabled        bool          `mapstructure:"enabled"`
	Consumer       string        `mapstructure:"consumer"`
	BlockTimeout   time.Duration `mapstructure:"block_timeout"`
	ProcessTimeout time.Duration `mapstructure:"process_timeout"`
}

// Config holds the full configuration for the api service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Telegram   config.Telegram `mapstructure:"telegram"`
	News       News            `mapstructure:"news"`
	Classifier Classifier      `mapstructure:"classifier"`
	Storage    Storage         `mapstructure:"storage"`
	Stream     Stream          `mapstructure:"stream"`
}

// Load loads the api service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, setDefaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sentiment-api")

	v.SetDefault("news.limit", 20)
	v.SetDefault("news.page", 0)
	v.SetDefault("news.fmp.enabled", true)
	v.SetDefault("news.fmp.base_url", "https://financialmodelingprep.com/stable/fmp-articles")
	v.SetDefault("news.fmp.user_agent", "FinancialSentimentApp/1.0")
	v.SetDefault("news.fmp.timeout", "15s")
	v.SetDefault("news.fmp.max_request_per_minute", 60)
	_ = v.BindEnv("news.fmp.api_key", "API_KEY", "NEWS_FMP_API_KEY")
	v.SetDefault("news.rss.enabled", false)
	v.SetDefault("news.rss.url_template", "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en")
	v.SetDefault("news.rss.timeout", "10s")

	v.SetDefault("classifier.backend", "finbert")
	v.SetDefault("classifier.model_name", "yiyanghkust/finbert-tone")
	v.SetDefault("classifier.model_dir", "./models")
	v.SetDefault("classifier.async_load", true)

	v.SetDefault("storage.insert_batch_size", 100)

	v.SetDefault("stream.enabled", false)
	v.SetDefault("stream.consumer", "sentiment-api-1")
	v.SetDefault("stream.block_timeout", "5s")
	v.SetDefault("stream.process_timeout", "2m")
}
