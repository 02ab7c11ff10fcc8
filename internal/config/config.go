package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	News     NewsConfig     `yaml:"news"`
	Bio      BioConfig      `yaml:"bio"`
	Social   SocialConfig   `yaml:"social"`
	Alerts   AlertsConfig   `yaml:"alerts"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ScheduleConfig configures the watchlist refresh loop.
type ScheduleConfig struct {
	RefreshInterval string  `yaml:"refresh_interval"`
	AlertDelta      float64 `yaml:"alert_delta"`
}

// ParseRefreshInterval returns the refresh interval as time.Duration.
func (s ScheduleConfig) ParseRefreshInterval() time.Duration {
	d, err := time.ParseDuration(s.RefreshInterval)
	if err != nil {
		return 6 * time.Hour
	}
	return d
}

// ScoringConfig holds the component weight table. Weights are nominal
// maxima; the engine rescales against the weights of available sources.
type ScoringConfig struct {
	Weights WeightsConfig `yaml:"weights"`
}

// WeightsConfig are the six component maxima.
type WeightsConfig struct {
	Reach       float64 `yaml:"reach"`
	Engagement  float64 `yaml:"engagement"`
	Longevity   float64 `yaml:"longevity"`
	Credibility float64 `yaml:"credibility"`
	Impact      float64 `yaml:"impact"`
	Consistency float64 `yaml:"consistency"`
}

// NewsConfig configures the news collaborator and the reducer.
type NewsConfig struct {
	Feeds            []FeedItem `yaml:"feeds"`
	ReputableDomains []string   `yaml:"reputable_domains"`
	MaxItems         int        `yaml:"max_items"`
}

// FeedItem is a single RSS feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// BioConfig configures the biography collaborator (OpenAI-compatible API).
type BioConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SocialConfig configures the social-analytics collaborator. Handles maps a
// person's name to their primary handle; people without an entry have no
// linked account and score without the social components.
type SocialConfig struct {
	Handles map[string]string `yaml:"handles"`
	// Seed drives the synthetic analytics fallback so repeated runs are
	// reproducible. The scoring engine itself never sees randomness.
	Seed int64 `yaml:"seed"`
}

// AlertsConfig configures alert destinations.
type AlertsConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./influenceiq.db"},
		Server:   ServerConfig{Port: 8080},
		Schedule: ScheduleConfig{
			RefreshInterval: "6h",
			AlertDelta:      10,
		},
		Scoring: ScoringConfig{
			Weights: WeightsConfig{
				Reach:       25,
				Engagement:  20,
				Longevity:   15,
				Credibility: 25,
				Impact:      10,
				Consistency: 5,
			},
		},
		News: NewsConfig{
			MaxItems: 10,
			ReputableDomains: []string{
				"forbes.com", "bloomberg.com", "wsj.com",
				"businessinsider.com", "inc.com", "bbc.co.uk",
			},
			Feeds: []FeedItem{
				{Name: "Forbes", URL: "https://www.forbes.com/real-time/feed2/"},
				{Name: "WSJ Markets", URL: "https://feeds.a.dj.com/rss/RSSMarketsMain.xml"},
				{Name: "Business Insider", URL: "https://www.businessinsider.com/rss"},
				{Name: "Inc", URL: "https://www.inc.com/rss"},
				{Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml"},
				{Name: "BBC Business", URL: "http://feeds.bbci.co.uk/news/business/rss.xml"},
				{Name: "BBC Technology", URL: "http://feeds.bbci.co.uk/news/technology/rss.xml"},
			},
		},
		Bio: BioConfig{
			Model: "gpt-4o-mini",
		},
		Social: SocialConfig{
			Handles: map[string]string{},
			Seed:    1,
		},
		Alerts: AlertsConfig{},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INFLUENCEIQ_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Bio.APIKey = v
		cfg.Bio.Enabled = true
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Bio.BaseURL = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
}
