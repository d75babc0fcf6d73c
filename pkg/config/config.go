package config

import (
	"os"
	"time"

	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gopkg.in/yaml.v3"
)

type WorkerConfig struct {
	BatchSize           int `yaml:"batchSize"`
	PollIntervalSeconds int `yaml:"pollIntervalSeconds"`
	StaleAfterMinutes   int `yaml:"staleAfterMinutes"`
}

type Config struct {
	Worker WorkerConfig `yaml:"worker"`

	// Channels holds per-type provider defaults, merged under any
	// channel row whose stored config leaves fields empty.
	Channels map[string]models.ChannelConfig `yaml:"channels"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Worker.PollIntervalSeconds == 0 {
		c.Worker.PollIntervalSeconds = 60
	}
	if c.Worker.StaleAfterMinutes == 0 {
		c.Worker.StaleAfterMinutes = 5
	}
	if c.Channels == nil {
		c.Channels = make(map[string]models.ChannelConfig)
	}
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Worker.PollIntervalSeconds) * time.Second
}

func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.Worker.StaleAfterMinutes) * time.Minute
}

// MergeChannelConfig fills empty fields of a channel's stored config
// from the per-type defaults, so credentials can live in the config
// file instead of the database.
func (c *Config) MergeChannelConfig(channelType string, stored models.ChannelConfig) models.ChannelConfig {
	defaults, ok := c.Channels[channelType]
	if !ok {
		return stored
	}
	if stored.Provider == "" {
		stored.Provider = defaults.Provider
	}
	if stored.APIKey == "" {
		stored.APIKey = defaults.APIKey
	}
	if stored.FromEmail == "" {
		stored.FromEmail = defaults.FromEmail
	}
	if stored.FromName == "" {
		stored.FromName = defaults.FromName
	}
	if stored.FromNumber == "" {
		stored.FromNumber = defaults.FromNumber
	}
	if stored.AccountSID == "" {
		stored.AccountSID = defaults.AccountSID
	}
	if stored.AuthToken == "" {
		stored.AuthToken = defaults.AuthToken
	}
	if stored.SMTPHost == "" {
		stored.SMTPHost = defaults.SMTPHost
	}
	if stored.SMTPPort == 0 {
		stored.SMTPPort = defaults.SMTPPort
	}
	if stored.SMTPUsername == "" {
		stored.SMTPUsername = defaults.SMTPUsername
	}
	if stored.SMTPPassword == "" {
		stored.SMTPPassword = defaults.SMTPPassword
	}
	return stored
}
