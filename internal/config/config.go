package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"

	"guildbadge/internal/domain"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Upstream Upstream `yaml:"upstream"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Upstream struct {
	BotToken  string `yaml:"botToken"`
	UserAgent string `yaml:"userAgent"`

	DirectoryBaseURL string `yaml:"directoryBaseURL"`
	PresenceBaseURL  string `yaml:"presenceBaseURL"`
	CDNBaseURL       string `yaml:"cdnBaseURL"`

	DefaultBackgroundURL string `yaml:"defaultBackgroundURL"`

	InviteTTLSeconds   int `yaml:"inviteTTLSeconds"`
	PresenceTTLSeconds int `yaml:"presenceTTLSeconds"`
	ProfileTTLSeconds  int `yaml:"profileTTLSeconds"`

	DirectoryTimeoutSeconds int `yaml:"directoryTimeoutSeconds"`
	PresenceTimeoutSeconds  int `yaml:"presenceTimeoutSeconds"`
	ImageTimeoutSeconds     int `yaml:"imageTimeoutSeconds"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	config.applyDefaults()

	if token := os.Getenv("GUILDBADGE_BOT_TOKEN"); token != "" {
		config.Upstream.BotToken = token
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = "guildbadge (+https://github.com/guildbadge)"
	}
	if c.Upstream.DirectoryBaseURL == "" {
		c.Upstream.DirectoryBaseURL = "https://discord.com/api/v10"
	}
	if c.Upstream.PresenceBaseURL == "" {
		c.Upstream.PresenceBaseURL = "https://api.lanyard.rest/v1"
	}
	if c.Upstream.CDNBaseURL == "" {
		c.Upstream.CDNBaseURL = "https://cdn.discordapp.com"
	}
	if c.Upstream.InviteTTLSeconds == 0 {
		c.Upstream.InviteTTLSeconds = 90
	}
	if c.Upstream.PresenceTTLSeconds == 0 {
		c.Upstream.PresenceTTLSeconds = 60
	}
	if c.Upstream.ProfileTTLSeconds == 0 {
		c.Upstream.ProfileTTLSeconds = 1800
	}
	if c.Upstream.DirectoryTimeoutSeconds == 0 {
		c.Upstream.DirectoryTimeoutSeconds = 5
	}
	if c.Upstream.PresenceTimeoutSeconds == 0 {
		c.Upstream.PresenceTimeoutSeconds = 3
	}
	if c.Upstream.ImageTimeoutSeconds == 0 {
		c.Upstream.ImageTimeoutSeconds = 3
	}
}

// Domain flattens the file representation into the runtime settings
// shared across components.
func (c Config) Domain() domain.Config {
	u := c.Upstream
	return domain.Config{
		BotToken:             u.BotToken,
		UserAgent:            u.UserAgent,
		DirectoryBaseURL:     u.DirectoryBaseURL,
		PresenceBaseURL:      u.PresenceBaseURL,
		CDNBaseURL:           u.CDNBaseURL,
		DefaultBackgroundURL: u.DefaultBackgroundURL,
		InviteTTL:            time.Duration(u.InviteTTLSeconds) * time.Second,
		PresenceTTL:          time.Duration(u.PresenceTTLSeconds) * time.Second,
		ProfileTTL:           time.Duration(u.ProfileTTLSeconds) * time.Second,
		DirectoryTimeout:     time.Duration(u.DirectoryTimeoutSeconds) * time.Second,
		PresenceTimeout:      time.Duration(u.PresenceTimeoutSeconds) * time.Second,
		ImageTimeout:         time.Duration(u.ImageTimeoutSeconds) * time.Second,
	}
}
