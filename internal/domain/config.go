package domain

import "time"

// Config carries the resolved runtime settings shared by the
// aggregation components. Populated once at startup from the config
// file; read-only afterwards.
type Config struct {
	BotToken  string
	UserAgent string

	DirectoryBaseURL string
	PresenceBaseURL  string
	CDNBaseURL       string

	DefaultBackgroundURL string

	InviteTTL   time.Duration
	PresenceTTL time.Duration
	ProfileTTL  time.Duration

	DirectoryTimeout time.Duration
	PresenceTimeout  time.Duration
	ImageTimeout     time.Duration
}

// HasBotToken reports whether privileged directory lookups are
// possible.
func (c Config) HasBotToken() bool {
	return c.BotToken != ""
}
