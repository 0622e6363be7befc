package domain

// InviteSummary is the raw result of one directory invite lookup,
// before display escaping.
type InviteSummary struct {
	GuildID     string
	Name        string
	IconURL     string
	MemberCount uint64
	OnlineCount uint64
}

// Profile is a directory user-profile lookup result.
type Profile struct {
	ID        string
	Username  string
	AvatarURL string
}

// Activity is one presence activity entry.
type Activity struct {
	Type  int
	Name  string
	State string
}

// Presence is the live state of one account as reported by the
// presence service.
type Presence struct {
	AccountID  string
	Username   string
	Status     string
	AvatarURL  string
	Activities []Activity
}
