package domain

// Status words reported by the presence service.
const (
	StatusOnline  = "online"
	StatusIdle    = "idle"
	StatusDnd     = "dnd"
	StatusOffline = "offline"
)

// Placeholder values used when an account cannot be resolved.
const (
	UnknownDisplayName = "Unknown"
	UnknownCommunity   = "Unknown Server"
)

// Lanyard activity type codes.
const (
	ActivityTypePlaying   = 0
	ActivityTypeListening = 2
	ActivityTypeCustom    = 4
)
