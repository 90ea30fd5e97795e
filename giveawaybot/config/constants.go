package config

import "time"

// UI and display constants
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	GiveawayColor = 0xF1C40F
	EndedColor    = 0x546E7A

	GiveawaysPerPage = 10
)

// Draft defaults
const (
	DefaultReaction    = "🎉"
	DefaultPrize       = "Mystery prize"
	DefaultWinnerCount = 1
)

// Timing constants
const (
	PollInterval           = 15 * time.Second
	FinalizeTimeout        = 30 * time.Second
	CommandTimeout         = 10 * time.Second
	SessionTimeout         = 10 * time.Minute
	SessionCleanupInterval = time.Minute
	ShutdownTimeout        = 10 * time.Second
)

// Platform adapter constants
const (
	MemberCacheSize  = 1024
	ReactorPageSize  = 100
	DefaultPrefix    = "+"
	DefaultStorePath = "giveaways.json"
	DefaultWebPort   = 8080
)

// CelebrationReactions are the reaction emojis reroll recognizes on an ended
// giveaway message. The first entry is the default a new draft starts with.
var CelebrationReactions = []string{"🎉", "🎊", "🥳", "🎁"}
