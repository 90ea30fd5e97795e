package giveaway

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Record is a committed giveaway awaiting finalization. It is keyed by the
// id of its announcement message and lives in the store from commit until it
// is finalized or cancelled. EndsAt is fixed at commit time and never
// mutated.
type Record struct {
	MessageID    snowflake.ID  `json:"-"`
	ChannelID    snowflake.ID  `json:"channel_id"`
	EndsAt       int64         `json:"end_time"`
	WinnerCount  int           `json:"winner_count"`
	Prize        string        `json:"prize"`
	Reaction     string        `json:"reaction"`
	RequiredRole *snowflake.ID `json:"required_role,omitempty"`
	ForcedWinner *snowflake.ID `json:"forced_winner,omitempty"`
	HostID       snowflake.ID  `json:"host_id"`
}

// Due reports whether the giveaway should be finalized at the given instant.
func (r *Record) Due(now time.Time) bool {
	return r.EndsAt <= now.Unix()
}

// EndTime returns the absolute end instant in UTC.
func (r *Record) EndTime() time.Time {
	return time.Unix(r.EndsAt, 0).UTC()
}
