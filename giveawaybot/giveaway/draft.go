package giveaway

import (
	"fmt"

	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/snowflake/v2"
)

// Draft is one actor's in-progress giveaway configuration. At most one draft
// exists per actor; it lives only in the session store and is consumed into
// a Record on commit or discarded on cancel.
type Draft struct {
	HostID  snowflake.ID
	GuildID snowflake.ID

	// DurationToken is the raw token the actor supplied. It is the single
	// mandatory field; commit re-parses it.
	DurationToken string

	// ChannelID is the announcement target, defaulting to the channel the
	// configuration was opened in.
	ChannelID    snowflake.ID
	ForcedWinner snowflake.ID
	RequiredRole snowflake.ID
	WinnerCount  int
	Reaction     string
	Prize        string
}

// NewDraft returns a draft with the documented defaults.
func NewDraft(host, guild, origin snowflake.ID) *Draft {
	return &Draft{
		HostID:      host,
		GuildID:     guild,
		ChannelID:   origin,
		WinnerCount: config.DefaultWinnerCount,
		Reaction:    config.DefaultReaction,
		Prize:       config.DefaultPrize,
	}
}

// Describe renders the current value of a field for the configuration menu.
func (d *Draft) Describe(f Field) string {
	switch f {
	case FieldDuration:
		if d.DurationToken == "" {
			return "not set (required)"
		}
		return fmt.Sprintf("`%s`", d.DurationToken)
	case FieldChannel:
		return fmt.Sprintf("<#%s>", d.ChannelID)
	case FieldWinnerCount:
		return fmt.Sprintf("%d", d.WinnerCount)
	case FieldReaction:
		return d.Reaction
	case FieldPrize:
		return d.Prize
	case FieldForcedWinner:
		if d.ForcedWinner == 0 {
			return "none"
		}
		return fmt.Sprintf("<@%s>", d.ForcedWinner)
	case FieldRequiredRole:
		if d.RequiredRole == 0 {
			return "none"
		}
		return fmt.Sprintf("<@&%s>", d.RequiredRole)
	default:
		return ""
	}
}
