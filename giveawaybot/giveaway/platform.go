package giveaway

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// The engine talks to Discord only through these collaborator interfaces so
// the lifecycle logic can be driven by fakes in tests.

// ChannelInfo is the slice of channel state the engine needs.
type ChannelInfo struct {
	ID      snowflake.ID
	GuildID snowflake.ID
	Name    string
}

// Directory resolves guild entities. Lookup failures come back as plain
// errors; the engine decides whether that means re-prompt or drop.
type Directory interface {
	// Channel resolves an existing channel by id.
	Channel(ctx context.Context, id snowflake.ID) (*ChannelInfo, error)
	// ResolveChannel resolves an actor-typed channel reference: a #mention,
	// a raw id or a (fuzzy-matched) name within the guild.
	ResolveChannel(ctx context.Context, guildID snowflake.ID, query string) (*ChannelInfo, error)
	// ResolveMember resolves a @mention or raw id to a member of the guild.
	ResolveMember(ctx context.Context, guildID snowflake.ID, query string) (snowflake.ID, error)
	// ResolveRole resolves a role mention, raw id or name within the guild.
	ResolveRole(ctx context.Context, guildID snowflake.ID, query string) (snowflake.ID, error)
	// MemberHasRole reports whether the member currently holds the role.
	MemberHasRole(ctx context.Context, guildID, userID, roleID snowflake.ID) (bool, error)
}

// Courier sends, edits and inspects messages on behalf of the engine.
type Courier interface {
	Send(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error)
	Edit(ctx context.Context, channelID, messageID snowflake.ID, update discord.MessageUpdate) error
	Delete(ctx context.Context, channelID, messageID snowflake.ID) error
	React(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error
	Message(ctx context.Context, channelID, messageID snowflake.ID) (*discord.Message, error)
	// Reactors enumerates every user who attached the given reaction,
	// bots included; the engine filters.
	Reactors(ctx context.Context, channelID, messageID snowflake.ID, emoji string) ([]discord.User, error)
}
