// Package platform adapts the disgo client to the collaborator interfaces
// the giveaway engine consumes: entity resolution, messaging and reaction
// enumeration.
package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

// Client implements giveaway.Courier and giveaway.Directory on top of the
// Discord REST API. Member lookups go through a small LRU cache because
// finalizing a role-gated giveaway resolves one member per reactor.
type Client struct {
	rest    rest.Rest
	members *lru.Cache
}

// New wraps the given bot client.
func New(client bot.Client) *Client {
	members, _ := lru.New(config.MemberCacheSize)
	return &Client{
		rest:    client.Rest(),
		members: members,
	}
}

// Channel resolves a channel by id into the engine's view of it.
func (c *Client) Channel(ctx context.Context, id snowflake.ID) (*giveaway.ChannelInfo, error) {
	ch, err := c.rest.GetChannel(id, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", id, err)
	}
	guildCh, ok := ch.(discord.GuildMessageChannel)
	if !ok {
		return nil, fmt.Errorf("channel %s is not a guild message channel", id)
	}
	return &giveaway.ChannelInfo{
		ID:      guildCh.ID(),
		GuildID: guildCh.GuildID(),
		Name:    guildCh.Name(),
	}, nil
}

// ResolveChannel accepts a #mention, a raw id or a channel name. Names are
// fuzzy-matched against the guild's message channels so small typos still
// resolve.
func (c *Client) ResolveChannel(ctx context.Context, guildID snowflake.ID, query string) (*giveaway.ChannelInfo, error) {
	if id, ok := parseReference(query, "<#", ">"); ok {
		info, err := c.Channel(ctx, id)
		if err != nil {
			return nil, err
		}
		if info.GuildID != guildID {
			return nil, fmt.Errorf("channel %s belongs to another guild", id)
		}
		return info, nil
	}

	channels, err := c.rest.GetGuildChannels(guildID, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list guild channels: %w", err)
	}
	names := make([]string, len(channels))
	for i, ch := range channels {
		names[i] = ch.Name()
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no channel matching %q", query)
	}
	best := channels[matches[0].Index]
	return &giveaway.ChannelInfo{
		ID:      best.ID(),
		GuildID: guildID,
		Name:    best.Name(),
	}, nil
}

// ResolveMember accepts a @mention or a raw id.
func (c *Client) ResolveMember(ctx context.Context, guildID snowflake.ID, query string) (snowflake.ID, error) {
	id, ok := parseReference(query, "<@!", ">")
	if !ok {
		id, ok = parseReference(query, "<@", ">")
	}
	if !ok {
		return 0, fmt.Errorf("%q is not a member mention or id", query)
	}
	member, err := c.member(ctx, guildID, id)
	if err != nil {
		return 0, err
	}
	return member.User.ID, nil
}

// ResolveRole accepts a role mention, a raw id or a (fuzzy-matched) name.
func (c *Client) ResolveRole(ctx context.Context, guildID snowflake.ID, query string) (snowflake.ID, error) {
	roles, err := c.rest.GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to list guild roles: %w", err)
	}

	if id, ok := parseReference(query, "<@&", ">"); ok {
		for _, role := range roles {
			if role.ID == id {
				return role.ID, nil
			}
		}
		return 0, fmt.Errorf("no role %s in this guild", id)
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no role matching %q", query)
	}
	return roles[matches[0].Index].ID, nil
}

// MemberHasRole reports whether the member currently holds the role.
func (c *Client) MemberHasRole(ctx context.Context, guildID, userID, roleID snowflake.ID) (bool, error) {
	member, err := c.member(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	for _, id := range member.RoleIDs {
		if id == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) member(ctx context.Context, guildID, userID snowflake.ID) (*discord.Member, error) {
	key := guildID.String() + "/" + userID.String()
	if cached, ok := c.members.Get(key); ok {
		return cached.(*discord.Member), nil
	}
	member, err := c.rest.GetMember(guildID, userID, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}
	c.members.Add(key, member)
	return member, nil
}

// Send posts a message and returns its id.
func (c *Client) Send(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
	created, err := c.rest.CreateMessage(channelID, msg, rest.WithCtx(ctx))
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Edit updates a previously sent message.
func (c *Client) Edit(ctx context.Context, channelID, messageID snowflake.ID, update discord.MessageUpdate) error {
	_, err := c.rest.UpdateMessage(channelID, messageID, update, rest.WithCtx(ctx))
	return err
}

// Delete removes a message from the transcript.
func (c *Client) Delete(ctx context.Context, channelID, messageID snowflake.ID) error {
	return c.rest.DeleteMessage(channelID, messageID, rest.WithCtx(ctx))
}

// React attaches a reaction to a message.
func (c *Client) React(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error {
	return c.rest.AddReaction(channelID, messageID, emoji, rest.WithCtx(ctx))
}

// Message fetches a message with its current reactions.
func (c *Client) Message(ctx context.Context, channelID, messageID snowflake.ID) (*discord.Message, error) {
	return c.rest.GetMessage(channelID, messageID, rest.WithCtx(ctx))
}

// Reactors walks the reaction pages until the full participant set has been
// seen. Discord caps each page, so large giveaways take several requests.
func (c *Client) Reactors(ctx context.Context, channelID, messageID snowflake.ID, emoji string) ([]discord.User, error) {
	var all []discord.User
	var after snowflake.ID
	for {
		page, err := c.rest.GetReactions(channelID, messageID, emoji, discord.MessageReactionTypeNormal, int(after), config.ReactorPageSize, rest.WithCtx(ctx))
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if len(page) < config.ReactorPageSize {
			return all, nil
		}
		after = page[len(page)-1].ID
	}
}

// GuildPermissions computes a member's effective guild-level permissions as
// the union of @everyone and every held role.
func (c *Client) GuildPermissions(ctx context.Context, guildID, userID snowflake.ID) (discord.Permissions, error) {
	member, err := c.member(ctx, guildID, userID)
	if err != nil {
		return 0, err
	}
	roles, err := c.rest.GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to list guild roles: %w", err)
	}
	held := make(map[snowflake.ID]struct{}, len(member.RoleIDs))
	for _, id := range member.RoleIDs {
		held[id] = struct{}{}
	}

	var perms discord.Permissions
	for _, role := range roles {
		if role.ID == guildID { // @everyone
			perms = perms.Add(role.Permissions)
			continue
		}
		if _, ok := held[role.ID]; ok {
			perms = perms.Add(role.Permissions)
		}
	}
	return perms, nil
}

// HasElevated reports whether the member may run privileged giveaway
// commands, i.e. holds Administrator or Manage Server through its roles.
func (c *Client) HasElevated(ctx context.Context, guildID, userID snowflake.ID) bool {
	perms, err := c.GuildPermissions(ctx, guildID, userID)
	if err != nil {
		return false
	}
	return perms.Has(discord.PermissionAdministrator) || perms.Has(discord.PermissionManageGuild)
}

// parseReference extracts a snowflake from a wrapped mention such as
// "<#123>"; without the wrapping it falls back to parsing a bare id.
func parseReference(query, prefix, suffix string) (snowflake.ID, bool) {
	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, prefix) && strings.HasSuffix(query, suffix) {
		query = strings.TrimSuffix(strings.TrimPrefix(query, prefix), suffix)
	}
	id, err := snowflake.Parse(query)
	if err != nil {
		return 0, false
	}
	return id, true
}
