package commands

import (
	"context"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
)

// CheckPermissionsCommand reports the bot's effective permissions in the
// guild, so a misbehaving deployment can be diagnosed from chat.
var CheckPermissionsCommand = Command{
	Name:        "check_permissions",
	Description: "Show the bot's permissions in this server",
	Elevated:    false,
	Handler:     runCheckPermissions,
}

// neededPermissions are the permissions the bot relies on, checked in the
// order they matter.
var neededPermissions = []struct {
	name string
	perm discord.Permissions
}{
	{"Send Messages", discord.PermissionSendMessages},
	{"Embed Links", discord.PermissionEmbedLinks},
	{"Add Reactions", discord.PermissionAddReactions},
	{"Manage Messages", discord.PermissionManageMessages},
	{"Read Message History", discord.PermissionReadMessageHistory},
	{"Manage Channels", discord.PermissionManageChannels},
}

func runCheckPermissions(c Context) error {
	e := c.Event
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	perms, err := c.Bot.Platform.GuildPermissions(ctx, *e.GuildID, c.Bot.Client.ID())
	if err != nil {
		_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: "Could not look up my own permissions here.",
		})
		return err
	}

	var lines []string
	for _, p := range neededPermissions {
		mark := "❌"
		if perms.Has(p.perm) {
			mark = "✅"
		}
		lines = append(lines, mark+" "+p.name)
	}
	if perms.Has(discord.PermissionAdministrator) {
		lines = append([]string{"✅ Administrator"}, lines...)
	}

	_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "Bot permissions",
			Description: strings.Join(lines, "\n"),
			Color:       config.InfoColor,
		}},
	})
	return err
}
