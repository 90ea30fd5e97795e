package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/platform"
)

// ArchiveCommand renames the referenced channel to the next archive-N slot
// and moves it under the configured archive category.
var ArchiveCommand = Command{
	Name:        "archive",
	Description: "Archive a channel by its id",
	Elevated:    true,
	Handler:     runArchive,
}

func runArchive(c Context) error {
	e := c.Event
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	if len(c.Args) == 0 {
		_, err := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: fmt.Sprintf("Please provide a channel ID. Usage: `%sarchive <channel id>`", c.Bot.Cfg.Bot.Prefix),
		})
		return err
	}
	channelID, ok := parseIDArg(c.Args)
	if !ok {
		_, err := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: "Invalid channel ID. Please provide a valid channel ID.",
		})
		return err
	}

	categoryID := c.Bot.Cfg.Archive.CategoryID
	if categoryID == 0 {
		_, err := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: "No archive category is configured.",
		})
		return err
	}

	ch, err := c.Bot.Platform.Channel(ctx, channelID)
	if err != nil {
		_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: fmt.Sprintf("Could not find channel with ID %s.", channelID),
		})
		return err
	}

	n, err := c.Bot.Platform.NextArchiveNumber(ctx, *e.GuildID)
	if err != nil {
		return err
	}
	name := platform.ArchiveName(n)
	if err := c.Bot.Platform.ArchiveChannel(ctx, ch.ID, categoryID, name); err != nil {
		return err
	}

	_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
		Content: fmt.Sprintf("Channel %s has been archived as **%s**.", ch.Name, name),
	})
	return err
}
