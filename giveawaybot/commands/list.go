package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/components"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
)

// ListGiveawaysCommand shows every running giveaway, soonest ending first.
var ListGiveawaysCommand = Command{
	Name:        "list_giveaways",
	Description: "List all running giveaways",
	Elevated:    true,
	Handler:     runListGiveaways,
}

func runListGiveaways(c Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	embeds, rows := components.BuildGiveawayList(c.Bot.Engine.Active(), 0)
	_, err := c.Bot.Platform.Send(ctx, c.Event.ChannelID, discord.MessageCreate{
		Embeds:     embeds,
		Components: rows,
	})
	return err
}
