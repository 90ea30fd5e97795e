package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/components"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
)

// GiveawayCommand opens (or re-posts) the actor's configuration menu. The
// draft survives re-invocation, so running the command again just moves the
// menu without losing configured values.
var GiveawayCommand = Command{
	Name:        "giveaway",
	Description: "Start configuring a giveaway",
	Elevated:    false,
	Handler:     runGiveaway,
}

func runGiveaway(c Context) error {
	e := c.Event
	actor := e.Message.Author.ID
	draft, created := c.Bot.Engine.Begin(actor, *e.GuildID, e.ChannelID)

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	embeds, rows := components.BuildMenu(draft)
	msg := discord.MessageCreate{Embeds: embeds, Components: rows}
	if !created {
		msg.Content = "Resuming your giveaway setup."
	}
	msgID, err := c.Bot.Platform.Send(ctx, e.ChannelID, msg)
	if err != nil {
		return fmt.Errorf("failed to post giveaway menu: %w", err)
	}
	c.Bot.Engine.BindMenu(actor, e.ChannelID, msgID)
	return nil
}
