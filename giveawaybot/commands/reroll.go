package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
)

// RerollCommand draws one replacement winner from the reactors of an ended
// giveaway message in the current channel.
var RerollCommand = Command{
	Name:        "reroll",
	Description: "Draw a new winner from a giveaway message",
	Elevated:    true,
	Handler:     runReroll,
}

func runReroll(c Context) error {
	e := c.Event
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	if len(c.Args) == 0 {
		_, err := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: fmt.Sprintf("Usage: `%sreroll <message id>`", c.Bot.Cfg.Bot.Prefix),
		})
		return err
	}
	messageID, ok := parseIDArg(c.Args)
	if !ok {
		_, err := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: fmt.Sprintf("%q is not a message id.", c.Args[0]),
		})
		return err
	}

	winner, err := c.Bot.Engine.Reroll(ctx, e.ChannelID, messageID)
	if err != nil {
		content := "Could not reroll that giveaway."
		var rErr *giveaway.ResolutionError
		switch {
		case errors.As(err, &rErr):
			content = "No message with that id in this channel."
		case errors.Is(err, giveaway.ErrNoParticipants):
			content = "Nobody reacted to that message, so there is no one to draw."
		}
		_, sendErr := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{Content: content})
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
		Content: fmt.Sprintf("🎉 The new winner is <@%s>! Congratulations!", winner),
	})
	return err
}
