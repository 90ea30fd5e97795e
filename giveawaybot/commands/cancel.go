package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
)

// CancelGiveawayCommand stops a running giveaway before its end time. No
// winners are drawn and the record is dropped from the store.
var CancelGiveawayCommand = Command{
	Name:        "cancel_giveaway",
	Description: "Cancel a running giveaway by its message id",
	Elevated:    true,
	Handler:     runCancelGiveaway,
}

func runCancelGiveaway(c Context) error {
	e := c.Event
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	if len(c.Args) == 0 {
		_, err := c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
			Content: fmt.Sprintf("Usage: `%scancel_giveaway <message id>`", c.Bot.Cfg.Bot.Prefix),
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

	rec, err := c.Bot.Engine.CancelGiveaway(ctx, messageID)
	if err != nil {
		var rErr *giveaway.ResolutionError
		if errors.As(err, &rErr) {
			_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
				Content: "No running giveaway with that message id.",
			})
			return err
		}
		return err
	}

	_, err = c.Bot.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{
		Content: fmt.Sprintf("Cancelled the giveaway for **%s**.", rec.Prize),
	})
	return err
}
