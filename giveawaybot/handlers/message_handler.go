// Package handlers wires gateway events into the giveaway engine and the
// prefix command surface.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/giveaway-bot/giveawaybot"
	"github.com/disgoorg/giveaway-bot/giveawaybot/commands"
	"github.com/disgoorg/giveaway-bot/giveawaybot/components"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
	"github.com/disgoorg/giveaway-bot/giveawaybot/logger"
)

// MessageHandler routes guild messages. A message from an actor whose setup
// session awaits a field value is consumed as that value; anything else is
// checked against the command prefix.
func MessageHandler(b *giveawaybot.Bot) bot.EventListener {
	all := commands.All()

	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot || e.GuildID == nil {
			return
		}

		if b.Engine.HasPending(e.Message.Author.ID) {
			handleFieldValue(b, e)
			return
		}

		content := strings.TrimSpace(e.Message.Content)
		if !strings.HasPrefix(content, b.Cfg.Bot.Prefix) {
			return
		}
		parts := strings.Fields(strings.TrimPrefix(content, b.Cfg.Bot.Prefix))
		if len(parts) == 0 {
			return
		}
		cmd, ok := all[strings.ToLower(parts[0])]
		if !ok {
			return
		}

		runCommand(b, cmd, commands.Context{
			Bot:   b,
			Event: e,
			Args:  parts[1:],
		})
	})
}

// handleFieldValue consumes the actor's reply into the awaited draft field.
// The reply is deleted whether or not it validates, keeping the channel to
// the menu and short notices.
func handleFieldValue(b *giveawaybot.Bot, e *events.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	actor := e.Message.Author.ID
	if err := b.Platform.Delete(ctx, e.ChannelID, e.MessageID); err != nil {
		slog.Debug("Could not delete field value message",
			slog.String("message_id", e.MessageID.String()),
			slog.Any("error", err))
	}

	draft, field, err := b.Engine.SubmitValue(ctx, actor, e.Message.Content)
	if err != nil {
		var vErr *giveaway.ValidationError
		if errors.As(err, &vErr) {
			notice := fmt.Sprintf("<@%s> Invalid value for **%s**: %s. Pick the field again to retry.",
				actor, vErr.Field.Label(), vErr.Reason)
			if _, sendErr := b.Platform.Send(ctx, e.ChannelID, discord.MessageCreate{Content: notice}); sendErr != nil {
				slog.Warn("Could not send validation notice", slog.Any("error", sendErr))
			}
			return
		}
		if !errors.Is(err, giveaway.ErrNoSession) {
			slog.Error("Failed to apply field value",
				slog.String("user_id", actor.String()),
				slog.Any("error", err))
		}
		return
	}

	slog.Info("Giveaway field updated",
		slog.String("user_id", actor.String()),
		slog.String("field", field.Label()))

	menuChannel, menuMessage, ok := b.Engine.MenuRef(actor)
	if !ok {
		return
	}
	embeds, rows := components.BuildMenu(draft)
	if err := b.Platform.Edit(ctx, menuChannel, menuMessage, discord.MessageUpdate{
		Embeds:     &embeds,
		Components: &rows,
	}); err != nil {
		slog.Warn("Could not refresh giveaway menu",
			slog.String("message_id", menuMessage.String()),
			slog.Any("error", err))
	}
}

func runCommand(b *giveawaybot.Bot, cmd commands.Command, c commands.Context) {
	e := c.Event
	start := time.Now()

	logger.LogCommandStart(cmd.Name,
		slog.String("user_id", e.Message.Author.ID.String()),
		slog.String("user_name", e.Message.Author.Username),
		slog.String("channel_id", e.ChannelID.String()),
	)

	if cmd.Elevated {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		allowed := b.Platform.HasElevated(ctx, *e.GuildID, e.Message.Author.ID)
		cancel()
		if !allowed {
			if _, err := b.Platform.Send(context.Background(), e.ChannelID, discord.MessageCreate{
				Content: "You need the Administrator or Manage Server permission for that.",
			}); err != nil {
				slog.Warn("Could not send permission notice", slog.Any("error", err))
			}
			slog.Warn("Command denied",
				slog.String("type", "cmd"),
				slog.String("name", cmd.Name),
				slog.String("user_id", e.Message.Author.ID.String()),
				slog.String("status", "denied"))
			return
		}
	}

	err := cmd.Handler(c)

	logger.LogCommandDone(cmd.Name, time.Since(start), err,
		slog.String("user_id", e.Message.Author.ID.String()),
		slog.String("user_name", e.Message.Author.Username),
	)
}
