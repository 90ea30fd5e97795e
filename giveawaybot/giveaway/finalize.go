package giveaway

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Finalize drives one due giveaway to its terminal state. Removal from the
// store is always the last durable step, and it happens even when a side
// effect fails: a transient messaging failure may swallow the winner
// announcement, but a record can never be finalized twice. Vanished
// channels or messages drop the record with only a log line.
func (e *Engine) Finalize(ctx context.Context, rec *Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	drop := func() {
		e.store.Remove(rec.MessageID)
		if err := e.store.Save(); err != nil {
			slog.Warn("Could not persist giveaway store after finalize",
				slog.String("type", "db"),
				slog.String("message_id", rec.MessageID.String()),
				slog.Any("error", err))
		}
	}

	ch, err := e.directory.Channel(ctx, rec.ChannelID)
	if err != nil {
		slog.Info("Giveaway channel vanished, dropping record",
			slog.String("message_id", rec.MessageID.String()),
			slog.String("channel_id", rec.ChannelID.String()))
		drop()
		return
	}

	msg, err := e.courier.Message(ctx, rec.ChannelID, rec.MessageID)
	if err != nil {
		slog.Info("Giveaway message vanished, dropping record",
			slog.String("message_id", rec.MessageID.String()))
		drop()
		return
	}

	if !messageHasReaction(msg, rec.Reaction) {
		if _, err := e.courier.Send(ctx, rec.ChannelID, noWinnersMessage(rec)); err != nil {
			slog.Warn("Could not send no-winners notice",
				slog.String("message_id", rec.MessageID.String()),
				slog.Any("error", err))
		}
		drop()
		return
	}

	pool := e.eligibleReactors(ctx, rec, ch.GuildID)
	winners := e.selector.Pick(pool, rec.WinnerCount, rec.ForcedWinner)

	if err := e.courier.Edit(ctx, rec.ChannelID, rec.MessageID, endedMessageUpdate(rec, winners)); err != nil {
		slog.Warn("Could not edit giveaway announcement",
			slog.String("message_id", rec.MessageID.String()),
			slog.Any("error", err))
	}

	var notice discord.MessageCreate
	if len(winners) > 0 {
		notice = congratsMessage(rec, winners)
	} else {
		notice = noWinnersMessage(rec)
	}
	if _, err := e.courier.Send(ctx, rec.ChannelID, notice); err != nil {
		slog.Warn("Could not send giveaway results",
			slog.String("message_id", rec.MessageID.String()),
			slog.Any("error", err))
	}

	drop()
	slog.Info("Giveaway finalized",
		slog.String("message_id", rec.MessageID.String()),
		slog.Int("participants", len(pool)),
		slog.Int("winners", len(winners)))
}

// eligibleReactors collects the deduplicated non-bot reactors, filtered to
// the required role when one is set. Members the directory cannot vouch for
// are skipped rather than failing the whole draw.
func (e *Engine) eligibleReactors(ctx context.Context, rec *Record, guildID snowflake.ID) []snowflake.ID {
	users, err := e.courier.Reactors(ctx, rec.ChannelID, rec.MessageID, rec.Reaction)
	if err != nil {
		slog.Warn("Could not enumerate giveaway reactors",
			slog.String("message_id", rec.MessageID.String()),
			slog.Any("error", err))
		return nil
	}

	pool := make([]snowflake.ID, 0, len(users))
	for _, u := range users {
		if u.Bot {
			continue
		}
		if rec.RequiredRole != nil {
			has, err := e.directory.MemberHasRole(ctx, guildID, u.ID, *rec.RequiredRole)
			if err != nil {
				slog.Debug("Skipping unresolvable giveaway participant",
					slog.String("user_id", u.ID.String()),
					slog.Any("error", err))
				continue
			}
			if !has {
				continue
			}
		}
		pool = append(pool, u.ID)
	}
	return pool
}

func messageHasReaction(msg *discord.Message, emoji string) bool {
	for _, r := range msg.Reactions {
		if r.Emoji.Name == emoji {
			return true
		}
	}
	return false
}
