// Package components holds the interactive message components the bot
// registers on its handler mux.
package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/giveaway-bot/giveawaybot"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
)

const (
	MenuCustomID     = "/giveaway/menu"
	ValidateCustomID = "/giveaway/validate"
	CancelCustomID   = "/giveaway/cancel"
)

// BuildMenu renders the configuration menu for the given draft: one embed
// listing every field's current value, a select menu to pick a field and the
// validate/cancel buttons.
func BuildMenu(d giveaway.Draft) ([]discord.Embed, []discord.ContainerComponent) {
	fields := make([]discord.EmbedField, 0, len(giveaway.MenuFields))
	options := make([]discord.StringSelectMenuOption, 0, len(giveaway.MenuFields))
	inline := true
	for _, f := range giveaway.MenuFields {
		if !f.Immediate() {
			fields = append(fields, discord.EmbedField{
				Name:   f.Label(),
				Value:  d.Describe(f),
				Inline: &inline,
			})
		}
		options = append(options, discord.StringSelectMenuOption{
			Label: f.Label(),
			Value: f.Key(),
		})
	}

	embeds := []discord.Embed{{
		Title:       "🎉 Giveaway Setup",
		Description: "Pick a field below, then reply with its value. Only the duration is required.",
		Color:       config.GiveawayColor,
		Fields:      fields,
		Footer:      &discord.EmbedFooter{Text: fmt.Sprintf("Host: %s", d.HostID)},
	}}
	components := []discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewStringSelectMenu(MenuCustomID, "Configure a field", options...).
				WithMinValues(1).
				WithMaxValues(1),
		),
		discord.NewActionRow(
			discord.NewSuccessButton("Validate", ValidateCustomID),
			discord.NewDangerButton("Cancel", CancelCustomID),
		),
	}
	return embeds, components
}

// MenuHandler reacts to the field select menu. Remove variants apply in
// place; every other field flips the session to awaiting the actor's next
// message and answers with an ephemeral prompt.
func MenuHandler(b *giveawaybot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		data, ok := e.Data.(discord.StringSelectMenuInteractionData)
		if !ok || len(data.Values) == 0 {
			return nil
		}
		actor := e.User().ID
		if !b.Engine.OwnsMenu(actor, e.Message.ID) {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This setup menu belongs to someone else. Run the giveaway command to get your own.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		f, ok := giveaway.FieldByKey(data.Values[0])
		if !ok {
			return nil
		}

		d, promptNeeded, err := b.Engine.SelectField(actor, f)
		if errors.Is(err, giveaway.ErrNoSession) {
			return e.CreateMessage(discord.MessageCreate{
				Content: "Your setup session expired. Run the giveaway command to start over.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		if err != nil {
			return err
		}

		if !promptNeeded {
			embeds, components := BuildMenu(d)
			return e.UpdateMessage(discord.MessageUpdate{
				Embeds:     &embeds,
				Components: &components,
			})
		}
		return e.CreateMessage(discord.MessageCreate{
			Content: f.Prompt(),
			Flags:   discord.MessageFlagEphemeral,
		})
	}
}

// ValidateHandler commits the draft: announces the giveaway and replaces the
// menu with a confirmation.
func ValidateHandler(b *giveawaybot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		actor := e.User().ID
		if !b.Engine.OwnsMenu(actor, e.Message.ID) {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This setup menu belongs to someone else.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		rec, err := b.Engine.Commit(ctx, actor)
		if err != nil {
			var vErr *giveaway.ValidationError
			if errors.As(err, &vErr) {
				return e.CreateMessage(discord.MessageCreate{
					Content: fmt.Sprintf("Cannot start the giveaway yet: %s.", vErr.Reason),
					Flags:   discord.MessageFlagEphemeral,
				})
			}
			slog.Error("Failed to commit giveaway",
				slog.String("user_id", actor.String()),
				slog.Any("error", err))
			return e.CreateMessage(discord.MessageCreate{
				Content: "Could not start the giveaway. Check the channel and try again.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		embeds := []discord.Embed{{
			Title:       "✅ Giveaway started",
			Description: fmt.Sprintf("**%s** is running in <#%s>.", rec.Prize, rec.ChannelID),
			Color:       config.SuccessColor,
		}}
		components := []discord.ContainerComponent{}
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &embeds,
			Components: &components,
		})
	}
}

// CancelHandler discards the draft and defuses the menu.
func CancelHandler(b *giveawaybot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		actor := e.User().ID
		if !b.Engine.OwnsMenu(actor, e.Message.ID) {
			return e.CreateMessage(discord.MessageCreate{
				Content: "This setup menu belongs to someone else.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		b.Engine.Cancel(actor)

		embeds := []discord.Embed{{
			Title:       "Giveaway setup cancelled",
			Description: "Nothing was started. Run the giveaway command to begin again.",
			Color:       config.ErrorColor,
		}}
		components := []discord.ContainerComponent{}
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &embeds,
			Components: &components,
		})
	}
}
