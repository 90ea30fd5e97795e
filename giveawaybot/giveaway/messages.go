package giveaway

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/snowflake/v2"
)

func mention(id snowflake.ID) string {
	return fmt.Sprintf("<@%s>", id)
}

func mentionAll(ids []snowflake.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = mention(id)
	}
	return strings.Join(parts, ", ")
}

func announcementMessage(d *Draft, ends time.Time) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🎉 Giveaway",
			Description: fmt.Sprintf("**%s**\n\nReact with %s to enter!", d.Prize, d.Reaction),
			Color:       config.GiveawayColor,
			Fields: []discord.EmbedField{
				{Name: "Winners", Value: fmt.Sprintf("%d", d.WinnerCount)},
				{Name: "Hosted by", Value: mention(d.HostID)},
			},
			Footer:    &discord.EmbedFooter{Text: "Ends"},
			Timestamp: &ends,
		}},
	}
}

func endedMessageUpdate(rec *Record, winners []snowflake.ID) discord.MessageUpdate {
	result := "No valid participants"
	if len(winners) > 0 {
		result = mentionAll(winners)
	}
	ends := rec.EndTime()
	return discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Title:       "🎉 Giveaway ended",
			Description: fmt.Sprintf("**%s**\n\nWinners: %s", rec.Prize, result),
			Color:       config.EndedColor,
			Fields: []discord.EmbedField{
				{Name: "Hosted by", Value: mention(rec.HostID)},
			},
			Footer:    &discord.EmbedFooter{Text: "Ended"},
			Timestamp: &ends,
		}},
	}
}

func cancelledMessageUpdate(rec *Record) discord.MessageUpdate {
	return discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Title:       "🚫 Giveaway cancelled",
			Description: fmt.Sprintf("**%s**", rec.Prize),
			Color:       config.ErrorColor,
			Fields: []discord.EmbedField{
				{Name: "Hosted by", Value: mention(rec.HostID)},
			},
		}},
	}
}

func congratsMessage(rec *Record, winners []snowflake.ID) discord.MessageCreate {
	return discord.MessageCreate{
		Content: fmt.Sprintf("Congratulations %s! You won **%s**! 🎉", mentionAll(winners), rec.Prize),
	}
}

func noWinnersMessage(rec *Record) discord.MessageCreate {
	return discord.MessageCreate{
		Content: fmt.Sprintf("No winners could be selected for **%s**.", rec.Prize),
	}
}
