package components

import (
	"fmt"
	"strconv"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/giveaway-bot/giveawaybot"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
)

// ListPagePattern is the route the list pagination buttons resolve against.
const ListPagePattern = "/giveaways/page/{page}"

// BuildGiveawayList renders one page of the active giveaway overview. Pages
// are clamped rather than rejected so stale buttons still land somewhere
// sensible.
func BuildGiveawayList(records []*giveaway.Record, page int) ([]discord.Embed, []discord.ContainerComponent) {
	totalPages := (len(records) + config.GiveawaysPerPage - 1) / config.GiveawaysPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * config.GiveawaysPerPage
	end := min(start+config.GiveawaysPerPage, len(records))

	description := "No giveaways are currently running."
	if len(records) > 0 {
		description = ""
		for _, rec := range records[start:end] {
			description += fmt.Sprintf("**%s** in <#%s> — ends <t:%d:R>, %d winner(s)\n[message %s]\n\n",
				rec.Prize, rec.ChannelID, rec.EndsAt, rec.WinnerCount, rec.MessageID)
		}
	}

	embeds := []discord.Embed{{
		Title:       "🎉 Active giveaways",
		Description: description,
		Color:       config.GiveawayColor,
		Footer:      &discord.EmbedFooter{Text: fmt.Sprintf("Page %d/%d • Total: %d", page+1, totalPages, len(records))},
	}}

	var components []discord.ContainerComponent
	if totalPages > 1 {
		components = append(components, discord.NewActionRow(
			discord.NewSecondaryButton("◀", fmt.Sprintf("/giveaways/page/%d", page-1)).
				WithDisabled(page == 0),
			discord.NewSecondaryButton("▶", fmt.Sprintf("/giveaways/page/%d", page+1)).
				WithDisabled(page == totalPages-1),
		))
	}
	return embeds, components
}

// ListPageHandler re-renders the list at the requested page from the current
// store snapshot, so the overview never shows giveaways that have since
// ended.
func ListPageHandler(b *giveawaybot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		page, err := strconv.Atoi(e.Vars["page"])
		if err != nil {
			page = 0
		}
		embeds, components := BuildGiveawayList(b.Engine.Active(), page)
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &embeds,
			Components: &components,
		})
	}
}
