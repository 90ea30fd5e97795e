package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

const archivePrefix = "archive-"

// ArchiveChannel renames the channel to name and moves it under the archive
// category.
func (c *Client) ArchiveChannel(ctx context.Context, channelID, categoryID snowflake.ID, name string) error {
	_, err := c.rest.UpdateChannel(channelID, discord.GuildTextChannelUpdate{
		Name:     &name,
		ParentID: &categoryID,
	}, rest.WithCtx(ctx))
	return err
}

// NextArchiveNumber scans the guild for channels already named archive-N and
// returns the next free number. The counter is derived from channel names on
// every call so it survives restarts without extra state.
func (c *Client) NextArchiveNumber(ctx context.Context, guildID snowflake.ID) (int, error) {
	channels, err := c.rest.GetGuildChannels(guildID, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to list guild channels: %w", err)
	}
	highest := 0
	for _, ch := range channels {
		suffix, ok := strings.CutPrefix(ch.Name(), archivePrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// ArchiveName formats the name for the nth archived channel.
func ArchiveName(n int) string {
	return fmt.Sprintf("%s%d", archivePrefix, n)
}
