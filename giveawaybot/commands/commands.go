// Package commands implements the bot's prefix command surface. Commands are
// dispatched by the message handler rather than registered as application
// commands; configuration happens through the interactive menu instead of
// slash command options.
package commands

import (
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/giveaway-bot/giveawaybot"
	"github.com/disgoorg/snowflake/v2"
)

// Context carries everything a command handler needs for one invocation.
type Context struct {
	Bot   *giveawaybot.Bot
	Event *events.MessageCreate
	Args  []string
}

type Command struct {
	Name        string
	Description string
	// Elevated commands require Administrator or Manage Server.
	Elevated bool
	Handler  func(ctx Context) error
}

// All returns every prefix command keyed by name.
func All() map[string]Command {
	commands := []Command{
		GiveawayCommand,
		RerollCommand,
		CancelGiveawayCommand,
		ListGiveawaysCommand,
		ArchiveCommand,
		CheckPermissionsCommand,
	}
	byName := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name] = cmd
	}
	return byName
}

// parseIDArg parses the first argument as a snowflake id.
func parseIDArg(args []string) (snowflake.ID, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := snowflake.Parse(args[0])
	if err != nil {
		return 0, false
	}
	return id, true
}
