package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
)

// WrapComponentWithLogging decorates a component handler with start/finish
// logging and a hard timeout, so a stuck interaction surfaces in the logs
// instead of silently eating the token.
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		start := time.Now()

		slog.Info("Component interaction started",
			slog.String("type", "component"),
			slog.String("name", name),
			slog.String("user_id", e.User().ID.String()),
			slog.String("user_name", e.User().Username),
		)

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			duration := time.Since(start)
			attrs := []any{
				slog.String("type", "component"),
				slog.String("name", name),
				slog.String("user_id", e.User().ID.String()),
				slog.Duration("took", duration),
			}
			if err != nil {
				slog.Error("Component interaction failed", append(attrs,
					slog.Any("error", err),
					slog.String("status", "failed"))...)
			} else if duration > 2*time.Second {
				slog.Warn("Component interaction executed slowly", append(attrs,
					slog.String("status", "slow"))...)
			} else {
				slog.Info("Component interaction completed", append(attrs,
					slog.String("status", "success"))...)
			}
			return err

		case <-time.After(config.CommandTimeout):
			slog.Error("Component interaction timed out",
				slog.String("type", "component"),
				slog.String("name", name),
				slog.String("user_id", e.User().ID.String()),
				slog.String("status", "timeout"))
			return fmt.Errorf("component interaction timed out after %s", config.CommandTimeout)
		}
	}
}
